package transform

import (
	"cssobj/css"
	"cssobj/mediaquery"
	"cssobj/style"
)

// Fixed whitelists of media query types and features the renderer's runtime
// matcher can evaluate. Anything else is a hard error.
var (
	supportedMediaTypes = map[string]bool{
		"all": true, "print": true, "screen": true, "speech": true,
		"android": true, "ios": true,
	}

	supportedMediaFeatures = map[string]bool{
		"width": true, "height": true,
		"device-width": true, "device-height": true,
		"orientation": true, "aspect-ratio": true, "device-aspect-ratio": true,
		"prefers-color-scheme": true,
	}

	// Features whose values must be lengths.
	dimensionFeatures = map[string]bool{
		"width": true, "height": true,
		"device-width": true, "device-height": true,
	}
)

// processMediaRule validates one @media rule, records its parsed query and
// lowers the nested style rules into the media-scoped namespace. The parsed
// query is recorded even when the block contributes no styles, so a caller
// can evaluate matching at runtime without re-parsing.
func (t *Transformer) processMediaRule(rule css.Rule, res *Result, keyframes map[string]string, opts Options) error {
	queries, err := mediaquery.Parse(rule.Media)
	if err != nil {
		return err
	}

	for _, q := range queries {
		if !supportedMediaTypes[q.Type] {
			return &MediaTypeError{Type: q.Type}
		}
		for _, e := range q.Expressions {
			if !supportedMediaFeatures[e.Feature] {
				return &MediaFeatureError{Feature: e.Feature}
			}
			if dimensionFeatures[e.Feature] && !lengthRe.MatchString(style.RemToPx(e.Value)) {
				return &MediaExpressionError{Feature: e.Feature, Value: e.Value}
			}
		}
	}

	key := "@media " + rule.Media
	res.MediaQueries[key] = queries

	scope := res.Media[key]
	if scope == nil {
		scope = make(map[string]StyleMap)
		res.Media[key] = scope
	}

	for _, nested := range rule.Rules {
		if nested.Type != css.RuleStyle {
			continue
		}
		for _, sel := range nested.Selectors {
			selKey, kind, reason := classifySelector(sel, opts.ParsePartSelectors)
			switch kind {
			case selectorExport:
				// :export has no meaning inside a media scope.
				res.Skipped = append(res.Skipped, SkippedSelector{Selector: sel, Reason: ":export is only valid at top level"})
				continue
			case selectorRejected:
				res.Skipped = append(res.Skipped, SkippedSelector{Selector: sel, Reason: reason})
				continue
			}
			if opts.IgnoreRule != nil && opts.IgnoreRule(selKey) {
				res.Skipped = append(res.Skipped, SkippedSelector{Selector: sel, Reason: "ignored by caller predicate"})
				continue
			}

			sm := scope[selKey]
			if sm == nil {
				sm = make(StyleMap)
				scope[selKey] = sm
			}
			if err := t.applyDeclarations(sm, nested.Declarations, res, keyframes); err != nil {
				return err
			}
		}
	}
	return nil
}
