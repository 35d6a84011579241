// Package transform compiles a subset of CSS into a plain style-object tree
// for a renderer that understands camel-cased property/value pairs instead
// of cascading stylesheets. The transformation is a single deterministic
// forward pass: keyframe pre-extraction, parse, rule ordering, selector
// classification, per-declaration lowering, media-query handling and the
// :export value-export mechanism.
package transform

import (
	"strings"

	"go.uber.org/zap"

	"cssobj/css"
	"cssobj/mediaquery"
	"cssobj/style"
)

// Options configure one transformation call.
type Options struct {
	// ParseKeyframes extracts @keyframes blocks before parsing and binds
	// their bodies to animation declarations.
	ParseKeyframes bool
	// ParseMediaQueries validates and lowers @media blocks; when false they
	// are skipped like any other unsupported rule.
	ParseMediaQueries bool
	// ParsePartSelectors additionally accepts ::part(name) and :part(name).
	ParsePartSelectors bool
	// IgnoreRule rejects additional selectors by result key after the
	// syntactic check passes.
	IgnoreRule func(selector string) bool
}

// StyleMap maps translated property names to translated values: strings,
// float64 for resolved lengths, or nested maps for keyframe bodies.
type StyleMap = map[string]any

// SkippedSelector records a selector the transformation silently dropped,
// so callers and tests can assert what was skipped instead of inferring it
// from absence.
type SkippedSelector struct {
	Selector string
	Reason   string
}

// Result is the output of one transformation call.
type Result struct {
	// Styles maps accepted top-level selector keys to their style maps.
	Styles map[string]StyleMap
	// Media maps reconstructed "@media ..." strings to media-scoped styles.
	Media map[string]map[string]StyleMap
	// MediaQueries records the parsed query for every accepted @media rule,
	// independent of whether the block contributed any styles.
	MediaQueries map[string][]mediaquery.Query
	// Exports holds :export values; nil when no export block was seen.
	Exports map[string]string
	// UsesViewportUnits is set once any declaration value uses a
	// viewport-relative unit; it is never unset.
	UsesViewportUnits bool
	// Skipped lists selectors dropped by classification or the caller's
	// ignore predicate.
	Skipped []SkippedSelector
}

// Object flattens the result into the wire shape downstream consumers
// expect: selector keys and "@media ..." scopes at the top level, exports
// merged over it last (exported names become ordinary top-level keys).
func (r *Result) Object() map[string]any {
	obj := make(map[string]any, len(r.Styles)+len(r.Media)+len(r.Exports)+2)
	for k, v := range r.Styles {
		obj[k] = v
	}
	for k, scope := range r.Media {
		flat := make(map[string]any, len(scope))
		for sel, sm := range scope {
			flat[sel] = sm
		}
		obj[k] = flat
	}
	if len(r.MediaQueries) > 0 {
		obj["__mediaQueries"] = r.MediaQueries
	}
	if r.UsesViewportUnits {
		obj["__viewportUnits"] = true
	}
	for k, v := range r.Exports {
		obj[k] = v
	}
	return obj
}

// Transformer runs the CSS to style-object transformation. It holds no
// mutable state between calls; concurrent use is safe.
type Transformer struct {
	log        *zap.Logger
	parser     *css.Parser
	translator *style.Translator
}

// New creates a new Transformer.
func New(log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("css-transform")
	return &Transformer{
		log:        log,
		parser:     css.NewParser(log),
		translator: style.NewTranslator(log),
	}
}

// Transform compiles src into a Result according to opts. Any fatal
// condition aborts the call; no partial result is returned.
func (t *Transformer) Transform(src string, opts Options) (*Result, error) {
	var keyframes map[string]string
	if opts.ParseKeyframes {
		src, keyframes = ExtractKeyframes(src)
		t.log.Debug("Extracted keyframes", zap.Int("count", len(keyframes)))
	}

	sheet := t.parser.Parse([]byte(src))
	rules := css.OrderRules(sheet.Rules)

	res := &Result{
		Styles:       make(map[string]StyleMap),
		Media:        make(map[string]map[string]StyleMap),
		MediaQueries: make(map[string][]mediaquery.Query),
	}

	// Class keys are collected up front so export collision detection does
	// not depend on rule order.
	classKeys := collectClassKeys(rules, opts)

	for _, rule := range rules {
		switch rule.Type {
		case css.RuleMedia:
			if !opts.ParseMediaQueries {
				res.Skipped = append(res.Skipped, SkippedSelector{
					Selector: "@media " + rule.Media,
					Reason:   "media query parsing disabled",
				})
				continue
			}
			if err := t.processMediaRule(rule, res, keyframes, opts); err != nil {
				return nil, err
			}

		case css.RuleStyle:
			if err := t.processStyleRule(rule, res, keyframes, classKeys, opts); err != nil {
				return nil, err
			}
		}
	}

	t.log.Debug("Transformation finished",
		zap.Int("selectors", len(res.Styles)),
		zap.Int("mediaScopes", len(res.Media)),
		zap.Int("exports", len(res.Exports)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// processStyleRule lowers one top-level style rule into the result.
func (t *Transformer) processStyleRule(rule css.Rule, res *Result, keyframes map[string]string, classKeys map[string]bool, opts Options) error {
	for _, sel := range rule.Selectors {
		key, kind, reason := classifySelector(sel, opts.ParsePartSelectors)
		switch kind {
		case selectorExport:
			if err := recordExports(rule.Declarations, res, classKeys); err != nil {
				return err
			}
			continue
		case selectorRejected:
			res.Skipped = append(res.Skipped, SkippedSelector{Selector: sel, Reason: reason})
			t.log.Debug("Skipping selector", zap.String("selector", sel), zap.String("reason", reason))
			continue
		}
		if opts.IgnoreRule != nil && opts.IgnoreRule(key) {
			res.Skipped = append(res.Skipped, SkippedSelector{Selector: sel, Reason: "ignored by caller predicate"})
			continue
		}

		sm := res.Styles[key]
		if sm == nil {
			sm = make(StyleMap)
			res.Styles[key] = sm
		}
		if err := t.applyDeclarations(sm, rule.Declarations, res, keyframes); err != nil {
			return err
		}
	}
	return nil
}

// recordExports stores the declarations of an :export block. Export names
// must not shadow class selectors defined anywhere in the same source; a
// later export entry for the same name simply overwrites the value.
func recordExports(decls []css.Declaration, res *Result, classKeys map[string]bool) error {
	for _, d := range decls {
		name := strings.TrimSpace(d.Property)
		if name == "" {
			continue
		}
		if classKeys[name] {
			return &ExportCollisionError{Name: name}
		}
		if res.Exports == nil {
			res.Exports = make(map[string]string)
		}
		res.Exports[name] = strings.TrimSpace(d.Value)
	}
	return nil
}

// collectClassKeys returns every selector key the source defines at top
// level, after classification and the caller's ignore predicate.
func collectClassKeys(rules []css.Rule, opts Options) map[string]bool {
	keys := make(map[string]bool)
	for _, rule := range rules {
		if rule.Type != css.RuleStyle {
			continue
		}
		for _, sel := range rule.Selectors {
			key, kind, _ := classifySelector(sel, opts.ParsePartSelectors)
			if kind != selectorAccepted {
				continue
			}
			if opts.IgnoreRule != nil && opts.IgnoreRule(key) {
				continue
			}
			keys[key] = true
		}
	}
	return keys
}
