package transform

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"cssobj/css"
	"cssobj/style"
)

// Accepted value shapes. Lengths are validated after rem lengths have been
// rewritten to px, so rem never appears here.
var (
	lengthRe          = regexp.MustCompile(`^(?:0|[+-]?(?:\d*\.)?\d+(?:[eE][+-]?\d+)?(?:px)?)$`)
	viewportUnitRe    = regexp.MustCompile(`^[+-]?(?:\d*\.)?\d+(?:vh|vw|vmin|vmax)$`)
	percentRe         = regexp.MustCompile(`^[+-]?(?:\d*\.)?\d+%$`)
	unsupportedUnitRe = regexp.MustCompile(`^[+-]?(?:\d*\.)?\d+(?:ch|em|ex|cm|mm|in|pc|pt)$`)
)

// Shorthand border properties the renderer supports natively in single-value
// form. When the translator's four directional values come back equal they
// collapse to the one shorthand key.
var collapsibleShorthands = map[string]bool{
	"border-radius": true,
	"border-width":  true,
	"border-color":  true,
	"border-style":  true,
}

// applyDeclarations lowers one rule's declarations into sm in source order.
// Later declarations overwrite earlier ones key by key, which is all the
// cascade emulation a single selector scope needs.
func (t *Transformer) applyDeclarations(sm StyleMap, decls []css.Declaration, res *Result, keyframes map[string]string) error {
	for _, d := range decls {
		if d.Property == "" {
			continue
		}
		value := style.RemToPx(strings.TrimSpace(d.Value))

		if viewportUnitRe.MatchString(value) {
			res.UsesViewportUnits = true
		} else if unsupportedUnitRe.MatchString(value) {
			t.log.Debug("Value uses a recognized but unsupported unit",
				zap.String("property", d.Property), zap.String("value", value))
		}

		// Only line-height is unit-checked here. Other properties are the
		// translator's to accept or reject.
		if d.Property == "line-height" &&
			!lengthRe.MatchString(value) && !viewportUnitRe.MatchString(value) && !percentRe.MatchString(value) {
			return &DeclarationError{Property: d.Property, Value: value}
		}

		var (
			out map[string]any
			err error
		)
		switch {
		case collapsibleShorthands[d.Property]:
			out, err = t.translator.Translate([]css.Declaration{{Property: d.Property, Value: value}})
			if err == nil {
				out = collapseShorthand(d.Property, out)
			}

		case (d.Property == "animation" || d.Property == "animation-name") && len(keyframes) > 0:
			out, err = t.translator.Translate(withKeyframes(keyframes, css.Declaration{Property: d.Property, Value: value}))

		default:
			out, err = t.translator.Translate([]css.Declaration{{Property: d.Property, Value: value}})
		}
		if err != nil {
			return err
		}

		for k, v := range out {
			sm[k] = v
		}
	}
	return nil
}

// collapseShorthand folds four equal directional values back into the single
// shorthand key the renderer supports natively.
func collapseShorthand(property string, out map[string]any) map[string]any {
	keys := style.ExpandedKeys(property)

	common, ok := out[keys[0]]
	if !ok {
		return out
	}
	for _, k := range keys[1:] {
		if v, found := out[k]; !found || v != common {
			return out
		}
	}

	collapsed := make(map[string]any, len(out)-3)
	for k, v := range out {
		collapsed[k] = v
	}
	for _, k := range keys {
		delete(collapsed, k)
	}
	collapsed[style.CamelCase(property)] = common
	return collapsed
}

// withKeyframes prefixes a declaration with every known keyframe body as
// pseudo declarations so the translator can resolve whichever name(s) the
// animation value references.
func withKeyframes(keyframes map[string]string, d css.Declaration) []css.Declaration {
	decls := make([]css.Declaration, 0, len(keyframes)+1)
	for name, body := range keyframes {
		decls = append(decls, css.Declaration{Property: style.KeyframePrefix + name, Value: body})
	}
	return append(decls, d)
}
