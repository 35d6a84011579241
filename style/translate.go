// Package style translates individual CSS declarations into the renderer's
// native camel-cased property/value pairs. It knows nothing about selectors,
// cascade emulation or result assembly; that is the transform package's job.
package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"go.uber.org/zap"

	"cssobj/css"
)

// KeyframePrefix marks a pseudo declaration carrying a keyframe body:
// {Property: "@keyframes spin", Value: "<body>"}. Such declarations may
// prefix an animation declaration so the translator can resolve whichever
// names the animation value references.
const KeyframePrefix = "@keyframes "

// boxShorthands maps an expandable shorthand to its four directional keys.
// The order matches CSS multi-value semantics: the same index pattern covers
// top/right/bottom/left and the four radius corners.
var boxShorthands = map[string][4]string{
	"border-width":  {"borderTopWidth", "borderRightWidth", "borderBottomWidth", "borderLeftWidth"},
	"border-color":  {"borderTopColor", "borderRightColor", "borderBottomColor", "borderLeftColor"},
	"border-style":  {"borderTopStyle", "borderRightStyle", "borderBottomStyle", "borderLeftStyle"},
	"border-radius": {"borderTopLeftRadius", "borderTopRightRadius", "borderBottomRightRadius", "borderBottomLeftRadius"},
	"margin":        {"marginTop", "marginRight", "marginBottom", "marginLeft"},
	"padding":       {"paddingTop", "paddingRight", "paddingBottom", "paddingLeft"},
}

// ExpandedKeys returns the four directional output keys a shorthand property
// expands to, or nil if the property is not an expandable shorthand.
func ExpandedKeys(property string) []string {
	keys, ok := boxShorthands[property]
	if !ok {
		return nil
	}
	return keys[:]
}

var (
	durationRe = regexp.MustCompile(`^\d+(?:\.\d+)?m?s$`)
	integerRe  = regexp.MustCompile(`^\d+$`)

	timingFunctions = map[string]bool{
		"linear": true, "ease": true, "ease-in": true, "ease-out": true,
		"ease-in-out": true, "step-start": true, "step-end": true,
	}
	animationDirections = map[string]bool{
		"normal": true, "reverse": true, "alternate": true, "alternate-reverse": true,
	}
)

// Translator converts CSS declarations to renderer style properties.
type Translator struct {
	log    *zap.Logger
	parser *css.Parser
}

// NewTranslator creates a new declaration translator.
func NewTranslator(log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("style-translator")
	return &Translator{log: log, parser: css.NewParser(log)}
}

// Translate converts an ordered sequence of declarations into a mapping of
// renderer property names to values. Pseudo keyframe declarations (see
// KeyframePrefix) establish the keyframe table the animation declarations of
// the same call resolve against. Invalid color values are rejected.
func (t *Translator) Translate(decls []css.Declaration) (map[string]any, error) {
	keyframes := make(map[string]string)
	for _, d := range decls {
		if name, ok := strings.CutPrefix(d.Property, KeyframePrefix); ok {
			keyframes[strings.TrimSpace(name)] = d.Value
		}
	}

	out := make(map[string]any)
	for _, d := range decls {
		if strings.HasPrefix(d.Property, "@") {
			continue
		}
		value := strings.TrimSpace(d.Value)

		switch {
		case d.Property == "animation" || d.Property == "animation-name":
			if err := t.translateAnimation(d.Property, value, keyframes, out); err != nil {
				return nil, err
			}

		case ExpandedKeys(d.Property) != nil:
			if err := t.expandShorthand(d.Property, value, out); err != nil {
				return nil, err
			}

		default:
			key := CamelCase(d.Property)
			if err := checkColor(key, value); err != nil {
				return nil, err
			}
			out[key] = lowerValue(value)
		}
	}
	return out, nil
}

// expandShorthand lowers a multi-value box shorthand into its four
// directional keys following CSS 1/2/3/4-value semantics.
func (t *Translator) expandShorthand(property, value string, out map[string]any) error {
	keys := boxShorthands[property]
	fields := strings.Fields(value)

	var spread [4]string
	switch len(fields) {
	case 1:
		spread = [4]string{fields[0], fields[0], fields[0], fields[0]}
	case 2:
		spread = [4]string{fields[0], fields[1], fields[0], fields[1]}
	case 3:
		spread = [4]string{fields[0], fields[1], fields[2], fields[1]}
	case 4:
		spread = [4]string{fields[0], fields[1], fields[2], fields[3]}
	default:
		return fmt.Errorf("unable to translate declaration %q: expected 1 to 4 values, got %d", property+": "+value, len(fields))
	}

	for i, key := range keys {
		if err := checkColor(key, spread[i]); err != nil {
			return err
		}
		out[key] = lowerValue(spread[i])
	}
	return nil
}

// translateAnimation lowers animation and animation-name declarations,
// binding any referenced keyframe bodies as nested frame maps.
func (t *Translator) translateAnimation(property, value string, keyframes map[string]string, out map[string]any) error {
	bind := func(name string) error {
		out["animationName"] = name
		body, ok := keyframes[name]
		if !ok {
			return nil
		}
		frames, err := t.translateFrames(body)
		if err != nil {
			return err
		}
		out["animationKeyframes"] = frames
		return nil
	}

	if property == "animation-name" {
		name, rest, multiple := strings.Cut(value, ",")
		if multiple {
			t.log.Debug("Multiple animation names, only the first is bound", zap.String("ignored", rest))
		}
		return bind(strings.TrimSpace(name))
	}

	// animation shorthand: pick fields apart by shape.
	sawDuration := false
	for _, field := range strings.Fields(value) {
		switch {
		case durationRe.MatchString(field):
			if sawDuration {
				out["animationDelay"] = field
			} else {
				out["animationDuration"] = field
				sawDuration = true
			}
		case timingFunctions[field]:
			out["animationTimingFunction"] = field
		case animationDirections[field]:
			out["animationDirection"] = field
		case field == "infinite" || integerRe.MatchString(field):
			out["animationIterationCount"] = lowerValue(field)
		default:
			if _, ok := keyframes[field]; ok || out["animationName"] == nil {
				if err := bind(field); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// translateFrames parses a keyframe body ("0% { ... } 100% { ... }") and
// translates each frame's declarations, keyed by the frame selector.
func (t *Translator) translateFrames(body string) (map[string]map[string]any, error) {
	sheet := t.parser.Parse([]byte(body))

	frames := make(map[string]map[string]any, len(sheet.Rules))
	for _, rule := range sheet.Rules {
		if rule.Type != css.RuleStyle {
			continue
		}
		styles, err := t.Translate(rule.Declarations)
		if err != nil {
			return nil, err
		}
		for _, sel := range rule.Selectors {
			frame := frames[sel]
			if frame == nil {
				frame = make(map[string]any, len(styles))
				frames[sel] = frame
			}
			for k, v := range styles {
				frame[k] = v
			}
		}
	}
	return frames, nil
}

// checkColor validates values of color-bearing properties. The raw value is
// kept as-is on success; rewriting colors is the renderer's business.
func checkColor(key, value string) error {
	if key != "color" && !strings.HasSuffix(key, "Color") {
		return nil
	}
	if value == "transparent" || value == "currentcolor" || value == "inherit" {
		return nil
	}
	if _, err := csscolorparser.Parse(value); err != nil {
		return fmt.Errorf("unable to translate declaration value %q: %w", value, err)
	}
	return nil
}

// lowerValue converts resolved lengths and plain numbers to float64 and
// leaves everything else a string.
func lowerValue(value string) any {
	if n, ok := Numeric(value); ok {
		return n
	}
	return value
}
