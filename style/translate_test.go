package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cssobj/css"
	"cssobj/style"
)

func TestCamelCase(t *testing.T) {
	for in, want := range map[string]string{
		"color":            "color",
		"border-radius":    "borderRadius",
		"border-top-width": "borderTopWidth",
		"line-height":      "lineHeight",
	} {
		assert.Equal(t, want, style.CamelCase(in))
	}
}

func TestRemToPx(t *testing.T) {
	assert.Equal(t, "16px", style.RemToPx("1rem"))
	assert.Equal(t, "24px", style.RemToPx("1.5rem"))
	assert.Equal(t, "10px 32px", style.RemToPx("10px 2rem"))
	assert.Equal(t, "bold", style.RemToPx("bold"))
	assert.Equal(t, "50%", style.RemToPx("50%"))
}

func TestNumeric(t *testing.T) {
	n, ok := style.Numeric("4px")
	require.True(t, ok)
	assert.Equal(t, 4.0, n)

	n, ok = style.Numeric("1.5")
	require.True(t, ok)
	assert.Equal(t, 1.5, n)

	_, ok = style.Numeric("50%")
	assert.False(t, ok)
	_, ok = style.Numeric("red")
	assert.False(t, ok)
}

func TestTranslate_Simple(t *testing.T) {
	tr := style.NewTranslator(nil)

	out, err := tr.Translate([]css.Declaration{
		{Property: "font-size", Value: "18px"},
		{Property: "text-align", Value: "center"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"fontSize": 18.0, "textAlign": "center"}, out)
}

func TestTranslate_ShorthandExpansion(t *testing.T) {
	tr := style.NewTranslator(nil)

	out, err := tr.Translate([]css.Declaration{{Property: "border-width", Value: "1px 2px 3px 4px"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"borderTopWidth":    1.0,
		"borderRightWidth":  2.0,
		"borderBottomWidth": 3.0,
		"borderLeftWidth":   4.0,
	}, out)

	// two-value form spreads vertically/horizontally
	out, err = tr.Translate([]css.Declaration{{Property: "margin", Value: "10px 20px"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"marginTop":    10.0,
		"marginRight":  20.0,
		"marginBottom": 10.0,
		"marginLeft":   20.0,
	}, out)
}

func TestTranslate_RadiusCorners(t *testing.T) {
	tr := style.NewTranslator(nil)

	out, err := tr.Translate([]css.Declaration{{Property: "border-radius", Value: "1px 2px 3px"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"borderTopLeftRadius":     1.0,
		"borderTopRightRadius":    2.0,
		"borderBottomRightRadius": 3.0,
		"borderBottomLeftRadius":  2.0,
	}, out)
}

func TestTranslate_ColorValidation(t *testing.T) {
	tr := style.NewTranslator(nil)

	out, err := tr.Translate([]css.Declaration{{Property: "color", Value: "#ff0000"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"color": "#ff0000"}, out)

	out, err = tr.Translate([]css.Declaration{{Property: "background-color", Value: "rebeccapurple"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"backgroundColor": "rebeccapurple"}, out)

	_, err = tr.Translate([]css.Declaration{{Property: "color", Value: "#zzz"}})
	assert.Error(t, err)

	_, err = tr.Translate([]css.Declaration{{Property: "border-color", Value: "red notacolor"}})
	assert.Error(t, err)
}

func TestTranslate_AnimationBinding(t *testing.T) {
	tr := style.NewTranslator(nil)

	body := `0% { opacity: 0 } 100% { opacity: 1 }`
	out, err := tr.Translate([]css.Declaration{
		{Property: style.KeyframePrefix + "fade", Value: body},
		{Property: "animation-name", Value: "fade"},
	})
	require.NoError(t, err)

	assert.Equal(t, "fade", out["animationName"])
	frames, ok := out["animationKeyframes"].(map[string]map[string]any)
	require.True(t, ok, "expected keyframes to be bound")
	require.Contains(t, frames, "0%")
	require.Contains(t, frames, "100%")
	assert.Equal(t, 0.0, frames["0%"]["opacity"])
	assert.Equal(t, 1.0, frames["100%"]["opacity"])
}

func TestTranslate_AnimationShorthand(t *testing.T) {
	tr := style.NewTranslator(nil)

	body := `0% { opacity: 0 } 100% { opacity: 1 }`
	out, err := tr.Translate([]css.Declaration{
		{Property: style.KeyframePrefix + "fade", Value: body},
		{Property: "animation", Value: "fade 2s ease-in infinite"},
	})
	require.NoError(t, err)

	assert.Equal(t, "fade", out["animationName"])
	assert.Equal(t, "2s", out["animationDuration"])
	assert.Equal(t, "ease-in", out["animationTimingFunction"])
	assert.Equal(t, "infinite", out["animationIterationCount"])
	assert.Contains(t, out, "animationKeyframes")
}

func TestTranslate_UnknownAnimationNameKeepsName(t *testing.T) {
	tr := style.NewTranslator(nil)

	out, err := tr.Translate([]css.Declaration{{Property: "animation-name", Value: "missing"}})
	require.NoError(t, err)
	assert.Equal(t, "missing", out["animationName"])
	assert.NotContains(t, out, "animationKeyframes")
}

func TestExpandedKeys(t *testing.T) {
	assert.Equal(t,
		[]string{"borderTopWidth", "borderRightWidth", "borderBottomWidth", "borderLeftWidth"},
		style.ExpandedKeys("border-width"))
	assert.Nil(t, style.ExpandedKeys("color"))
}
