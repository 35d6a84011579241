package style

import (
	"regexp"
	"strconv"
	"strings"
)

// Browsers resolve 1rem to 16px at the default root font size. The target
// renderer has no root element, so rem lengths are rewritten to their pixel
// equivalent before any other processing.
const remToPxRatio = 16

var (
	remValueRe  = regexp.MustCompile(`([+-]?(?:\d*\.)?\d+)rem\b`)
	numericRe   = regexp.MustCompile(`^[+-]?(?:\d*\.)?\d+(?:[eE][+-]?\d+)?(?:px)?$`)
	wordSplitRe = regexp.MustCompile(`-+`)
)

// RemToPx rewrites every rem length inside value to an equivalent px length.
// Values without rem lengths pass through unchanged.
func RemToPx(value string) string {
	if !strings.Contains(value, "rem") {
		return value
	}
	return remValueRe.ReplaceAllStringFunc(value, func(m string) string {
		n, err := strconv.ParseFloat(strings.TrimSuffix(m, "rem"), 64)
		if err != nil {
			return m
		}
		return strconv.FormatFloat(n*remToPxRatio, 'f', -1, 64) + "px"
	})
}

// Numeric lowers a plain number or px length to its numeric value.
// The renderer expects bare numbers for resolved lengths.
func Numeric(value string) (float64, bool) {
	if !numericRe.MatchString(value) {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CamelCase converts a hyphenated CSS property name to the renderer's
// camel-cased form: "border-top-width" -> "borderTopWidth".
func CamelCase(property string) string {
	words := wordSplitRe.Split(strings.TrimLeft(property, "-"), -1)
	var sb strings.Builder
	first := true
	for _, w := range words {
		if w == "" {
			continue
		}
		if first {
			sb.WriteString(strings.ToLower(w))
			first = false
			continue
		}
		sb.WriteString(strings.ToUpper(w[:1]))
		sb.WriteString(strings.ToLower(w[1:]))
	}
	return sb.String()
}
