package transform

import (
	"regexp"
	"strings"
)

// The target renderer has no cascade. Allowing combinators or attribute
// selectors would silently produce wrong results, so everything beyond a
// bare class, :root and (optionally) ::part(name) is rejected outright.

type selectorKind int

const (
	selectorRejected selectorKind = iota
	selectorAccepted
	selectorExport
)

var (
	classSelectorRe = regexp.MustCompile(`^\.[A-Za-z_][A-Za-z0-9_-]*$`)
	partSelectorRe  = regexp.MustCompile(`^::?part\([A-Za-z_][A-Za-z0-9_-]*\)$`)
)

// classifySelector decides, from syntax alone, whether a selector is
// accepted, rejected or routed to the export path. For accepted selectors
// key is the result key: the class name without its leading dot, or the
// selector itself for :root and part forms.
func classifySelector(sel string, partSelectors bool) (key string, kind selectorKind, reason string) {
	switch {
	case sel == ":export":
		return "", selectorExport, ""
	case sel == ":root":
		return sel, selectorAccepted, ""
	case partSelectors && partSelectorRe.MatchString(sel):
		return sel, selectorAccepted, ""
	case strings.ContainsAny(sel, " \t\n>+~"):
		return "", selectorRejected, "combinator selectors are not supported"
	case strings.Contains(sel, "["):
		return "", selectorRejected, "attribute selectors are not supported"
	case classSelectorRe.MatchString(sel):
		return strings.TrimPrefix(sel, "."), selectorAccepted, ""
	case strings.Contains(sel, ":"):
		return "", selectorRejected, "pseudo selectors are not supported"
	default:
		return "", selectorRejected, "only class selectors are supported"
	}
}
