// Package mediaquery parses raw CSS media query strings into a structured
// form: a list of comma-separated alternatives, each with a media type and a
// sequence of parenthesized feature expressions. It performs grammar parsing
// only; which types and features a consumer supports is the consumer's
// business.
package mediaquery

import (
	"fmt"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Expression is a single parenthesized feature condition, e.g.
// "(min-width: 100px)" -> {Modifier: "min", Feature: "width", Value: "100px"}.
// Value is empty for boolean features like "(orientation)".
type Expression struct {
	Modifier string `json:"modifier,omitempty"` // "min", "max" or ""
	Feature  string `json:"feature"`
	Value    string `json:"value,omitempty"`
}

// Query is one alternative of a media query list.
type Query struct {
	Inverse     bool         `json:"inverse,omitempty"` // "not" prefix
	Type        string       `json:"type"`              // defaults to "all"
	Expressions []Expression `json:"expressions,omitempty"`
}

// Parse parses a raw media query string, e.g.
// "screen and (min-width: 100px), print" into its alternatives.
func Parse(raw string) ([]Query, error) {
	lexer := css.NewLexer(parse.NewInputString(raw))

	queries := make([]Query, 0, 1)
	current := Query{Type: "all"}
	sawType := false
	pendingNot := false

	flush := func() error {
		if pendingNot {
			return fmt.Errorf("invalid media query %q: dangling \"not\"", raw)
		}
		queries = append(queries, current)
		current = Query{Type: "all"}
		sawType = false
		return nil
	}

	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := flush(); err != nil {
				return nil, err
			}
			return queries, nil

		case css.WhitespaceToken:
			continue

		case css.CommaToken:
			if err := flush(); err != nil {
				return nil, err
			}

		case css.IdentToken:
			ident := strings.ToLower(string(data))
			switch ident {
			case "not":
				pendingNot = true
			case "only", "and":
				// "only" is a no-op for parsing; "and" joins expressions.
			default:
				if sawType {
					return nil, fmt.Errorf("invalid media query %q: unexpected %q", raw, ident)
				}
				current.Type = ident
				current.Inverse = pendingNot
				pendingNot = false
				sawType = true
			}

		case css.LeftParenthesisToken:
			if pendingNot {
				current.Inverse = true
				pendingNot = false
			}
			expr, err := parseExpression(lexer, raw)
			if err != nil {
				return nil, err
			}
			current.Expressions = append(current.Expressions, expr)

		default:
			return nil, fmt.Errorf("invalid media query %q: unexpected token %q", raw, string(data))
		}
	}
}

// parseExpression consumes tokens after "(" up to the matching ")".
func parseExpression(lexer *css.Lexer, raw string) (Expression, error) {
	var (
		expr      Expression
		sawColon  bool
		valueBits []string
	)

	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return expr, fmt.Errorf("invalid media query %q: unterminated expression", raw)

		case css.WhitespaceToken:
			continue

		case css.ColonToken:
			if expr.Feature == "" {
				return expr, fmt.Errorf("invalid media query %q: expression without feature", raw)
			}
			sawColon = true

		case css.RightParenthesisToken:
			if expr.Feature == "" {
				return expr, fmt.Errorf("invalid media query %q: empty expression", raw)
			}
			if sawColon && len(valueBits) == 0 {
				return expr, fmt.Errorf("invalid media query %q: expression without value", raw)
			}
			expr.Value = strings.Join(valueBits, " ")
			return expr, nil

		default:
			if !sawColon {
				if expr.Feature != "" {
					return expr, fmt.Errorf("invalid media query %q: malformed expression", raw)
				}
				expr.Modifier, expr.Feature = splitFeature(strings.ToLower(string(data)))
			} else {
				valueBits = append(valueBits, string(data))
			}
		}
	}
}

// splitFeature strips a min-/max- range prefix off a feature name.
func splitFeature(name string) (modifier, feature string) {
	for _, m := range []string{"min", "max"} {
		if rest, ok := strings.CutPrefix(name, m+"-"); ok {
			return m, rest
		}
	}
	return "", name
}
