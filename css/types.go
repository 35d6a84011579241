package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Declaration is a single `property: value` pair inside a rule.
type Declaration struct {
	Property string
	Value    string
}

// RuleType discriminates top-level rule kinds produced by the parser.
type RuleType int

const (
	RuleStyle RuleType = iota // selectors + declarations
	RuleMedia                 // @media query + nested style rules
)

// Rule is one top-level item of a stylesheet. For RuleStyle the declarations
// are shared across all selectors of the rule. For RuleMedia the Media field
// holds the raw query text and Rules holds the nested style rules.
type Rule struct {
	Type         RuleType
	Selectors    []string
	Declarations []Declaration
	Media        string
	Rules        []Rule
}

// Stylesheet is an ordered sequence of top-level rules. Warnings collect
// constructs the parser recognized but could not represent.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// RulesBySelector returns all top-level style rules listing the given selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Type != RuleStyle {
			continue
		}
		for _, sel := range r.Selectors {
			if sel == selector {
				matches = append(matches, r)
				break
			}
		}
	}
	return matches
}

// OrderRules returns the rules in the deterministic order consumed by the
// transformation pass: style rules first, then media rules, source order
// preserved within each kind. Media overrides therefore always land after
// the base classes they refine. The input slice is not modified.
func OrderRules(rules []Rule) []Rule {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Type < ordered[j].Type
	})
	return ordered
}

// WriteTo writes the stylesheet back as CSS text in rule order,
// implementing io.WriterTo. Useful for debug dumps.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, rule := range s.Rules {
		var n int
		var err error
		switch rule.Type {
		case RuleMedia:
			n, err = writeMediaRule(w, &rule)
		default:
			n, err = writeStyleRule(w, &rule, "")
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeStyleRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, strings.Join(rule.Selectors, ", "))
	total += n
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err = fmt.Fprintf(w, "%s  %s: %s;\n", indent, d.Property, d.Value)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

func writeMediaRule(w io.Writer, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", rule.Media)
	total += n
	if err != nil {
		return total, err
	}
	for i := range rule.Rules {
		n, err = writeStyleRule(w, &rule.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
