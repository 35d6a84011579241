package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS text into a Stylesheet syntax tree.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Rule types the transformation has
// no use for (@import, @font-face, comments and so on) are skipped with a
// warning; the caller decides what to do about them.
func (p *Parser) Parse(data []byte) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var pendingSelectors []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := string(data)
			if atRule == "@media" {
				media := tokensString(parser.Values())
				rules := p.parseMediaBlockRules(parser)
				p.log.Debug("Parsed @media block", zap.String("query", media), zap.Int("rules", len(rules)))
				sheet.Rules = append(sheet.Rules, Rule{Type: RuleMedia, Media: media, Rules: rules})
			} else {
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "skipped at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// Simple @-rule without a block (e.g. @import, @charset).
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "skipped at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.QualifiedRuleGrammar:
			// One selector of a comma-separated group, the last one arrives
			// with BeginRulesetGrammar.
			pendingSelectors = append(pendingSelectors, splitSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pendingSelectors, splitSelectors(data, parser.Values())...)
			pendingSelectors = nil
			decls := p.parseDeclarations(parser)
			if len(selectors) > 0 {
				sheet.Rules = append(sheet.Rules, Rule{Type: RuleStyle, Selectors: selectors, Declarations: decls})
			}
		}
	}
}

// parseDeclarations reads property declarations until the ruleset ends.
// Source order is preserved: later declarations for the same property must
// win during translation.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			decls = append(decls, Declaration{
				Property: string(data),
				Value:    tokensString(parser.Values()),
			})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) have no renderer equivalent.
			continue
		}
	}
}

// parseMediaBlockRules parses the style rules nested inside an @media block.
func (p *Parser) parseMediaBlockRules(parser *css.Parser) []Rule {
	var rules []Rule
	var pendingSelectors []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.QualifiedRuleGrammar:
			pendingSelectors = append(pendingSelectors, splitSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pendingSelectors, splitSelectors(data, parser.Values())...)
			pendingSelectors = nil
			decls := p.parseDeclarations(parser)
			if len(selectors) > 0 {
				rules = append(rules, Rule{Type: RuleStyle, Selectors: selectors, Declarations: decls})
			}
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// splitSelectors reassembles selector text from grammar data plus value
// tokens and splits it on commas into individual selector strings.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// tokensString reassembles tokens into a single string with whitespace runs
// collapsed to one space.
func tokensString(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 && parts[len(parts)-1] != " " {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
