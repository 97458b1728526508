// Package css validates and composes inline style declarations built from
// block attribute values.
package css

import (
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses inline CSS declarations and rejects values which could escape
// the declaration they are put in.
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

// NewStyle returns empty style validated by this parser.
func (p *Parser) NewStyle() *Style {
	return &Style{p: p}
}

// ParseInline parses text of style attribute ("color: red; margin: 0") into
// declarations. Declarations which do not pass validation are dropped.
func (p *Parser) ParseInline(text string) []Declaration {
	var decls []Declaration

	parser := css.NewParser(parse.NewInputString(text), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return decls
		case css.DeclarationGrammar:
			property := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			if !p.acceptable(property, values) {
				continue
			}
			decls = append(decls, Declaration{Property: property, Value: parsePropertyValue(values)})
		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) are not produced by attributes
			continue
		}
	}
}

// ParseValue validates single declaration value.
func (p *Parser) ParseValue(property, raw string) (Value, bool) {
	var tokens []css.Token

	lexer := css.NewLexer(parse.NewInputString(raw))
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		tokens = append(tokens, css.Token{TokenType: tt, Data: append([]byte(nil), data...)})
	}
	if !p.acceptable(property, tokens) {
		return Value{}, false
	}
	return parsePropertyValue(tokens), true
}

func (p *Parser) acceptable(property string, tokens []css.Token) bool {
	if !validProperty(property) {
		p.log.Debug("Rejecting CSS property", zap.String("property", property))
		return false
	}
	for _, t := range tokens {
		switch t.TokenType {
		case css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken,
			css.BadStringToken, css.BadURLToken, css.AtKeywordToken,
			css.CDOToken, css.CDCToken, css.CommentToken:
			p.log.Debug("Rejecting CSS value", zap.String("property", property), zap.ByteString("token", t.Data))
			return false
		case css.URLToken:
			if !strings.HasPrefix(property, "background") || strings.Contains(strings.ToLower(string(t.Data)), "javascript:") {
				p.log.Debug("Rejecting url in CSS value", zap.String("property", property))
				return false
			}
		case css.FunctionToken:
			name := strings.ToLower(string(t.Data))
			if name == "expression(" || name == "url(" {
				p.log.Debug("Rejecting CSS function", zap.String("property", property), zap.String("function", name))
				return false
			}
		}
	}
	return true
}

func validProperty(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '-' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	if len(tokens) == 0 {
		return Value{}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw}

	significant := make([]css.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			significant = append(significant, t)
		}
	}
	if len(significant) != 1 {
		// Multi-value properties and functions - store as keyword with raw value
		val.Keyword = raw
		return val
	}

	t := significant[0]
	switch t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(string(t.Data))
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(string(t.Data))
	case css.StringToken:
		val.Keyword = unquote(string(t.Data))
	case css.HashToken:
		// Color value
		val.Keyword = string(t.Data)
	default:
		val.Keyword = raw
	}
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
