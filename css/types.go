package css

import (
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword string  // Keyword if applicable: "bold", "italic", "center", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is single "property: value" pair of inline style.
type Declaration struct {
	Property string
	Value    Value
}

// Style is ordered set of inline declarations. Setting property which is
// already present replaces its value in place so output order is stable.
type Style struct {
	p     *Parser
	decls []Declaration
}

// Set adds declaration when value passes validation. Empty values are
// ignored, attributes left blank simply do not style anything.
func (s *Style) Set(property, raw string) *Style {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s
	}
	property = strings.ToLower(strings.TrimSpace(property))
	v, ok := s.p.ParseValue(property, raw)
	if !ok {
		return s
	}
	s.put(Declaration{Property: property, Value: v})
	return s
}

// Merge parses inline style text and sets every acceptable declaration.
func (s *Style) Merge(inline string) *Style {
	for _, d := range s.p.ParseInline(inline) {
		s.put(d)
	}
	return s
}

// Get returns value of the property.
func (s *Style) Get(property string) (Value, bool) {
	for _, d := range s.decls {
		if d.Property == property {
			return d.Value, true
		}
	}
	return Value{}, false
}

// Len returns number of declarations.
func (s *Style) Len() int {
	return len(s.decls)
}

// String produces text for style attribute.
func (s *Style) String() string {
	var b strings.Builder
	for i, d := range s.decls {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value.Raw)
		b.WriteByte(';')
	}
	return b.String()
}

func (s *Style) put(d Declaration) {
	for i := range s.decls {
		if s.decls[i].Property == d.Property {
			s.decls[i] = d
			return
		}
	}
	s.decls = append(s.decls, d)
}
