package render

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Preview shortens long texts to their leading sentences.
type Preview struct {
	tokenizer *sentences.DefaultSentenceTokenizer
	count     int
}

func NewPreview(count int) (*Preview, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to load sentences tokenizer data: %w", err)
	}
	return &Preview{tokenizer: tokenizer, count: max(count, 1)}, nil
}

// Leading returns first sentences of text (markup removed). It reports
// whether anything was cut.
func (p *Preview) Leading(text string) (string, bool) {
	text = strings.TrimSpace(PlainText(text))
	if text == "" {
		return "", false
	}
	parts := p.tokenizer.Tokenize(text)
	if len(parts) <= p.count {
		return text, false
	}
	var b strings.Builder
	for i := range p.count {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(parts[i].Text))
	}
	return b.String(), true
}
