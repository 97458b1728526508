package render

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"cblocks/config"
)

// labelValues is a struct that holds variables we make available for label
// template expansion.
type labelValues struct {
	Context string
	Count   int
	Max     int
	Number  int
	Kind    string
}

// Labels expands configured label templates.
type Labels struct {
	showMore, showLess, capacity, itemHeading *template.Template
}

func NewLabels(cfg *config.LabelsConfig) (*Labels, error) {
	var (
		l   Labels
		err error
	)
	if l.showMore, err = parseTemplate(config.ShowMoreTemplateFieldName, cfg.ShowMoreTemplate); err != nil {
		return nil, err
	}
	if l.showLess, err = parseTemplate(config.ShowLessTemplateFieldName, cfg.ShowLessTemplate); err != nil {
		return nil, err
	}
	if l.capacity, err = parseTemplate(config.CapacityTemplateFieldName, cfg.CapacityTemplate); err != nil {
		return nil, err
	}
	if l.itemHeading, err = parseTemplate(config.ItemHeadingTemplateFieldName, cfg.ItemHeadingTemplate); err != nil {
		return nil, err
	}
	return &l, nil
}

// ShowMore labels button revealing count hidden entries.
func (l *Labels) ShowMore(count int) string {
	return execute(l.showMore, &labelValues{Context: string(config.ShowMoreTemplateFieldName), Count: count})
}

func (l *Labels) ShowLess() string {
	return execute(l.showLess, &labelValues{Context: string(config.ShowLessTemplateFieldName)})
}

// Capacity labels collection usage counter, max 0 means unlimited.
func (l *Labels) Capacity(count, max int) string {
	return execute(l.capacity, &labelValues{Context: string(config.CapacityTemplateFieldName), Count: count, Max: max})
}

// ItemHeading labels editor panel of entry with 1 based number.
func (l *Labels) ItemHeading(kind string, number int) string {
	return execute(l.itemHeading, &labelValues{Context: string(config.ItemHeadingTemplateFieldName), Kind: kind, Number: number})
}

// Expand expands arbitrary configured template, values are made available as
// .Number and .Count.
func Expand(name config.TemplateFieldName, field string, number, count int) (string, error) {
	tmpl, err := parseTemplate(name, field)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, &labelValues{Context: string(name), Number: number, Count: count}); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return buf.String(), nil
}

func parseTemplate(name config.TemplateFieldName, field string) (*template.Template, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template field %s: %w", name, err)
	}
	return tmpl, nil
}

// execute never fails for templates which passed parsing and use only label
// values, failures produce empty label.
func execute(tmpl *template.Template, values *labelValues) string {
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return ""
	}
	return buf.String()
}
