package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// EntryTemplates maps collection name to field values every new entry of
	// that collection starts with. Values on top of built-in block defaults.
	EntryTemplates map[string]map[string]any

	ComparisonTableConfig struct {
		MaxCompetitors         int            `yaml:"max_competitors" validate:"min=1"`
		MobileVisibleFeatures  int            `yaml:"mobile_visible_features" validate:"gte=0"`
		CompetitorNameTemplate string         `yaml:"competitor_name_template" validate:"required"`
		Templates              EntryTemplates `yaml:"templates"`
	}

	FAQConfig struct {
		MaxItems  int            `yaml:"max_items" validate:"gte=0"`
		Templates EntryTemplates `yaml:"templates"`
	}

	StatsCardConfig struct {
		MaxItems  int            `yaml:"max_items" validate:"gte=0"`
		Templates EntryTemplates `yaml:"templates"`
	}

	InformationHubConfig struct {
		MaxCards  int            `yaml:"max_cards" validate:"min=1"`
		MaxItems  int            `yaml:"max_items" validate:"gte=0"`
		Templates EntryTemplates `yaml:"templates"`
	}

	DropdownSwitcherConfig struct {
		MinCategories int            `yaml:"min_categories" validate:"min=1"`
		Templates     EntryTemplates `yaml:"templates"`
	}

	HeroConfig struct {
		MaxServiceCards int            `yaml:"max_service_cards" validate:"min=1"`
		MinServiceCards int            `yaml:"min_service_cards" validate:"gte=0,ltefield=MaxServiceCards"`
		MinBenefitCards int            `yaml:"min_benefit_cards" validate:"gte=0"`
		Templates       EntryTemplates `yaml:"templates"`
	}

	// BlocksConfig holds capacity limits and default entry templates, nothing
	// of that is hard coded in the mutation engine.
	BlocksConfig struct {
		ComparisonTable  ComparisonTableConfig  `yaml:"comparison_table"`
		FAQ              FAQConfig              `yaml:"faq"`
		StatsCard        StatsCardConfig        `yaml:"stats_card"`
		InformationHub   InformationHubConfig   `yaml:"information_hub"`
		DropdownSwitcher DropdownSwitcherConfig `yaml:"dropdown_switcher"`
		Hero             HeroConfig             `yaml:"hero"`
	}

	LabelsConfig struct {
		ShowMoreTemplate    string `yaml:"show_more_template" validate:"required"`
		ShowLessTemplate    string `yaml:"show_less_template" validate:"required"`
		CapacityTemplate    string `yaml:"capacity_template" validate:"required"`
		ItemHeadingTemplate string `yaml:"item_heading_template" validate:"required"`
	}

	RenderConfig struct {
		Pretty           bool         `yaml:"pretty"`
		Indent           int          `yaml:"indent" validate:"gte=0,lte=8"`
		Language         string       `yaml:"language" validate:"required,bcp47_language_tag"`
		PreviewSentences int          `yaml:"preview_sentences" validate:"min=1"`
		Workers          int          `yaml:"workers" validate:"gte=0"`
		Labels           LabelsConfig `yaml:"labels"`
	}

	ThumbnailConfig struct {
		Width  int           `yaml:"width" validate:"min=16"`
		Height int           `yaml:"height" validate:"min=16"`
		Mode   ThumbnailMode `yaml:"mode" validate:"gte=0"`
	}

	MediaConfig struct {
		Library   string          `yaml:"library" sanitize:"path_clean"`
		BaseURL   string          `yaml:"base_url" validate:"required"`
		Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	}

	StorageConfig struct {
		Kind     StorageKind `yaml:"kind" validate:"gte=0"`
		Database string      `yaml:"database,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required_if=Kind 1"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Blocks    BlocksConfig   `yaml:"blocks"`
		Render    RenderConfig   `yaml:"render"`
		Media     MediaConfig    `yaml:"media"`
		Storage   StorageConfig  `yaml:"storage"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	ShowMoreTemplateFieldName       TemplateFieldName = "show_more_template"
	ShowLessTemplateFieldName       TemplateFieldName = "show_less_template"
	CapacityTemplateFieldName       TemplateFieldName = "capacity_template"
	ItemHeadingTemplateFieldName    TemplateFieldName = "item_heading_template"
	CompetitorNameTemplateFieldName TemplateFieldName = "competitor_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(ShowMoreTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(ShowLessTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(CapacityTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(ItemHeadingTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(CompetitorNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Template returns default field values for new entries of collection list,
// built-in defaults first, configured values on top.
func (t EntryTemplates) Template(list string, builtin map[string]any) map[string]any {
	out := make(map[string]any, len(builtin)+len(t[list]))
	for k, v := range builtin {
		out[k] = v
	}
	for k, v := range t[list] {
		out[k] = v
	}
	return out
}
