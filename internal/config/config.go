// Package config handles dendro's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/matsen/dendro/internal/dendro"
	"github.com/matsen/dendro/internal/geometry"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration. Keys missing from a file keep their
// defaults; colors extend the default table rather than replacing it.
type Config struct {
	Colors     map[string]string `json:"colors" yaml:"colors" validate:"dive,keys,required,endkeys,required"`
	Style      StyleConfig       `json:"style" yaml:"style"`
	Render     RenderConfig      `json:"render" yaml:"render"`
	Layout     LayoutConfig      `json:"layout" yaml:"layout"`
	SnapDigits int               `json:"snap_digits" yaml:"snap_digits" validate:"min=0,max=12"`
}

// StyleConfig configures node, link and axis label appearance.
type StyleConfig struct {
	NodeRadius        float64   `json:"node_radius" yaml:"node_radius" validate:"gt=0"`
	LeafRadius        float64   `json:"leaf_radius" yaml:"leaf_radius" validate:"gt=0"`
	NeutralFill       string    `json:"neutral_fill" yaml:"neutral_fill" validate:"required"`
	LabelSize         float64   `json:"label_size" yaml:"label_size" validate:"gt=0"`
	LabelColor        string    `json:"label_color" yaml:"label_color" validate:"required"`
	Opacity           float64   `json:"opacity" yaml:"opacity" validate:"gte=0,lte=1"`
	LinkStrokeWidth   float64   `json:"link_stroke_width" yaml:"link_stroke_width" validate:"gt=0"`
	LinkStrokeDash    []float64 `json:"link_stroke_dash" yaml:"link_stroke_dash" validate:"dive,gte=0"`
	LinkStrokeOpacity float64   `json:"link_stroke_opacity" yaml:"link_stroke_opacity" validate:"gte=0,lte=1"`
	AxisLabelAngle    float64   `json:"axis_label_angle" yaml:"axis_label_angle" validate:"gte=-360,lte=360"`
}

// RenderConfig holds the default render choices of the CLI.
type RenderConfig struct {
	Format        string  `json:"format" yaml:"format" validate:"oneof=json cytoscape html"`
	Orientation   string  `json:"orientation" yaml:"orientation" validate:"oneof=top bottom left right"`
	Scale         string  `json:"scale" yaml:"scale" validate:"oneof=linear log symlog"`
	Width         float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height        float64 `json:"height" yaml:"height" validate:"gt=0"`
	ShowNodes     bool    `json:"show_nodes" yaml:"show_nodes"`
	Labels        string  `json:"labels" yaml:"labels" validate:"oneof=none counts clusters summary"`
	SummaryFormat string  `json:"summary_format" yaml:"summary_format"`
	Hover         bool    `json:"hover" yaml:"hover"`
}

// LayoutConfig configures the layout producer.
type LayoutConfig struct {
	Sort                string         `json:"sort" yaml:"sort" validate:"oneof=distance count"`
	Descending          bool           `json:"descending" yaml:"descending"`
	Truncate            string         `json:"truncate" yaml:"truncate" validate:"omitempty,oneof=lastp level"`
	P                   int            `json:"p" yaml:"p" validate:"gte=0"`
	ColorThreshold      float64        `json:"color_threshold" yaml:"color_threshold" validate:"gte=0"` // 0 uses the flat-cluster threshold
	AboveThresholdColor string         `json:"above_threshold_color" yaml:"above_threshold_color" validate:"required"`
	Palette             []string       `json:"palette" yaml:"palette" validate:"min=1,dive,required"`
	LinkColors          map[int]string `json:"link_colors,omitempty" yaml:"link_colors,omitempty" validate:"dive,required"`
}

// Format and label mode values.
var (
	ValidFormats    = []string{"json", "cytoscape", "html"}
	ValidLabelModes = []string{"none", "counts", "clusters", "summary"}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	style := dendro.DefaultStyle()
	return &Config{
		Colors: dendro.DefaultColorTable(),
		Style: StyleConfig{
			NodeRadius:        style.NodeRadius,
			LeafRadius:        style.LeafRadius,
			NeutralFill:       style.NeutralFill,
			LabelSize:         style.LabelSize,
			LabelColor:        style.LabelColor,
			Opacity:           style.Opacity,
			LinkStrokeWidth:   style.LinkStrokeWidth,
			LinkStrokeDash:    style.LinkStrokeDash,
			LinkStrokeOpacity: style.LinkStrokeOpacity,
			AxisLabelAngle:    style.AxisLabelAngle,
		},
		Render: RenderConfig{
			Format:        "json",
			Orientation:   "top",
			Scale:         "linear",
			Width:         800,
			Height:        500,
			ShowNodes:     true,
			Labels:        "clusters",
			SummaryFormat: dendro.DefaultSummaryFormat,
		},
		Layout: LayoutConfig{
			Sort:                string(geometry.SortDistance),
			AboveThresholdColor: geometry.DefaultAboveThresholdColor,
			Palette:             append([]string(nil), geometry.DefaultPalette...),
		},
		SnapDigits: geometry.DefaultSnapDigits,
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from path. A missing file is an error here;
// LoadGlobal treats a missing default file as empty.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Colors = maps.Clone(c.Colors)
	out.Style.LinkStrokeDash = slices.Clone(c.Style.LinkStrokeDash)
	out.Layout.Palette = slices.Clone(c.Layout.Palette)
	out.Layout.LinkColors = maps.Clone(c.Layout.LinkColors)
	return &out
}

// YAML encodes the configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists every invalid field of a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, formatFieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ColorTable returns the configured color table.
func (c *Config) ColorTable() dendro.ColorTable {
	t := make(dendro.ColorTable, len(c.Colors))
	for k, v := range c.Colors {
		t[k] = v
	}
	return t
}

// DendroStyle returns the configured style.
func (c *Config) DendroStyle() dendro.Style {
	s := c.Style
	return dendro.Style{
		NodeRadius:        s.NodeRadius,
		LeafRadius:        s.LeafRadius,
		NeutralFill:       s.NeutralFill,
		LabelSize:         s.LabelSize,
		LabelColor:        s.LabelColor,
		Opacity:           s.Opacity,
		LinkStrokeWidth:   s.LinkStrokeWidth,
		LinkStrokeDash:    append([]float64(nil), s.LinkStrokeDash...),
		LinkStrokeOpacity: s.LinkStrokeOpacity,
		AxisLabelAngle:    s.AxisLabelAngle,
	}
}

// LayoutOptions returns the configured layout options.
func (c *Config) LayoutOptions() geometry.LayoutOptions {
	return geometry.LayoutOptions{
		Sort:                geometry.SortCriteria(c.Layout.Sort),
		Descending:          c.Layout.Descending,
		Truncate:            geometry.TruncateMode(c.Layout.Truncate),
		P:                   c.Layout.P,
		ColorThreshold:      c.Layout.ColorThreshold,
		AboveThresholdColor: c.Layout.AboveThresholdColor,
		Palette:             append([]string(nil), c.Layout.Palette...),
		LinkColor:           linkColorFunc(c.Layout.LinkColors),
	}
}

// linkColorFunc returns a lookup over per-merge color keys, or nil when
// there are none.
func linkColorFunc(colors map[int]string) func(int) string {
	if len(colors) == 0 {
		return nil
	}
	m := maps.Clone(colors)
	return func(id int) string { return m[id] }
}

// RenderOptions returns the configured render options.
func (c *Config) RenderOptions() dendro.RenderOptions {
	return dendro.RenderOptions{
		Orientation: c.Render.Orientation,
		Scale:       c.Render.Scale,
		ShowNodes:   c.Render.ShowNodes,
		Width:       c.Render.Width,
		Height:      c.Render.Height,
	}
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
