package dendro

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Supported orientations and value-axis scales.
var (
	ValidOrientations = []string{"top", "bottom", "left", "right"}
	ValidScales       = []string{"linear", "log", "symlog"}
)

var validate = validator.New()

// RenderOptions are the presentation choices shared by every back end.
type RenderOptions struct {
	Orientation string  `validate:"omitempty,oneof=top bottom left right"`
	Scale       string  `validate:"omitempty,oneof=linear log symlog"`
	ShowNodes   bool
	Width       float64 `validate:"gte=0"`
	Height      float64 `validate:"gte=0"`
}

// DefaultRenderOptions returns top orientation on a linear scale with nodes.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Orientation: "top",
		Scale:       "linear",
		ShowNodes:   true,
	}
}

// Normalize fills empty orientation and scale with their defaults.
func (o RenderOptions) Normalize() RenderOptions {
	if o.Orientation == "" {
		o.Orientation = "top"
	}
	if o.Scale == "" {
		o.Scale = "linear"
	}
	return o
}

// Validate checks the options against d. supported narrows the scales a
// back end accepts; when empty every scale in ValidScales is accepted.
func (o RenderOptions) Validate(d *Dendrogram, supported ...string) error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		fe := verrs[0]
		switch fe.Field() {
		case "Orientation":
			return &InvalidOrientationError{Orientation: o.Orientation, Supported: ValidOrientations}
		case "Scale":
			return &InvalidScaleError{Scale: o.Scale, Supported: ValidScales}
		default:
			return fmt.Errorf("dendro: invalid %s: must be non-negative", strings.ToLower(fe.Field()))
		}
	}

	o = o.Normalize()
	if len(supported) > 0 && !slices.Contains(supported, o.Scale) {
		return &InvalidScaleError{Scale: o.Scale, Supported: supported}
	}
	if d == nil {
		return nil
	}
	return d.CheckNodes(o.ShowNodes)
}
