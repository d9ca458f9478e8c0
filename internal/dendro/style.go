package dendro

// ColorTable maps the color keys used in geometry to concrete colors.
type ColorTable map[string]string

// DefaultColorTable returns the ten-color categorical table keyed C0..C9.
func DefaultColorTable() ColorTable {
	return ColorTable{
		"C0": "#1f77b4",
		"C1": "#ff7f0e",
		"C2": "#2ca02c",
		"C3": "#d62728",
		"C4": "#9467bd",
		"C5": "#8c564b",
		"C6": "#e377c2",
		"C7": "#7f7f7f",
		"C8": "#bcbd22",
		"C9": "#17becf",
	}
}

// Resolve looks up a color key.
func (t ColorTable) Resolve(key string) (string, bool) {
	c, ok := t[key]
	return c, ok
}

// Style holds the visual attributes applied to every node, link and label.
type Style struct {
	NodeRadius  float64
	LeafRadius  float64
	NeutralFill string // fill of subcluster nodes
	LabelSize   float64
	LabelColor  string
	Opacity     float64

	LinkStrokeWidth   float64
	LinkStrokeDash    []float64
	LinkStrokeOpacity float64

	AxisLabelAngle float64
}

// DefaultStyle returns the default node, link and axis style.
func DefaultStyle() Style {
	return Style{
		NodeRadius:        7,
		LeafRadius:        4,
		NeutralFill:       "#fff",
		LabelSize:         10,
		LabelColor:        "#fff",
		Opacity:           1,
		LinkStrokeWidth:   1,
		LinkStrokeDash:    []float64{1, 0},
		LinkStrokeOpacity: 1,
	}
}
