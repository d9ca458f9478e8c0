package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/matsen/dendro/internal/dendro"
)

const (
	chartMargin = 20.0
	axisRoom    = 60.0 // space reserved for leaf labels
	labelGap    = 8.0
)

// valueScale maps merge heights onto [0, 1].
type valueScale struct {
	kind   string
	lo, hi float64
}

func newValueScale(kind string, d *dendro.Dendrogram) valueScale {
	s := valueScale{kind: kind, hi: d.YDomain[1]}
	if kind == "log" {
		// The baseline sits at zero, which a log axis cannot show; anchor it
		// half a decade below the smallest positive height.
		minPos := math.Inf(1)
		for _, l := range d.Links {
			for _, y := range l.Y {
				if y > 0 && y < minPos {
					minPos = y
				}
			}
		}
		if math.IsInf(minPos, 1) {
			minPos = 1
		}
		s.lo = minPos / math.Sqrt(10)
		if s.hi <= s.lo {
			s.hi = s.lo * 10
		}
	}
	return s
}

func (s valueScale) transform(v float64) float64 {
	switch s.kind {
	case "log":
		return math.Log10(math.Max(v, s.lo))
	case "symlog":
		return math.Copysign(math.Log1p(math.Abs(v)), v)
	default:
		return v
	}
}

// unit returns v's position on the value axis, 0 at the baseline.
func (s valueScale) unit(v float64) float64 {
	lo, hi := s.transform(s.lo), s.transform(s.hi)
	if hi == lo {
		return 0
	}
	return (s.transform(v) - lo) / (hi - lo)
}

// projection places chart coordinates on the SVG canvas.
type projection struct {
	orientation   string
	width, height float64
	xLo, xHi      float64
	scale         valueScale
}

func newProjection(d *dendro.Dendrogram, opts dendro.RenderOptions) projection {
	xLo, xHi := d.XDomain[0], d.XDomain[1]
	if xHi == xLo {
		xLo, xHi = xLo-1, xHi+1
	}
	return projection{
		orientation: opts.Orientation,
		width:       opts.Width,
		height:      opts.Height,
		xLo:         xLo,
		xHi:         xHi,
		scale:       newValueScale(opts.Scale, d),
	}
}

// point maps leaf-axis position x and height y to canvas coordinates.
func (p projection) point(x, y float64) (float64, float64) {
	u := (x - p.xLo) / (p.xHi - p.xLo)
	v := p.scale.unit(y)

	left, right := chartMargin, p.width-chartMargin
	top, bottom := chartMargin, p.height-chartMargin

	switch p.orientation {
	case "bottom":
		top += axisRoom
		return left + u*(right-left), top + v*(bottom-top)
	case "left":
		right -= axisRoom
		return right - v*(right-left), top + u*(bottom-top)
	case "right":
		left += axisRoom
		return left + v*(right-left), top + u*(bottom-top)
	default:
		bottom -= axisRoom
		return left + u*(right-left), bottom - v*(bottom-top)
	}
}

// tick places a leaf label just outside the baseline.
func (p projection) tick(x float64) (px, py float64, anchor string) {
	px, py = p.point(x, p.scale.lo)
	switch p.orientation {
	case "bottom":
		return px, py - labelGap, "middle"
	case "left":
		return px + labelGap, py, "start"
	case "right":
		return px - labelGap, py, "end"
	default:
		return px, py + labelGap + 4, "middle"
	}
}

type svgLink struct {
	Path    string
	Color   string
	Width   float64
	Dash    string
	Opacity float64
}

type svgNode struct {
	CX, CY     float64
	R          float64
	Fill       string
	Stroke     string
	Opacity    float64
	Title      string
	Label      string
	LabelSize  float64
	LabelColor string
}

type svgTick struct {
	X, Y      float64
	Text      string
	Anchor    string
	Transform string
}

type svgChart struct {
	Width  float64
	Height float64
	Links  []svgLink
	Nodes  []svgNode
	Ticks  []svgTick
}

func buildChart(d *dendro.Dendrogram, opts dendro.RenderOptions) svgChart {
	p := newProjection(d, opts)
	chart := svgChart{Width: opts.Width, Height: opts.Height}

	for _, l := range d.Links {
		var path strings.Builder
		for j := 0; j < 4; j++ {
			x, y := p.point(l.X[j], l.Y[j])
			cmd := "L"
			if j == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.2f,%.2f", cmd, x, y)
		}
		chart.Links = append(chart.Links, svgLink{
			Path:    path.String(),
			Color:   l.FillColor,
			Width:   l.StrokeWidth,
			Dash:    dashArray(l.StrokeDash),
			Opacity: l.StrokeOpacity,
		})
	}

	if opts.ShowNodes {
		for _, n := range d.Nodes {
			cx, cy := p.point(n.X, n.Y)
			chart.Nodes = append(chart.Nodes, svgNode{
				CX:         cx,
				CY:         cy,
				R:          n.Radius,
				Fill:       n.FillColor,
				Stroke:     n.EdgeColor,
				Opacity:    n.Opacity,
				Title:      hoverTitle(n.HoverText),
				Label:      strings.TrimSpace(n.Label),
				LabelSize:  n.LabelSize,
				LabelColor: n.LabelColor,
			})
		}
	}

	for _, a := range d.AxisLabels {
		x, y, anchor := p.tick(a.X)
		t := svgTick{X: x, Y: y, Text: a.Label, Anchor: anchor}
		if a.LabelAngle != 0 {
			t.Transform = fmt.Sprintf("rotate(%g %.2f %.2f)", a.LabelAngle, x, y)
		}
		chart.Ticks = append(chart.Ticks, t)
	}
	return chart
}

func dashArray(dash []float64) string {
	parts := make([]string, len(dash))
	for i, v := range dash {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " ")
}

// hoverTitle flattens hover text into sorted "key: value" lines.
func hoverTitle(hover map[string]string) string {
	if len(hover) == 0 {
		return ""
	}
	keys := make([]string, 0, len(hover))
	for k := range hover {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + ": " + hover[k]
	}
	return strings.Join(lines, "\n")
}
