package dendro

import (
	"time"

	"github.com/matsen/dendro/internal/cluster"
	"github.com/matsen/dendro/internal/geometry"
	"go.uber.org/zap"
)

// Recorder receives build outcomes and node counts.
type Recorder interface {
	ObserveBuild(outcome string, elapsed time.Duration)
	AddNodes(nodeType string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveBuild(string, time.Duration) {}
func (nopRecorder) AddNodes(string, int)               {}

// Option configures a Builder.
type Option func(*Builder)

// WithColorTable replaces the default color table.
func WithColorTable(t ColorTable) Option {
	return func(b *Builder) {
		if t != nil {
			b.colors = t
		}
	}
}

// WithStyle replaces the default style.
func WithStyle(s Style) Option {
	return func(b *Builder) { b.style = s }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithSnapDigits sets the number of decimal digits coordinates are snapped
// to when matching bracket feet against registered nodes.
func WithSnapDigits(digits int) Option {
	return func(b *Builder) { b.digits = digits }
}

// GenerateOptions controls what Generate computes.
type GenerateOptions struct {
	ComputeNodes bool
	Label        LabelFunc
	Hover        HoverFunc
}

// DefaultGenerateOptions computes nodes with blank labels and hover text.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{ComputeNodes: true}
}

// mergeRecord names the merge behind one link.
type mergeRecord struct {
	id        int
	children  [2]int
	clusterID *int
}

// Builder assembles a Dendrogram from geometry and clustering data.
//
// Nodes are computed at most once per geometry: later calls return copies
// of the first result without invoking enrichment callbacks again. A
// Builder is not safe for concurrent use.
type Builder struct {
	info     *cluster.Info
	colors   ColorTable
	style    Style
	digits   int
	logger   *zap.Logger
	recorder Recorder

	geo    *geometry.Normalized
	nodes  []Node
	merges []mergeRecord
}

// NewBuilder creates a Builder. info may be nil when only links and axis
// labels are needed.
func NewBuilder(info *cluster.Info, opts ...Option) *Builder {
	b := &Builder{
		info:     info,
		colors:   DefaultColorTable(),
		style:    DefaultStyle(),
		digits:   geometry.DefaultSnapDigits,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Info returns the clustering data the builder was created with.
func (b *Builder) Info() *cluster.Info {
	return b.info
}

// SetGeometry validates and installs geometry, discarding any nodes
// computed for previous geometry.
func (b *Builder) SetGeometry(g *geometry.Geometry) error {
	n, err := geometry.Ingest(g, b.digits)
	if err != nil {
		return err
	}
	b.geo = n
	b.nodes = nil
	b.merges = nil
	b.logger.Debug("geometry set",
		zap.Int("links", n.NumLinks()),
		zap.Int("leaves", len(n.Leaves)))
	return nil
}

// HasGeometry returns true once geometry was set or laid out.
func (b *Builder) HasGeometry() bool {
	return b.geo != nil
}

// Convert sets g as the geometry and generates the dendrogram from it.
func (b *Builder) Convert(g *geometry.Geometry, opts GenerateOptions) (*Dendrogram, error) {
	start := time.Now()
	if err := b.SetGeometry(g); err != nil {
		b.observe(start, err)
		return nil, err
	}
	return b.generate(start, opts)
}

// Create lays out geometry from the clustering data when none was set, then
// generates the dendrogram.
func (b *Builder) Create(layout geometry.LayoutOptions, opts GenerateOptions) (*Dendrogram, error) {
	start := time.Now()
	if b.geo == nil {
		if b.info == nil {
			err := &cluster.DataError{Reason: "no clustering data to lay out"}
			b.observe(start, err)
			return nil, err
		}
		g, err := geometry.Layout(b.info, layout)
		if err == nil {
			err = b.SetGeometry(g)
		}
		if err != nil {
			b.observe(start, err)
			return nil, err
		}
	}
	return b.generate(start, opts)
}

// Generate assembles the dendrogram from the current geometry.
func (b *Builder) Generate(opts GenerateOptions) (*Dendrogram, error) {
	return b.generate(time.Now(), opts)
}

func (b *Builder) generate(start time.Time, opts GenerateOptions) (*Dendrogram, error) {
	d, err := b.assemble(opts)
	b.observe(start, err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (b *Builder) assemble(opts GenerateOptions) (*Dendrogram, error) {
	if b.geo == nil {
		return nil, ErrNoGeometry
	}

	links, err := b.links()
	if err != nil {
		return nil, err
	}

	d := &Dendrogram{
		AxisLabels: b.axisLabels(),
		Links:      links,
		Nodes:      []Node{},
	}
	d.XDomain, d.YDomain = b.geo.Domains()

	if opts.ComputeNodes {
		nodes, err := b.Nodes(opts.Label, opts.Hover)
		if err != nil {
			return nil, err
		}
		d.Nodes = nodes
		d.ComputedNodes = true
		b.annotateLinks(d.Links)
	}
	return d, nil
}

func (b *Builder) observe(start time.Time, err error) {
	outcome := ErrorKind(err)
	b.recorder.ObserveBuild(outcome, time.Since(start))
	if err != nil {
		b.logger.Warn("dendrogram build failed", zap.String("outcome", outcome), zap.Error(err))
	}
}

func (b *Builder) color(key, element string, index int) (string, error) {
	c, ok := b.colors.Resolve(key)
	if !ok {
		return "", &UnknownColorKeyError{Key: key, Element: element, Index: index}
	}
	return c, nil
}
