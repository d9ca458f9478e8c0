package dendro

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/matsen/dendro/internal/cluster"
	"github.com/matsen/dendro/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fourLeafInfo(assignment ...int) *cluster.Info {
	if len(assignment) == 0 {
		assignment = []int{1, 1, 2, 2}
	}
	return cluster.New([]cluster.Merge{
		{A: 0, B: 1, Distance: 1, Count: 2},
		{A: 2, B: 3, Distance: 1, Count: 2},
		{A: 4, B: 5, Distance: 3, Count: 4},
	}, assignment, 2)
}

func fourLeafGeometry() *geometry.Geometry {
	return &geometry.Geometry{
		ICoord:     [][]float64{{5, 5, 15, 15}, {25, 25, 35, 35}, {10, 10, 30, 30}},
		DCoord:     [][]float64{{0, 1, 1, 0}, {0, 1, 1, 0}, {1, 3, 3, 1}},
		ColorList:  []string{"C1", "C2", "C0"},
		LeafLabels: []string{"a", "b", "c", "d"},
		Leaves:     []int{0, 1, 2, 3},
		LeafColors: []string{"C1", "C1", "C2", "C2"},
	}
}

func fiveLeafInfo() *cluster.Info {
	return cluster.New([]cluster.Merge{
		{A: 0, B: 1, Distance: 0.5, Count: 2},
		{A: 5, B: 2, Distance: 1.0, Count: 3},
		{A: 3, B: 4, Distance: 1.2, Count: 2},
		{A: 6, B: 7, Distance: 4.0, Count: 5},
	}, []int{1, 1, 1, 2, 2}, 2)
}

type fakeRecorder struct {
	outcomes []string
	nodes    map[string]int
}

func (r *fakeRecorder) ObserveBuild(outcome string, _ time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
}

func (r *fakeRecorder) AddNodes(nodeType string, n int) {
	if r.nodes == nil {
		r.nodes = make(map[string]int)
	}
	r.nodes[nodeType] += n
}

func nodeByID(t *testing.T, nodes []Node, id int) Node {
	t.Helper()
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %d not found", id)
	return Node{}
}

func TestConvert_FourLeafScenario(t *testing.T) {
	b := NewBuilder(fourLeafInfo())
	d, err := b.Convert(fourLeafGeometry(), GenerateOptions{ComputeNodes: true, Label: ClusterIDLabels})
	require.NoError(t, err)

	require.Len(t, d.Nodes, 7)
	assert.True(t, d.ComputedNodes)

	for i, id := range []int{0, 1, 2, 3} {
		n := d.Nodes[i]
		assert.Equal(t, id, n.ID)
		assert.Equal(t, NodeLeaf, n.Type)
		assert.Equal(t, float64(5+10*i), n.X)
		assert.Zero(t, n.Y)
		assert.Equal(t, 4.0, n.Radius)
		assert.Nil(t, n.ClusterID)
		assert.Empty(t, n.Label)
		assert.NotNil(t, n.HoverText)
	}

	c1 := d.Nodes[4]
	assert.Equal(t, 4, c1.ID)
	assert.Equal(t, NodeCluster, c1.Type)
	assert.Equal(t, "1", c1.Label)
	require.NotNil(t, c1.ClusterID)
	assert.Equal(t, 1, *c1.ClusterID)
	assert.Equal(t, 10.0, c1.X)
	assert.Equal(t, 1.0, c1.Y)
	assert.Equal(t, "#ff7f0e", c1.FillColor)
	assert.Equal(t, 7.0, c1.Radius)

	c2 := d.Nodes[5]
	assert.Equal(t, 5, c2.ID)
	assert.Equal(t, NodeCluster, c2.Type)
	assert.Equal(t, "2", c2.Label)
	assert.Equal(t, "#2ca02c", c2.EdgeColor)

	root := d.Nodes[6]
	assert.Equal(t, 6, root.ID)
	assert.Equal(t, NodeSupercluster, root.Type)
	assert.Nil(t, root.ClusterID)
	assert.Equal(t, 20.0, root.X)
	assert.Equal(t, 3.0, root.Y)
	assert.Equal(t, "#1f77b4", root.FillColor)

	assert.Zero(t, d.CountByType()[NodeSubcluster])

	require.NotNil(t, d.Links[2].ID)
	assert.Equal(t, 6, *d.Links[2].ID)
	assert.Equal(t, [2]int{4, 5}, *d.Links[2].ChildrenID)
	assert.Nil(t, d.Links[2].ClusterID)
	require.NotNil(t, d.Links[0].ClusterID)
	assert.Equal(t, 1, *d.Links[0].ClusterID)

	assert.Equal(t, []AxisLabel{{X: 5, Label: "a"}, {X: 15, Label: "b"}, {X: 25, Label: "c"}, {X: 35, Label: "d"}}, d.AxisLabels)
	assert.Equal(t, [2]float64{5, 35}, d.XDomain)
	assert.Equal(t, [2]float64{0, 3}, d.YDomain)
}

func TestConvert_LinkStyle(t *testing.T) {
	style := DefaultStyle()
	style.LinkStrokeWidth = 2
	style.LinkStrokeDash = []float64{4, 2}
	style.AxisLabelAngle = 45

	d, err := NewBuilder(fourLeafInfo(), WithStyle(style)).Convert(fourLeafGeometry(), GenerateOptions{})
	require.NoError(t, err)

	for _, l := range d.Links {
		assert.Equal(t, 2.0, l.StrokeWidth)
		assert.Equal(t, []float64{4, 2}, l.StrokeDash)
		assert.Equal(t, 1.0, l.StrokeOpacity)
	}
	assert.Equal(t, 45.0, d.AxisLabels[0].LabelAngle)
}

func TestCreate_NodeCountAndIdentity(t *testing.T) {
	info := fiveLeafInfo()
	d, err := NewBuilder(info).Create(geometry.DefaultLayoutOptions(), DefaultGenerateOptions())
	require.NoError(t, err)

	n := info.NumLeaves()
	require.Len(t, d.Nodes, 2*n-1)

	var mergeIDs []int
	for _, node := range d.Nodes[n:] {
		mergeIDs = append(mergeIDs, node.ID)
	}
	sort.Ints(mergeIDs)
	assert.Equal(t, []int{5, 6, 7, 8}, mergeIDs)

	mm, err := info.MergeMap()
	require.NoError(t, err)
	for i, l := range d.Links {
		require.NotNil(t, l.ID, "link %d", i)
		id, ok := mm.Lookup(l.ChildrenID[0], l.ChildrenID[1])
		require.True(t, ok)
		assert.Equal(t, id, *l.ID)
	}
}

func TestNodes_TypesAgainstLeaders(t *testing.T) {
	info := fiveLeafInfo()
	d, err := NewBuilder(info).Create(geometry.DefaultLayoutOptions(), DefaultGenerateOptions())
	require.NoError(t, err)

	leaders, err := info.Leaders()
	require.NoError(t, err)

	clusters := 0
	for _, node := range d.Nodes {
		_, isLeader := leaders.Cluster(node.ID)
		assert.Equal(t, isLeader, node.Type == NodeCluster, "node %d", node.ID)
		if node.Type == NodeCluster {
			clusters++
		}
	}
	assert.Equal(t, 2, clusters)

	sub := nodeByID(t, d.Nodes, 5)
	assert.Equal(t, NodeSubcluster, sub.Type)
	assert.Equal(t, "#fff", sub.FillColor)
	assert.Equal(t, "#ff7f0e", sub.EdgeColor)

	assert.Equal(t, NodeSupercluster, nodeByID(t, d.Nodes, 8).Type)
}

func TestNodes_LeafLeader(t *testing.T) {
	d, err := NewBuilder(fourLeafInfo(1, 1, 2, 3)).Convert(fourLeafGeometry(), DefaultGenerateOptions())
	require.NoError(t, err)

	leaf := nodeByID(t, d.Nodes, 2)
	assert.Equal(t, NodeCluster, leaf.Type)
	require.NotNil(t, leaf.ClusterID)
	assert.Equal(t, 2, *leaf.ClusterID)
	assert.Equal(t, 4.0, leaf.Radius)

	assert.Equal(t, NodeSupercluster, nodeByID(t, d.Nodes, 5).Type)
	assert.Equal(t, NodeCluster, nodeByID(t, d.Nodes, 4).Type)
}

func TestCreate_TruncatedGeometry(t *testing.T) {
	linkage := []cluster.Merge{
		{A: 0, B: 1, Distance: 0.5, Count: 2},
		{A: 5, B: 2, Distance: 1.0, Count: 3},
		{A: 3, B: 4, Distance: 1.2, Count: 2},
		{A: 6, B: 7, Distance: 4.0, Count: 5},
	}

	type want struct {
		id      int
		typ     NodeType
		cluster int // 0 when unset
	}
	tests := []struct {
		name       string
		assignment []int
		mode       geometry.TruncateMode
		p          int
		want       []want
	}{
		{
			name:       "collapsed mixed subtree is a supercluster",
			assignment: []int{1, 1, 2, 3, 3},
			mode:       geometry.TruncateLastP,
			p:          2,
			want: []want{
				{6, NodeSupercluster, 0},
				{7, NodeCluster, 3},
				{8, NodeSupercluster, 0},
			},
		},
		{
			name:       "collapsed leader is a cluster",
			assignment: []int{1, 1, 2, 3, 3},
			mode:       geometry.TruncateLevel,
			p:          1,
			want: []want{
				{2, NodeCluster, 2},
				{5, NodeCluster, 1},
				{3, NodeLeaf, 0},
				{4, NodeLeaf, 0},
				{6, NodeSupercluster, 0},
				{7, NodeCluster, 3},
				{8, NodeSupercluster, 0},
			},
		},
		{
			name:       "collapsed subtree below a leader stays a leaf",
			assignment: []int{1, 1, 1, 2, 2},
			mode:       geometry.TruncateLevel,
			p:          1,
			want: []want{
				{2, NodeLeaf, 0},
				{5, NodeLeaf, 0},
				{3, NodeLeaf, 0},
				{4, NodeLeaf, 0},
				{6, NodeCluster, 1},
				{7, NodeCluster, 2},
				{8, NodeSupercluster, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := geometry.DefaultLayoutOptions()
			layout.Truncate = tt.mode
			layout.P = tt.p

			d, err := NewBuilder(cluster.New(linkage, tt.assignment, 2)).Create(layout, DefaultGenerateOptions())
			require.NoError(t, err)
			require.Len(t, d.Nodes, len(tt.want))

			for i, w := range tt.want {
				n := d.Nodes[i]
				assert.Equal(t, w.id, n.ID, "node %d", i)
				assert.Equal(t, w.typ, n.Type, "node %d", w.id)
				if w.cluster == 0 {
					assert.Nil(t, n.ClusterID, "node %d", w.id)
				} else if assert.NotNil(t, n.ClusterID, "node %d", w.id) {
					assert.Equal(t, w.cluster, *n.ClusterID)
				}
			}
		})
	}
}

func TestNodes_Idempotent(t *testing.T) {
	b := NewBuilder(fourLeafInfo())
	require.NoError(t, b.SetGeometry(fourLeafGeometry()))

	calls := 0
	label := func(_ *cluster.Info, n *Node) string {
		calls++
		return string(n.Type)
	}

	first, err := b.Nodes(label, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, calls)

	second, err := b.Nodes(func(*cluster.Info, *Node) string {
		t.Fatal("callbacks must not run on a memoized result")
		return ""
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, calls)
	assert.Equal(t, first, second)

	second[0].Label = "changed"
	*second[4].ClusterID = 99
	third, err := b.Nodes(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestSetGeometry_ResetsMemo(t *testing.T) {
	b := NewBuilder(fourLeafInfo())
	require.NoError(t, b.SetGeometry(fourLeafGeometry()))

	_, err := b.Nodes(CountLabels, nil)
	require.NoError(t, err)

	require.NoError(t, b.SetGeometry(fourLeafGeometry()))
	nodes, err := b.Nodes(ClusterIDLabels, nil)
	require.NoError(t, err)
	assert.Equal(t, "1", nodes[4].Label)
}

func TestNodes_OrderViolation(t *testing.T) {
	g := fourLeafGeometry()
	g.ICoord[0], g.ICoord[2] = g.ICoord[2], g.ICoord[0]
	g.DCoord[0], g.DCoord[2] = g.DCoord[2], g.DCoord[0]
	g.ColorList[0], g.ColorList[2] = g.ColorList[2], g.ColorList[0]

	rec := &fakeRecorder{}
	b := NewBuilder(fourLeafInfo(), WithRecorder(rec))
	_, err := b.Convert(g, DefaultGenerateOptions())

	var order *OrderViolationError
	require.True(t, errors.As(err, &order), "got %v", err)
	assert.Equal(t, 0, order.Merge)
	assert.Equal(t, "left", order.Side)
	assert.Equal(t, []string{"order_violation"}, rec.outcomes)
	assert.Empty(t, rec.nodes)

	_, err = b.Nodes(nil, nil)
	assert.True(t, errors.As(err, &order), "no partial node set is kept")
}

func TestNodes_ReversedChildOrder(t *testing.T) {
	g := fourLeafGeometry()
	g.ICoord[2] = []float64{30, 30, 10, 10}
	g.DCoord[2] = []float64{1, 3, 3, 1}

	d, err := NewBuilder(fourLeafInfo()).Convert(g, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Equal(t, 6, d.Nodes[6].ID)
	assert.Equal(t, [2]int{5, 4}, *d.Links[2].ChildrenID)
}

func TestNodes_RoundOffBelowSnapGrid(t *testing.T) {
	g := fourLeafGeometry()
	g.ICoord[2] = []float64{10 + 1e-9, 10, 30, 30 - 1e-9}
	g.DCoord[2] = []float64{1 - 1e-10, 3, 3, 1 + 1e-10}

	d, err := NewBuilder(fourLeafInfo()).Convert(g, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Equal(t, NodeSupercluster, d.Nodes[6].Type)
}

func TestNodes_IdentityMismatch(t *testing.T) {
	info := cluster.New([]cluster.Merge{
		{A: 0, B: 2, Distance: 1, Count: 2},
		{A: 1, B: 3, Distance: 1, Count: 2},
		{A: 4, B: 5, Distance: 3, Count: 4},
	}, []int{1, 2, 1, 2}, 2)

	_, err := NewBuilder(info).Convert(fourLeafGeometry(), DefaultGenerateOptions())
	var mismatch *IdentityMismatchError
	require.True(t, errors.As(err, &mismatch), "got %v", err)
	assert.Equal(t, IdentityMismatchError{Merge: 0, Left: 0, Right: 1}, *mismatch)
}

func TestNodes_MergeDrawnTwice(t *testing.T) {
	info := cluster.New([]cluster.Merge{{A: 0, B: 1, Distance: 1, Count: 2}}, []int{1, 1}, 2)
	g := &geometry.Geometry{
		ICoord:     [][]float64{{5, 5, 15, 15}, {5, 5, 15, 15}},
		DCoord:     [][]float64{{0, 1, 1, 0}, {0, 2, 2, 0}},
		ColorList:  []string{"C0", "C0"},
		LeafLabels: []string{"a", "b"},
		Leaves:     []int{0, 1},
		LeafColors: []string{"C0", "C0"},
	}

	calls := 0
	label := func(_ *cluster.Info, _ *Node) string {
		calls++
		return ""
	}
	b := NewBuilder(info)
	_, err := b.Convert(g, GenerateOptions{ComputeNodes: true, Label: label})

	var mismatch *IdentityMismatchError
	require.True(t, errors.As(err, &mismatch), "got %v", err)
	assert.Equal(t, 1, mismatch.Merge)
	assert.Equal(t, [2]int{0, 1}, [2]int{mismatch.Left, mismatch.Right})
	assert.Contains(t, err.Error(), "merge 2 was already drawn by link 0")
	assert.Equal(t, 3, calls, "the rejected bracket is never enriched")
	assert.Equal(t, "identity_mismatch", ErrorKind(err))
}

func TestNodes_CoordinateCollision(t *testing.T) {
	info := cluster.New([]cluster.Merge{{A: 0, B: 1, Distance: 1, Count: 2}}, []int{1, 1}, 2)
	g := &geometry.Geometry{
		ICoord:     [][]float64{{5, 5, 15, 15}, {5, 5, 15, 15}},
		DCoord:     [][]float64{{0, 1, 1, 0}, {0, 1, 1, 0}},
		ColorList:  []string{"C0", "C0"},
		LeafLabels: []string{"a", "b"},
		Leaves:     []int{0, 1},
		LeafColors: []string{"C0", "C0"},
	}

	_, err := NewBuilder(info).Convert(g, DefaultGenerateOptions())
	var collision *CoordinateCollisionError
	require.True(t, errors.As(err, &collision), "got %v", err)
	assert.Equal(t, CoordinateCollisionError{Merge: 1, X: 10, Y: 1, Existing: 2}, *collision)
}

func TestUnknownColorKey(t *testing.T) {
	t.Run("link", func(t *testing.T) {
		g := fourLeafGeometry()
		g.ColorList[1] = "C42"
		_, err := NewBuilder(fourLeafInfo()).Convert(g, GenerateOptions{})
		var unknown *UnknownColorKeyError
		require.True(t, errors.As(err, &unknown), "got %v", err)
		assert.Equal(t, UnknownColorKeyError{Key: "C42", Element: "link", Index: 1}, *unknown)
	})

	t.Run("leaf", func(t *testing.T) {
		g := fourLeafGeometry()
		g.LeafColors[0] = "teal"
		_, err := NewBuilder(fourLeafInfo()).Convert(g, DefaultGenerateOptions())
		var unknown *UnknownColorKeyError
		require.True(t, errors.As(err, &unknown), "got %v", err)
		assert.Equal(t, "leaf", unknown.Element)
	})

	t.Run("custom table", func(t *testing.T) {
		g := fourLeafGeometry()
		g.ColorList = []string{"x", "x", "x"}
		g.LeafColors = []string{"x", "x", "x", "x"}
		d, err := NewBuilder(fourLeafInfo(), WithColorTable(ColorTable{"x": "#000"})).Convert(g, DefaultGenerateOptions())
		require.NoError(t, err)
		assert.Equal(t, "#000", d.Links[0].FillColor)
	})
}

func TestGenerate_WithoutNodes(t *testing.T) {
	b := NewBuilder(nil)
	require.NoError(t, b.SetGeometry(fourLeafGeometry()))

	d, err := b.Generate(GenerateOptions{})
	require.NoError(t, err)
	assert.False(t, d.ComputedNodes)
	assert.Empty(t, d.Nodes)
	assert.Nil(t, d.Links[0].ID)
	assert.ErrorIs(t, d.CheckNodes(true), ErrNodesNotComputed)
	assert.NoError(t, d.CheckNodes(false))

	_, err = b.Nodes(nil, nil)
	var dataErr *cluster.DataError
	assert.True(t, errors.As(err, &dataErr))
}

func TestGenerate_NoGeometry(t *testing.T) {
	_, err := NewBuilder(fourLeafInfo()).Generate(DefaultGenerateOptions())
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = NewBuilder(nil).Create(geometry.DefaultLayoutOptions(), DefaultGenerateOptions())
	var dataErr *cluster.DataError
	assert.True(t, errors.As(err, &dataErr))
}

func TestRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	b := NewBuilder(fourLeafInfo(), WithRecorder(rec))
	_, err := b.Convert(fourLeafGeometry(), DefaultGenerateOptions())
	require.NoError(t, err)
	_, err = b.Generate(DefaultGenerateOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"ok", "ok"}, rec.outcomes)
	assert.Equal(t, map[string]int{"leaf": 4, "cluster": 2, "supercluster": 1}, rec.nodes)
}

func TestClusterSummaryLabels(t *testing.T) {
	d, err := NewBuilder(fiveLeafInfo()).Create(geometry.DefaultLayoutOptions(), GenerateOptions{
		ComputeNodes: true,
		Label:        ClusterSummaryLabels(""),
	})
	require.NoError(t, err)

	var labelled []string
	for _, n := range d.Nodes {
		if n.Label != " " {
			labelled = append(labelled, n.Label)
		}
	}
	assert.Equal(t, []string{"Cluster 1 (3 data points)", "Cluster 2 (2 data points)"}, labelled)
}

func TestCountLabelsAndSummaryHover(t *testing.T) {
	d, err := NewBuilder(fourLeafInfo()).Convert(fourLeafGeometry(), GenerateOptions{
		ComputeNodes: true,
		Label:        CountLabels,
		Hover:        SummaryHover,
	})
	require.NoError(t, err)

	assert.Equal(t, "1", d.Nodes[0].Label)
	assert.Equal(t, "4", d.Nodes[6].Label)
	assert.Equal(t, map[string]string{
		"id": "4", "type": "cluster", "height": "1", "members": "2", "cluster": "1",
	}, d.Nodes[4].HoverText)
}

func TestRenderOptionsValidate(t *testing.T) {
	withNodes, err := NewBuilder(fourLeafInfo()).Convert(fourLeafGeometry(), DefaultGenerateOptions())
	require.NoError(t, err)
	bare, err := NewBuilder(nil).Convert(fourLeafGeometry(), GenerateOptions{})
	require.NoError(t, err)

	assert.NoError(t, DefaultRenderOptions().Validate(withNodes))
	assert.NoError(t, RenderOptions{}.Validate(bare))

	var orientation *InvalidOrientationError
	err = RenderOptions{Orientation: "sideways"}.Validate(withNodes)
	require.True(t, errors.As(err, &orientation), "got %v", err)
	assert.Equal(t, ValidOrientations, orientation.Supported)

	var scale *InvalidScaleError
	err = RenderOptions{Scale: "quadratic"}.Validate(withNodes)
	require.True(t, errors.As(err, &scale), "got %v", err)

	err = RenderOptions{Scale: "symlog"}.Validate(withNodes, "linear", "log")
	require.True(t, errors.As(err, &scale), "got %v", err)
	assert.Equal(t, []string{"linear", "log"}, scale.Supported)

	assert.ErrorIs(t, DefaultRenderOptions().Validate(bare), ErrNodesNotComputed)
	assert.ErrorContains(t, RenderOptions{Width: -1}.Validate(bare), "width")
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "ok", ErrorKind(nil))
	assert.Equal(t, "malformed_geometry", ErrorKind(&geometry.MalformedError{Detail: "x"}))
	assert.Equal(t, "cluster_data", ErrorKind(&cluster.DataError{Reason: "x"}))
	assert.Equal(t, "nodes_not_computed", ErrorKind(ErrNodesNotComputed))
	assert.True(t, IsDataError(&OrderViolationError{}))
	assert.False(t, IsDataError(ErrNoGeometry))
	assert.Equal(t, "error", ErrorKind(errors.New("boom")))
}

func TestNodeTypeValid(t *testing.T) {
	for _, nt := range NodeTypes {
		assert.True(t, nt.Valid(), nt)
	}
	assert.False(t, NodeType("root").Valid())
	assert.False(t, NodeType("").Valid())
}

func TestBuilderLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := NewBuilder(fourLeafInfo(), WithLogger(zap.New(core)))

	_, err := b.Convert(fourLeafGeometry(), DefaultGenerateOptions())
	require.NoError(t, err)

	computed := logs.FilterMessage("nodes computed").All()
	require.Len(t, computed, 1)
	fields := computed[0].ContextMap()
	assert.EqualValues(t, 7, fields["nodes"])
	assert.EqualValues(t, 4, fields["leaf"])
	assert.EqualValues(t, 2, fields["cluster"])
	assert.Equal(t, 1, logs.FilterMessage("geometry set").Len())

	g := fourLeafGeometry()
	g.ColorList[1] = "C42"
	_, err = b.Convert(g, DefaultGenerateOptions())
	require.Error(t, err)

	failed := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, failed, 1)
	assert.Equal(t, "unknown_color_key", failed[0].ContextMap()["outcome"])
}
