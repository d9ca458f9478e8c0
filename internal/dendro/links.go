package dendro

// links builds one styled link per bracket, in emission order.
func (b *Builder) links() ([]Link, error) {
	g := b.geo
	links := make([]Link, g.NumLinks())
	for i := range links {
		color, err := b.color(g.LinkColors[i], "link", i)
		if err != nil {
			return nil, err
		}
		links[i] = Link{
			X:             g.X[i],
			Y:             g.Y[i],
			FillColor:     color,
			StrokeWidth:   b.style.LinkStrokeWidth,
			StrokeDash:    append([]float64(nil), b.style.LinkStrokeDash...),
			StrokeOpacity: b.style.LinkStrokeOpacity,
		}
	}
	return links, nil
}

// annotateLinks copies merge identities onto links once nodes are known.
func (b *Builder) annotateLinks(links []Link) {
	if len(b.merges) != len(links) {
		return
	}
	for i, m := range b.merges {
		id := m.id
		children := m.children
		links[i].ID = &id
		links[i].ChildrenID = &children
		if m.clusterID != nil {
			c := *m.clusterID
			links[i].ClusterID = &c
		}
	}
}

func (b *Builder) axisLabels() []AxisLabel {
	g := b.geo
	labels := make([]AxisLabel, len(g.LeafPositions))
	for i, x := range g.LeafPositions {
		labels[i] = AxisLabel{
			X:          x,
			Label:      g.LeafLabels[i],
			LabelAngle: b.style.AxisLabelAngle,
		}
	}
	return labels
}
