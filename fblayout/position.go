package fblayout

import (
	"math"
	"sort"

	"fbnet/fbgraph"
	"fbnet/lib/geo"
)

// positionInstances maps logical document coordinates to pixel space: the
// minimum coordinate lands at the margin and everything scales uniformly.
// Blocks whose name label is wider than the block shift right by half the
// difference so the label stays centered over the block.
func (e *Engine) positionInstances(g *fbgraph.Graph) {
	if len(g.Instances) == 0 {
		return
	}
	if e.autoScale {
		e.Scale = autoScaleFor(g)
	}

	minX := math.Inf(1)
	minY := math.Inf(1)
	for _, inst := range g.Instances {
		minX = math.Min(minX, inst.X)
		minY = math.Min(minY, inst.Y)
	}

	for _, inst := range g.Instances {
		x := (inst.X-minX)*e.Scale + MARGIN + (inst.FigureWidth-inst.Box.Width)/2
		y := (inst.Y-minY)*e.Scale + MARGIN
		inst.Box.TopLeft = geo.NewPoint(x, y)
	}

	// pixel mapping of logical (0,0), for later hint conversions
	g.OriginX = MARGIN - minX*e.Scale
	g.OriginY = MARGIN - minY*e.Scale
}

// autoScaleFor finds the smallest scale, floored at DEFAULT_SCALE, at
// which no two neighboring blocks overlap. Pairs roughly stacked (x gap
// under three times the y gap) constrain the vertical spacing, pairs
// roughly side by side the horizontal one. Requires sized blocks.
func autoScaleFor(g *fbgraph.Graph) float64 {
	if len(g.Instances) < 2 {
		return DEFAULT_SCALE
	}

	byX := make([]*fbgraph.Instance, len(g.Instances))
	copy(byX, g.Instances)
	sort.SliceStable(byX, func(i, j int) bool { return byX[i].X < byX[j].X })
	byY := make([]*fbgraph.Instance, len(g.Instances))
	copy(byY, g.Instances)
	sort.SliceStable(byY, func(i, j int) bool { return byY[i].Y < byY[j].Y })

	minScale := 0.
	for i, top := range byY {
		for _, bottom := range byY[i+1:] {
			dy := bottom.Y - top.Y
			if dy <= 0 {
				continue
			}
			if math.Abs(top.X-bottom.X) < dy*3 {
				minScale = math.Max(minScale, (top.Box.Height+AUTO_SCALE_GAP)/dy)
			}
		}
	}
	for i, left := range byX {
		for _, right := range byX[i+1:] {
			dx := right.X - left.X
			if dx <= 0 {
				continue
			}
			if math.Abs(left.Y-right.Y) < dx*3 {
				minScale = math.Max(minScale, (left.Box.Width+AUTO_SCALE_GAP)/dx)
			}
		}
	}
	return math.Max(minScale, DEFAULT_SCALE)
}

// anchorPorts assigns the pixel attachment point of every port from its
// row index. Ports sit vertically centered in their row; left-side ports
// anchor at the block's left edge, right-side ports at the right edge.
func (e *Engine) anchorPorts(inst *fbgraph.Instance) {
	inst.Anchors = make(map[string]*geo.Point)

	left := inst.Box.TopLeft.X
	right := inst.Box.Right()
	top := inst.Box.TopLeft.Y

	walk := func(ports []fbgraph.Port, x, sectionTop float64) {
		y := sectionTop + PORT_ROW_HEIGHT/2
		for _, p := range ports {
			inst.Anchors[p.Name] = geo.NewPoint(x, top+y)
			y += PORT_ROW_HEIGHT
		}
	}

	walk(inst.EventInputs, left, 0)
	walk(inst.EventOutputs, right, 0)
	walk(inst.DataInputs, left, inst.NameSectionBottom)
	walk(inst.DataOutputs, right, inst.NameSectionBottom)
	walk(inst.Sockets, left, inst.AdapterSectionTop)
	walk(inst.Plugs, right, inst.AdapterSectionTop)
}
