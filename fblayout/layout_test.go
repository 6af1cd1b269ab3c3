package fblayout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fbnet/fbgraph"
	"fbnet/lib/go2"
	"fbnet/lib/log"
)

func testEngine() *Engine {
	return NewEngine(DEFAULT_SCALE, nil, nil)
}

func delayBlock() *fbgraph.Instance {
	return &fbgraph.Instance{
		Name:     "FB1",
		TypeName: "E_SW",
		EventInputs: []fbgraph.Port{
			{Name: "INIT", Type: "Event"},
			{Name: "REQ", Type: "Event"},
		},
		EventOutputs: []fbgraph.Port{{Name: "CNF", Type: "Event"}},
		DataInputs:   []fbgraph.Port{{Name: "QI", Type: "BOOL"}},
	}
}

func TestSizeInstance(t *testing.T) {
	e := testEngine()
	inst := delayBlock()
	e.sizeInstance(inst)

	// 2 event rows, 1 name row, 1 data row
	assert.Equal(t, 64., inst.Box.Height)
	assert.Equal(t, 32., inst.EventSectionHeight)
	assert.Equal(t, 32., inst.NameSectionTop)
	assert.Equal(t, 48., inst.NameSectionBottom)
	assert.Equal(t, 64., inst.AdapterSectionTop)
	assert.Equal(t, 0., inst.AdapterSectionHeight)

	// pin columns dominate both the minimum and the name strip here:
	// INIT (34 + glyph) | gap | CNF (25.5 + glyph)
	assert.Equal(t, 86.5, inst.Box.Width)
	assert.Equal(t, 86.5, inst.FigureWidth)
}

func TestSizeInstanceZeroPorts(t *testing.T) {
	e := testEngine()
	inst := &fbgraph.Instance{Name: "N", TypeName: "X"}
	e.sizeInstance(inst)

	// one empty event row plus the name row
	assert.Equal(t, 32., inst.Box.Height)
	assert.Equal(t, 80., inst.Box.Width)
}

func TestSizeInstanceMargins(t *testing.T) {
	settings := fbgraph.DefaultSettings()
	settings.MarginTopBottom = 10
	settings.MarginLeftRight = 6
	e := NewEngine(0, settings, nil)

	inst := delayBlock()
	e.sizeInstance(inst)
	assert.Equal(t, 74., inst.Box.Height)
	assert.Equal(t, 92.5, inst.Box.Width)
}

func TestPositionInstances(t *testing.T) {
	e := testEngine()
	g := &fbgraph.Graph{
		Instances: []*fbgraph.Instance{
			{Name: "A", TypeName: "X", X: 0, Y: 0},
			{Name: "B", TypeName: "X", X: 1000, Y: 500},
		},
	}
	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)

	assert.Equal(t, 60., g.Instances[0].Box.TopLeft.X)
	assert.Equal(t, 60., g.Instances[0].Box.TopLeft.Y)
	assert.Equal(t, 1000*0.16+60, g.Instances[1].Box.TopLeft.X)
	assert.Equal(t, 500*0.16+60, g.Instances[1].Box.TopLeft.Y)
	assert.Equal(t, 60., g.OriginX)
	assert.Equal(t, 60., g.OriginY)
}

func TestPositionInstancesWideLabel(t *testing.T) {
	e := testEngine()
	// the label is wider than the block, so the block shifts right to
	// stay centered under it
	g := &fbgraph.Graph{
		Instances: []*fbgraph.Instance{
			{Name: "A_VERY_LONG_INSTANCE_NAME", TypeName: "X"},
		},
	}
	e.sizeInstance(g.Instances[0])
	e.positionInstances(g)

	inst := g.Instances[0]
	assert.Greater(t, inst.FigureWidth, inst.Box.Width)
	assert.Equal(t, 60+(inst.FigureWidth-inst.Box.Width)/2, inst.Box.TopLeft.X)
}

func TestAutoScaleSeparatesAdjacentBlocks(t *testing.T) {
	e := NewEngine(0, nil, nil)
	g := &fbgraph.Graph{
		Instances: []*fbgraph.Instance{
			{Name: "A", TypeName: "X", X: 0, Y: 0},
			{Name: "B", TypeName: "X", X: 200, Y: 0},
		},
	}
	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)

	// (block width 80 + gap 60) / 200 canvas units
	assert.Equal(t, 0.7, e.Scale)
	a, b := g.Instances[0], g.Instances[1]
	assert.Equal(t, 60., a.Box.TopLeft.X)
	assert.Equal(t, 60+200*0.7, b.Box.TopLeft.X)
	assert.GreaterOrEqual(t, b.Box.TopLeft.X-a.Box.Right(), AUTO_SCALE_GAP)
}

func TestAutoScaleStackedBlocks(t *testing.T) {
	e := NewEngine(0, nil, nil)
	g := &fbgraph.Graph{
		Instances: []*fbgraph.Instance{
			{Name: "A", TypeName: "X", X: 0, Y: 0},
			{Name: "B", TypeName: "X", X: 0, Y: 100},
		},
	}
	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)

	// (block height 32 + gap 60) / 100 canvas units
	assert.Equal(t, 0.92, e.Scale)
	assert.Equal(t, 60+100*0.92, g.Instances[1].Box.TopLeft.Y)
}

func TestAutoScaleKeepsDefaultWhenSpaced(t *testing.T) {
	e := NewEngine(0, nil, nil)
	g := &fbgraph.Graph{
		Instances: []*fbgraph.Instance{
			{Name: "A", TypeName: "X", X: 0, Y: 0},
			{Name: "B", TypeName: "X", X: 5000, Y: 0},
		},
	}
	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)

	assert.Equal(t, DEFAULT_SCALE, e.Scale)
}

func TestExplicitScaleDisablesAutoScale(t *testing.T) {
	e := NewEngine(DEFAULT_SCALE, nil, nil)
	g := &fbgraph.Graph{
		Instances: []*fbgraph.Instance{
			{Name: "A", TypeName: "X", X: 0, Y: 0},
			{Name: "B", TypeName: "X", X: 200, Y: 0},
		},
	}
	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)

	assert.Equal(t, DEFAULT_SCALE, e.Scale)
	assert.Equal(t, 60+200*DEFAULT_SCALE, g.Instances[1].Box.TopLeft.X)
}

func TestAnchorPorts(t *testing.T) {
	e := testEngine()
	inst := delayBlock()
	e.sizeInstance(inst)
	g := &fbgraph.Graph{Instances: []*fbgraph.Instance{inst}}
	e.positionInstances(g)
	e.anchorPorts(inst)

	left := inst.Box.TopLeft.X
	top := inst.Box.TopLeft.Y

	assert.Equal(t, left, inst.Anchors["INIT"].X)
	assert.Equal(t, top+8, inst.Anchors["INIT"].Y)
	assert.Equal(t, top+24, inst.Anchors["REQ"].Y)

	assert.Equal(t, inst.Box.Right(), inst.Anchors["CNF"].X)
	assert.Equal(t, top+8, inst.Anchors["CNF"].Y)

	// data rows start below the name strip
	assert.Equal(t, left, inst.Anchors["QI"].X)
	assert.Equal(t, top+48+8, inst.Anchors["QI"].Y)
}

func boundaryGraph() *fbgraph.Graph {
	return &fbgraph.Graph{
		Name: "NET",
		Instances: []*fbgraph.Instance{
			delayBlock(),
		},
		BoundaryPorts: []*fbgraph.BoundaryPort{
			{Name: "GI", Direction: fbgraph.DirectionInput, Category: fbgraph.CategoryEvent},
			{Name: "QI", Direction: fbgraph.DirectionInput, Category: fbgraph.CategoryData, Type: "BOOL"},
			{Name: "GO", Direction: fbgraph.DirectionOutput, Category: fbgraph.CategoryEvent},
		},
	}
}

func TestLayoutSidebars(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()
	g := boundaryGraph()

	e.Layout(ctx, g)

	if g.InputSidebar == nil || g.OutputSidebar == nil {
		t.Fatal("expected both sidebars")
	}

	inst := g.Instances[0]
	assert.Equal(t, inst.Box.TopLeft.X-SIDEBAR_CLEARANCE, g.InputSidebar.Right())

	// GI and QI share the input column, one row apart
	gi := g.BoundaryPorts[0].Anchor
	qi := g.BoundaryPorts[1].Anchor
	assert.Equal(t, g.InputSidebar.Right(), gi.X)
	assert.Equal(t, g.InputSidebar.Right(), qi.X)
	assert.Equal(t, SIDEBAR_ROW_HEIGHT, qi.Y-gi.Y)

	// output ports anchor at the output sidebar's inner edge
	gout := g.BoundaryPorts[2].Anchor
	assert.Equal(t, g.OutputSidebar.TopLeft.X, gout.X)
}

func TestOvershootCorrection(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()

	g := boundaryGraph()
	g.Connections = []*fbgraph.Connection{
		{
			Source:      fbgraph.ParseEndpoint("GI"),
			Destination: fbgraph.ParseEndpoint("FB1.INIT"),
			Category:    fbgraph.CategoryEvent,
			DX1:         go2.Pointer(1000.),
		},
	}

	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)
	for _, inst := range g.Instances {
		e.anchorPorts(inst)
	}
	e.layoutSidebars(ctx, g)

	// the hinted turn lands 160px right of the sidebar, far past the
	// block's left edge; the block must have moved out of the way
	inst := g.Instances[0]
	turnX := g.InputSidebar.Right() + 1000*e.Scale
	assert.GreaterOrEqual(t, inst.Box.TopLeft.X, turnX+OVERSHOOT_PADDING)
	// anchors and the origin mapping moved with the block
	assert.Equal(t, inst.Box.TopLeft.X, inst.Anchors["INIT"].X)
	assert.Equal(t, 60+(inst.Box.TopLeft.X-60), g.OriginX)
}

func TestSidebarWidthMonotonic(t *testing.T) {
	e := testEngine()
	port := func(name string) []*fbgraph.BoundaryPort {
		return []*fbgraph.BoundaryPort{
			{Name: name, Direction: fbgraph.DirectionInput, Category: fbgraph.CategoryEvent},
		}
	}

	prev := 0.
	for _, name := range []string{"A", "GO", "DONE", "FINISHED"} {
		w := e.sidebarWidth(port(name))
		assert.Greater(t, w, prev, name)
		prev = w
	}

	// adapter ports widen the symbol allowance
	adapter := []*fbgraph.BoundaryPort{
		{Name: "A", Direction: fbgraph.DirectionInput, Category: fbgraph.CategoryAdapter},
	}
	assert.Greater(t, e.sidebarWidth(adapter), e.sidebarWidth(port("A")))
}

func TestFrameMinimumAreaWithSidebars(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()
	// a lone minimum-width block leaves the inner area 4px too narrow
	g := &fbgraph.Graph{
		Name:      "NARROW",
		Instances: []*fbgraph.Instance{{Name: "N", TypeName: "X"}},
		BoundaryPorts: []*fbgraph.BoundaryPort{
			{Name: "GI", Direction: fbgraph.DirectionInput, Category: fbgraph.CategoryEvent},
			{Name: "GO", Direction: fbgraph.DirectionOutput, Category: fbgraph.CategoryEvent},
		},
	}

	e.Layout(ctx, g)

	// instances shift right by exactly half the shortfall
	assert.Equal(t, 62., g.Instances[0].Box.TopLeft.X)
	// the output sidebar re-anchors to the widened inner right edge
	assert.Equal(t, g.InputSidebar.Right()+MIN_NETWORK_WIDTH, g.OutputSidebar.TopLeft.X)
	assert.Equal(t, g.OutputSidebar.TopLeft.X, g.BoundaryPorts[1].Anchor.X)
}

func TestFrameMinimumArea(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()
	g := &fbgraph.Graph{
		Name:      "TINY",
		Instances: []*fbgraph.Instance{{Name: "N", TypeName: "X"}},
	}

	e.Layout(ctx, g)

	if g.Border == nil || g.Header == nil {
		t.Fatal("expected frame geometry")
	}
	assert.Equal(t, MIN_NETWORK_WIDTH, g.Border.Width)
	assert.Equal(t, HEADER_HEIGHT, g.Header.Height)
	assert.Equal(t, g.Header.TopLeft.Y, g.Border.TopLeft.Y)
	assert.Equal(t, g.Header.Width, g.Border.Width)
	// border bottom clears the minimum network height plus padding
	assert.GreaterOrEqual(t, g.Border.Height, HEADER_HEIGHT+MIN_NETWORK_HEIGHT)
}

func TestFrameSidebarSpan(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()
	g := boundaryGraph()

	e.Layout(ctx, g)

	headerBottom := g.Header.Bottom()
	assert.Equal(t, headerBottom, g.InputSidebar.TopLeft.Y)
	assert.Equal(t, g.Border.Bottom(), g.InputSidebar.Bottom())
	assert.Equal(t, headerBottom, g.OutputSidebar.TopLeft.Y)

	// boundary rows re-anchor below the header separator
	assert.Equal(t, headerBottom+SIDEBAR_TOP_PAD, g.BoundaryPorts[0].Anchor.Y)
	assert.Equal(t, headerBottom+SIDEBAR_TOP_PAD+SIDEBAR_ROW_HEIGHT, g.BoundaryPorts[1].Anchor.Y)
	assert.Equal(t, headerBottom+SIDEBAR_TOP_PAD, g.BoundaryPorts[2].Anchor.Y)
}

func TestBaselineFixture(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()
	g := &fbgraph.Graph{
		Name: "BASE",
		Instances: []*fbgraph.Instance{
			{
				Name:         "N",
				TypeName:     "X",
				EventInputs:  []fbgraph.Port{{Name: "EI", Type: "Event"}},
				EventOutputs: []fbgraph.Port{{Name: "EO", Type: "Event"}},
			},
		},
	}

	e.Layout(ctx, g)

	inst := g.Instances[0]
	assert.Equal(t, 80., inst.Box.Width)
	assert.Equal(t, 32., inst.Box.Height)
	assert.Equal(t, 60., inst.Box.TopLeft.Y)

	// frame offsets derive only from the margin and padding constants
	b := Bounds(g)
	assert.Equal(t, 60., b.TopLeft.X)
	assert.Equal(t, MARGIN-LABEL_STRIP_HEIGHT-BORDER_PAD_V-HEADER_HEIGHT, b.TopLeft.Y)
	assert.Equal(t, MIN_NETWORK_WIDTH, b.Width)
}

func TestBounds(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)
	e := testEngine()
	g := boundaryGraph()
	e.Layout(ctx, g)

	b := Bounds(g)
	assert.Equal(t, g.Border.TopLeft.X, b.TopLeft.X)
	assert.Equal(t, g.Border.Width, b.Width)

	// borderless graphs still report usable bounds
	empty := &fbgraph.Graph{}
	eb := Bounds(empty)
	assert.Equal(t, 100., eb.Width)
}
