package fblayout

import (
	"context"
	"strings"

	"cdr.dev/slog"

	"fbnet/fbgraph"
	"fbnet/lib/geo"
	"fbnet/lib/go2"
	"fbnet/lib/log"
)

// layoutSidebars places the input (left) and output (right) boundary-port
// panels, assigns provisional boundary anchors, and applies the overshoot
// correction that shifts the instance area clear of sidebar-origin turns.
func (e *Engine) layoutSidebars(ctx context.Context, g *fbgraph.Graph) {
	if len(g.Instances) == 0 && len(g.BoundaryPorts) == 0 {
		return
	}

	inputs := go2.Filter(g.BoundaryPorts, func(bp *fbgraph.BoundaryPort) bool {
		return bp.Direction == fbgraph.DirectionInput
	})
	outputs := go2.Filter(g.BoundaryPorts, func(bp *fbgraph.BoundaryPort) bool {
		return bp.Direction == fbgraph.DirectionOutput
	})

	inputWidth := e.sidebarWidth(inputs)
	outputWidth := e.sidebarWidth(outputs)

	instMinX, instMinY, instMaxX, instMaxY := instanceArea(g)

	inputNames := make(map[string]struct{}, len(inputs))
	for _, bp := range inputs {
		inputNames[bp.Name] = struct{}{}
	}
	outputNames := make(map[string]struct{}, len(outputs))
	for _, bp := range outputs {
		outputNames[bp.Name] = struct{}{}
	}
	instances := g.InstanceMap()

	// Left side: routed turns leave the sidebar dx1-scaled pixels in, so
	// the gap to the nearest instance must absorb the largest of them.
	// Hints whose turn would land past the halfway point to their
	// destination are ignored here; the overshoot pass below deals with
	// them by moving the instances instead.
	baseRight := instMinX - SIDEBAR_CLEARANCE
	maxTurn := 0.
	for _, conn := range g.Connections {
		if !conn.Source.IsBoundary() || conn.DX1 == nil || *conn.DX1 == 0 {
			continue
		}
		if _, ok := inputNames[conn.Source.Port]; !ok {
			continue
		}
		turn := *conn.DX1 * e.Scale
		if dest, ok := instances[conn.Destination.Instance]; ok && dest.Box.TopLeft != nil {
			if turn > (dest.Box.TopLeft.X-baseRight)/2 {
				continue
			}
		}
		maxTurn = go2.Max(maxTurn, turn)
	}

	inputRight := instMinX - (maxTurn + SIDEBAR_CLEARANCE)
	inputLeft := inputRight - inputWidth

	// Provisional vertical extent: from just above the topmost instance to
	// just below the bottommost, or taller if the port rows need it. The
	// frame phase reconciles this against the header and border.
	sidebarTop := instMinY - 38
	contentHeight := instMaxY + 10 - sidebarTop

	if len(inputs) > 0 {
		h := go2.Max(float64(len(inputs))*SIDEBAR_ROW_HEIGHT+SIDEBAR_TOP_PAD, contentHeight)
		g.InputSidebar = geo.NewBox(geo.NewPoint(inputLeft, sidebarTop), inputWidth, h)
		for i, bp := range inputs {
			bp.Anchor = geo.NewPoint(inputRight, sidebarTop+SIDEBAR_TOP_PAD+float64(i)*SIDEBAR_ROW_HEIGHT)
		}
	}

	// Overshoot correction: a sidebar-origin turn landing to the right of
	// its destination's left edge cannot be routed; shift the whole
	// instance area (and its anchors) right until the worst case fits.
	// Runs at most once and must run after anchors exist.
	maxOvershoot := 0.
	for _, conn := range g.Connections {
		if !conn.Source.IsBoundary() || conn.DX1 == nil {
			continue
		}
		if _, ok := inputNames[conn.Source.Port]; !ok {
			continue
		}
		dest, ok := instances[conn.Destination.Instance]
		if !ok || dest.Box.TopLeft == nil {
			continue
		}
		turnX := inputRight + *conn.DX1*e.Scale
		if turnX > dest.Box.TopLeft.X {
			maxOvershoot = go2.Max(maxOvershoot, turnX-dest.Box.TopLeft.X)
		}
	}
	if maxOvershoot > 0 {
		shift := maxOvershoot + OVERSHOOT_PADDING
		shiftInstances(g, shift)
		instMaxX += shift
		log.Debug(ctx, "overshoot correction applied", slog.F("shift", shift))
	}

	// Right side: symmetric, using the (possibly shifted) source anchors.
	// The sidebar must sit right of every turn column.
	maxRightTurn := instMaxX
	for _, conn := range g.Connections {
		if !conn.Destination.IsBoundary() || conn.DX1 == nil || *conn.DX1 == 0 {
			continue
		}
		if _, ok := outputNames[conn.Destination.Port]; !ok {
			continue
		}
		if conn.Source.IsBoundary() {
			continue
		}
		if src, ok := instances[conn.Source.Instance]; ok {
			if anchor, ok := src.Anchors[conn.Source.Port]; ok {
				maxRightTurn = go2.Max(maxRightTurn, anchor.X+*conn.DX1*e.Scale)
			}
		}
	}

	outputLeft := maxRightTurn + SIDEBAR_CLEARANCE
	if len(outputs) > 0 {
		h := go2.Max(float64(len(outputs))*SIDEBAR_ROW_HEIGHT+SIDEBAR_TOP_PAD, contentHeight)
		g.OutputSidebar = geo.NewBox(geo.NewPoint(outputLeft, sidebarTop), outputWidth, h)
		for i, bp := range outputs {
			bp.Anchor = geo.NewPoint(outputLeft, sidebarTop+SIDEBAR_TOP_PAD+float64(i)*SIDEBAR_ROW_HEIGHT)
		}
	}
}

// sidebarWidth is the panel width for one side's ports: outer margin,
// text-to-symbol gap, symbol allowance (wider when the side carries
// adapter ports) and the widest truncated label, clamped to the
// configured minimum bar size.
func (e *Engine) sidebarWidth(ports []*fbgraph.BoundaryPort) float64 {
	if len(ports) == 0 {
		return 0
	}

	glyph := TRIANGLE_WIDTH
	maxLabel := 0.
	for _, bp := range ports {
		if bp.Category == fbgraph.CategoryAdapter {
			glyph = TRIANGLE_WIDTH * 2
		}
		label := fbgraph.TruncateLabel(bp.Name, e.Settings.MaxInterfaceBarSize)
		maxLabel = go2.Max(maxLabel, e.Ruler.Measure(label, false))
	}

	if e.Settings.MinInterfaceBarSize > 0 {
		minLabel := e.Ruler.Measure(strings.Repeat("W", e.Settings.MinInterfaceBarSize), false)
		maxLabel = go2.Max(maxLabel, minLabel)
	}

	return SIDEBAR_OUTER_MARGIN + SIDEBAR_TEXT_GAP + glyph + maxLabel
}

func instanceArea(g *fbgraph.Graph) (minX, minY, maxX, maxY float64) {
	if len(g.Instances) == 0 {
		return MARGIN, MARGIN, MARGIN + 200, MARGIN + 200
	}
	first := true
	for _, inst := range g.Instances {
		tl := inst.Box.TopLeft
		if first {
			minX, minY = tl.X, tl.Y-LABEL_STRIP_HEIGHT
			maxX, maxY = inst.Box.Right(), inst.Box.Bottom()
			first = false
			continue
		}
		minX = go2.Min(minX, tl.X)
		minY = go2.Min(minY, tl.Y-LABEL_STRIP_HEIGHT)
		maxX = go2.Max(maxX, inst.Box.Right())
		maxY = go2.Max(maxY, inst.Box.Bottom())
	}
	return minX, minY, maxX, maxY
}

// shiftInstances moves every instance, its anchors and the logical origin
// mapping right by dx.
func shiftInstances(g *fbgraph.Graph, dx float64) {
	for _, inst := range g.Instances {
		inst.Box.TopLeft.X += dx
		for _, anchor := range inst.Anchors {
			anchor.X += dx
		}
	}
	g.OriginX += dx
}
