// Package fblayout computes pixel-space geometry for a function block
// network: block sizes from label metrics, instance and boundary port
// placement, sidebar panels and the header/border frame.
//
// Layout runs as a strict sequence of phases, each reading geometry the
// previous one finalized. The one corrective step is the overshoot shift
// inside the sidebar phase, which re-mutates anchors in place before any
// routing happens.
package fblayout

import (
	"context"

	"cdr.dev/slog"

	"fbnet/fbgraph"
	"fbnet/lib/geo"
	"fbnet/lib/log"
	"fbnet/lib/textmeasure"
)

// Engine lays out one network per call. It owns its ruler and settings so
// concurrent runs on separate engines stay isolated.
type Engine struct {
	Scale    float64
	Settings *fbgraph.Settings
	Ruler    *textmeasure.Ruler

	// recompute Scale per network from the block spacing
	autoScale bool
}

// NewEngine builds a layout engine. A scale of 0 (or less) selects
// automatic scaling: DEFAULT_SCALE, raised per network when adjacent
// blocks would overlap at it.
func NewEngine(scale float64, settings *fbgraph.Settings, ruler *textmeasure.Ruler) *Engine {
	auto := false
	if scale <= 0 {
		scale = DEFAULT_SCALE
		auto = true
	}
	if settings == nil {
		settings = fbgraph.DefaultSettings()
	}
	if ruler == nil {
		ruler = textmeasure.NewRuler()
	}
	return &Engine{
		Scale:     scale,
		Settings:  settings,
		Ruler:     ruler,
		autoScale: auto,
	}
}

// Layout populates every layout-derived field on g, in phase order.
func (e *Engine) Layout(ctx context.Context, g *fbgraph.Graph) {
	for _, inst := range g.Instances {
		e.sizeInstance(inst)
	}
	e.positionInstances(g)
	for _, inst := range g.Instances {
		e.anchorPorts(inst)
	}
	e.layoutSidebars(ctx, g)
	e.layoutFrame(g)

	log.Debug(ctx, "layout done",
		slog.F("instances", len(g.Instances)),
		slog.F("bounds", Bounds(g).ToString()))
}

// Bounds returns the overall diagram bounding rectangle. The outer border
// encloses everything once the frame phase has run; before that (or for a
// borderless graph) the union of instance and sidebar extents is used.
func Bounds(g *fbgraph.Graph) *geo.Box {
	if g.Border != nil {
		return g.Border.Copy()
	}

	left, top, right, bottom, ok := contentBounds(g)
	if !ok {
		return geo.NewBox(geo.NewPoint(0, 0), 100, 100)
	}
	return geo.NewBox(geo.NewPoint(left, top), right-left, bottom-top)
}

func contentBounds(g *fbgraph.Graph) (left, top, right, bottom float64, ok bool) {
	first := true
	add := func(x0, y0, x1, y1 float64) {
		if first {
			left, top, right, bottom = x0, y0, x1, y1
			first = false
			return
		}
		if x0 < left {
			left = x0
		}
		if y0 < top {
			top = y0
		}
		if x1 > right {
			right = x1
		}
		if y1 > bottom {
			bottom = y1
		}
	}

	for _, inst := range g.Instances {
		if inst.Box == nil || inst.Box.TopLeft == nil {
			continue
		}
		// the name label above the block can be wider than the block
		overhang := (inst.FigureWidth - inst.Box.Width) / 2
		add(inst.Box.TopLeft.X-overhang,
			inst.Box.TopLeft.Y-LABEL_STRIP_HEIGHT,
			inst.Box.Right()+overhang,
			inst.Box.Bottom())
	}
	for _, sb := range []*geo.Box{g.InputSidebar, g.OutputSidebar} {
		if sb != nil {
			add(sb.TopLeft.X, sb.TopLeft.Y, sb.Right(), sb.Bottom())
		}
	}
	return left, top, right, bottom, !first
}
