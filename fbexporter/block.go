package fbexporter

import (
	"fbnet/fbgraph"
	"fbnet/fblayout"
	"fbnet/fbtarget"
	"fbnet/lib/color"
	"fbnet/lib/geo"
	"fbnet/lib/svg"
)

const (
	outlineRadius = 3.
	blockFill     = "#FFFFFF"

	iconFill       = "#87CEEB"
	iconStroke     = "#1565C0"
	iconNotchDepth = 1.5
	iconRadius     = 1.
	iconFontSize   = 10.

	pinTextGap = 3.
)

// instance draws one block: the notched outline, the name strip with its
// kind icon and type label, the instance name above the block and the
// port glyphs along both edges. Port glyphs sit at the anchor points the
// layout computed, so connections meet them exactly.
func (ex *exporter) instance(d *fbtarget.Diagram, inst *fbgraph.Instance) {
	if inst.Box == nil {
		return
	}

	d.Primitives = append(d.Primitives, &fbtarget.Path{
		Data:        blockOutline(inst),
		Fill:        blockFill,
		Stroke:      color.BlockStroke,
		StrokeWidth: blockStrokeWidth,
	})

	ex.nameSection(d, inst)

	d.Primitives = append(d.Primitives, &fbtarget.Text{
		Pos:     geo.NewPoint(inst.Box.TopLeft.X+inst.Box.Width/2, inst.Box.TopLeft.Y-5),
		Content: inst.Name,
		Size:    fbtarget.FontSize,
		Anchor:  fbtarget.AnchorMiddle,
		Color:   labelText,
	})

	for _, p := range inst.EventInputs {
		ex.leftPin(d, inst, p, color.Event)
	}
	for _, p := range inst.EventOutputs {
		ex.rightPin(d, inst, p, color.Event)
	}
	for _, p := range inst.DataInputs {
		ex.leftPin(d, inst, p, color.ForDataType(p.Type))
	}
	for _, p := range inst.DataOutputs {
		ex.rightPin(d, inst, p, color.ForDataType(p.Type))
	}
	for _, p := range inst.Sockets {
		ex.socketPin(d, inst, p)
	}
	for _, p := range inst.Plugs {
		ex.plugPin(d, inst, p)
	}
}

// blockOutline traces the body clockwise from the top-left corner:
// rounded corners, with rectangular notches cut into both edges of the
// name strip.
func blockOutline(inst *fbgraph.Instance) string {
	x := inst.Box.TopLeft.X
	y := inst.Box.TopLeft.Y
	w := inst.Box.Width
	h := inst.Box.Height
	et := y + inst.NameSectionTop
	nb := y + inst.NameSectionBottom
	r := outlineRadius
	notch := fblayout.NOTCH_WIDTH

	p := svg.NewPathContext()
	p.StartAt(geo.NewPoint(x+r, y))
	p.L(x+w-r, y)
	p.A(r, x+w, y+r)
	p.L(x+w, et-r)
	p.A(r, x+w-r, et)
	p.L(x+w-notch, et)
	p.L(x+w-notch, nb)
	p.L(x+w-r, nb)
	p.A(r, x+w, nb+r)
	p.L(x+w, y+h-r)
	p.A(r, x+w-r, y+h)
	p.L(x+r, y+h)
	p.A(r, x, y+h-r)
	p.L(x, nb+r)
	p.A(r, x+r, nb)
	p.L(x+notch, nb)
	p.L(x+notch, et)
	p.L(x+r, et)
	p.A(r, x, et-r)
	p.L(x, y+r)
	p.A(r, x+r, y)
	p.Z()
	return p.PathData()
}

// nameSection draws the kind icon and the italic type label, centered
// together in the name strip.
func (ex *exporter) nameSection(d *fbtarget.Diagram, inst *fbgraph.Instance) {
	centerY := inst.Box.TopLeft.Y + inst.NameSectionTop + fblayout.NAME_SECTION_HEIGHT/2

	label := fbgraph.TruncateLabel(inst.ShortTypeName(), ex.engine.Settings.MaxTypeLabelSize)
	typeWidth := ex.engine.Ruler.Measure(label, true)

	contentWidth := fblayout.NAME_ICON_WIDTH + fblayout.NAME_ICON_TEXT_GAP + typeWidth
	iconX := inst.Box.TopLeft.X + (inst.Box.Width-contentWidth)/2
	iconY := centerY - fblayout.NAME_ICON_WIDTH/2

	d.Primitives = append(d.Primitives, &fbtarget.Path{
		Data:        notchedRect(iconX, iconY, fblayout.NAME_ICON_WIDTH, fblayout.NAME_ICON_WIDTH, iconNotchDepth, iconRadius),
		Fill:        iconFill,
		Stroke:      iconStroke,
		StrokeWidth: 1,
	})

	if inst.Kind == fbgraph.KindSubApp {
		ex.subAppIcon(d, iconX, iconY)
	} else {
		d.Primitives = append(d.Primitives, &fbtarget.Text{
			Pos:     geo.NewPoint(iconX+fblayout.NAME_ICON_WIDTH/2, centerY+4),
			Content: kindLetter(inst.Kind),
			Size:    iconFontSize,
			Bold:    true,
			Anchor:  fbtarget.AnchorMiddle,
			Color:   labelText,
		})
	}

	d.Primitives = append(d.Primitives, &fbtarget.Text{
		Pos:     geo.NewPoint(iconX+fblayout.NAME_ICON_WIDTH+fblayout.NAME_ICON_TEXT_GAP, centerY+4),
		Content: label,
		Size:    fbtarget.FontSize,
		Italic:  true,
		Anchor:  fbtarget.AnchorStart,
		Color:   labelText,
	})
}

func kindLetter(kind fbgraph.BlockKind) string {
	switch kind {
	case fbgraph.KindComposite:
		return "C"
	case fbgraph.KindService:
		return "Si"
	case fbgraph.KindAdapter:
		return "A"
	}
	return "B"
}

// subAppIcon draws two miniature blocks joined by an event and a data
// wire inside the icon frame.
func (ex *exporter) subAppIcon(d *fbtarget.Diagram, iconX, iconY float64) {
	const (
		miniW = 5.5
		miniH = 7.
		gap   = 3.
	)
	pairX := iconX + (fblayout.NAME_ICON_WIDTH-(miniW*2+gap))/2
	pairY := iconY + fblayout.NAME_ICON_WIDTH - miniH - 1.5

	for _, mx := range []float64{pairX, pairX + miniW + gap} {
		d.Primitives = append(d.Primitives, &fbtarget.Path{
			Data: notchedRect(mx, pairY, miniW, miniH, miniW*0.15, 0.5),
			Fill: iconStroke,
		})
	}

	x1 := pairX + miniW
	x2 := x1 + gap
	for _, wire := range []struct {
		y      float64
		stroke string
	}{
		{pairY + miniH*0.12, "#3DA015"},
		{pairY + miniH*0.7, "#FF0000"},
	} {
		d.Primitives = append(d.Primitives, &fbtarget.Polyline{
			Points:      geo.Route{geo.NewPoint(x1, wire.y), geo.NewPoint(x2, wire.y)},
			Stroke:      wire.stroke,
			StrokeWidth: 1.2,
		})
	}
}

// notchedRect traces a rounded rectangle with a rectangular notch cut
// into both vertical edges a quarter of the way down, the block outline
// in miniature.
func notchedRect(x, y, w, h, notchDepth, r float64) string {
	notchTop := y + h/4
	notchBottom := notchTop + h/6

	p := svg.NewPathContext()
	p.StartAt(geo.NewPoint(x+r, y))
	p.L(x+w-r, y)
	p.A(r, x+w, y+r)
	p.L(x+w, notchTop)
	p.L(x+w-notchDepth, notchTop)
	p.L(x+w-notchDepth, notchBottom)
	p.L(x+w, notchBottom)
	p.L(x+w, y+h-r)
	p.A(r, x+w-r, y+h)
	p.L(x+r, y+h)
	p.A(r, x, y+h-r)
	p.L(x, notchBottom)
	p.L(x+notchDepth, notchBottom)
	p.L(x+notchDepth, notchTop)
	p.L(x, notchTop)
	p.L(x, y+r)
	p.A(r, x+r, y)
	p.Z()
	return p.PathData()
}

func (ex *exporter) leftPin(d *fbtarget.Diagram, inst *fbgraph.Instance, p fbgraph.Port, clr string) {
	a, ok := inst.Anchors[p.Name]
	if !ok {
		return
	}
	tw := fblayout.TRIANGLE_WIDTH
	th := fblayout.TRIANGLE_HEIGHT
	d.Primitives = append(d.Primitives, &fbtarget.Polygon{
		Points: geo.Points{
			geo.NewPoint(a.X, a.Y-th/2),
			geo.NewPoint(a.X+tw, a.Y),
			geo.NewPoint(a.X, a.Y+th/2),
		},
		Fill: clr,
	})
	ex.pinLabel(d, p, geo.NewPoint(a.X+tw+pinTextGap, a.Y), fbtarget.AnchorStart)
}

func (ex *exporter) rightPin(d *fbtarget.Diagram, inst *fbgraph.Instance, p fbgraph.Port, clr string) {
	a, ok := inst.Anchors[p.Name]
	if !ok {
		return
	}
	tw := fblayout.TRIANGLE_WIDTH
	th := fblayout.TRIANGLE_HEIGHT
	d.Primitives = append(d.Primitives, &fbtarget.Polygon{
		Points: geo.Points{
			geo.NewPoint(a.X-tw, a.Y-th/2),
			geo.NewPoint(a.X, a.Y),
			geo.NewPoint(a.X-tw, a.Y+th/2),
		},
		Fill: clr,
	})
	ex.pinLabel(d, p, geo.NewPoint(a.X-tw-pinTextGap, a.Y), fbtarget.AnchorEnd)
}

// socketPin draws the hollow adapter symbol at the block's left edge.
func (ex *exporter) socketPin(d *fbtarget.Diagram, inst *fbgraph.Instance, p fbgraph.Port) {
	a, ok := inst.Anchors[p.Name]
	if !ok {
		return
	}
	w := fblayout.TRIANGLE_WIDTH * 2
	d.Primitives = append(d.Primitives, &fbtarget.Path{
		Data:        adapterSymbol(a.X, a.Y, w/2),
		Fill:        color.None,
		Stroke:      color.Adapter,
		StrokeWidth: 1,
	})
	ex.pinLabel(d, p, geo.NewPoint(a.X+w+pinTextGap, a.Y), fbtarget.AnchorStart)
}

// plugPin draws the filled adapter symbol at the block's right edge.
func (ex *exporter) plugPin(d *fbtarget.Diagram, inst *fbgraph.Instance, p fbgraph.Port) {
	a, ok := inst.Anchors[p.Name]
	if !ok {
		return
	}
	w := fblayout.TRIANGLE_WIDTH * 2
	d.Primitives = append(d.Primitives, &fbtarget.Path{
		Data: adapterSymbol(a.X-w, a.Y, w/4),
		Fill: color.Adapter,
	})
	ex.pinLabel(d, p, geo.NewPoint(a.X-w-pinTextGap, a.Y), fbtarget.AnchorEnd)
}

// adapterSymbol traces a square with a notch cut into the top and bottom
// edges. x is the left edge, y the vertical center; notchStart is the
// notch offset from the left edge.
func adapterSymbol(x, y, notchStart float64) string {
	w := fblayout.TRIANGLE_WIDTH * 2
	h := fblayout.TRIANGLE_HEIGHT
	top := y - h/2
	bottom := y + h/2
	ns := x + notchStart
	nw := w / 4
	nd := h / 6

	p := svg.NewPathContext()
	p.StartAt(geo.NewPoint(x, top))
	p.L(ns, top)
	p.L(ns, top+nd)
	p.L(ns+nw, top+nd)
	p.L(ns+nw, top)
	p.L(x+w, top)
	p.L(x+w, bottom)
	p.L(ns+nw, bottom)
	p.L(ns+nw, bottom-nd)
	p.L(ns, bottom-nd)
	p.L(ns, bottom)
	p.L(x, bottom)
	p.Z()
	return p.PathData()
}

func (ex *exporter) pinLabel(d *fbtarget.Diagram, p fbgraph.Port, pos *geo.Point, anchor fbtarget.TextAnchor) {
	d.Primitives = append(d.Primitives, &fbtarget.Text{
		Pos:     geo.NewPoint(pos.X, pos.Y+fbtarget.FontSize*0.35),
		Content: fbgraph.TruncateLabel(p.Name, ex.engine.Settings.MaxPinLabelSize),
		Size:    fbtarget.FontSize,
		Anchor:  anchor,
		Color:   labelText,
	})
}

// boundaryPorts draws the interface-level port glyphs inside the
// sidebars: input triangles point right with their base inside the input
// sidebar, output triangles point left with their base inside the output
// sidebar, labels tucked further in.
func (ex *exporter) boundaryPorts(d *fbtarget.Diagram) {
	tw := fblayout.TRIANGLE_WIDTH
	th := fblayout.TRIANGLE_HEIGHT

	for _, bp := range ex.graph.BoundaryPorts {
		a := bp.Anchor
		if a == nil {
			continue
		}

		var pts geo.Points
		var textX float64
		var anchor fbtarget.TextAnchor
		if bp.Direction == fbgraph.DirectionInput {
			pts = geo.Points{
				geo.NewPoint(a.X-tw, a.Y-th/2),
				geo.NewPoint(a.X, a.Y),
				geo.NewPoint(a.X-tw, a.Y+th/2),
			}
			textX = a.X - tw - pinTextGap
			anchor = fbtarget.AnchorEnd
		} else {
			pts = geo.Points{
				geo.NewPoint(a.X+tw, a.Y-th/2),
				geo.NewPoint(a.X, a.Y),
				geo.NewPoint(a.X+tw, a.Y+th/2),
			}
			textX = a.X + tw + pinTextGap
			anchor = fbtarget.AnchorStart
		}

		d.Primitives = append(d.Primitives, &fbtarget.Polygon{
			Points: pts,
			Fill:   ex.boundaryColor(bp),
		})
		d.Primitives = append(d.Primitives, &fbtarget.Text{
			Pos:     geo.NewPoint(textX, a.Y+fbtarget.FontSize*0.35),
			Content: fbgraph.TruncateLabel(bp.Name, ex.engine.Settings.MaxInterfaceBarSize),
			Size:    fbtarget.FontSize,
			Anchor:  anchor,
			Color:   labelText,
		})
	}
}

func (ex *exporter) boundaryColor(bp *fbgraph.BoundaryPort) string {
	switch bp.Category {
	case fbgraph.CategoryEvent:
		return color.Event
	case fbgraph.CategoryAdapter:
		return color.Adapter
	}
	return color.ForDataType(bp.Type)
}
