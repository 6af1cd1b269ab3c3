package fblayout

import (
	"fbnet/fbgraph"
	"fbnet/lib/geo"
)

// layoutFrame computes the header and outer border from the union of
// instance, label and sidebar extents, enforcing the minimum inner
// network area, then re-spans the sidebars between the header separator
// and the border bottom.
func (e *Engine) layoutFrame(g *fbgraph.Graph) {
	left, top, right, bottom, ok := contentBounds(g)
	if !ok {
		// empty model: a minimal valid canvas rather than an error
		left, top = MARGIN, MARGIN
		right = left + MIN_NETWORK_WIDTH
		bottom = top + MIN_NETWORK_HEIGHT
	}

	// Enforce the minimum width of the area between the sidebars. The
	// instances re-center in the widened area and the output sidebar
	// re-anchors to the new inner right edge.
	innerLeft := left
	if g.InputSidebar != nil {
		innerLeft = g.InputSidebar.Right()
	}
	innerRight := right
	if g.OutputSidebar != nil {
		innerRight = g.OutputSidebar.TopLeft.X
	}
	if innerRight-innerLeft < MIN_NETWORK_WIDTH {
		shortfall := MIN_NETWORK_WIDTH - (innerRight - innerLeft)
		shiftInstances(g, shortfall/2)
		if g.OutputSidebar != nil {
			dx := innerLeft + MIN_NETWORK_WIDTH - g.OutputSidebar.TopLeft.X
			g.OutputSidebar.TopLeft.X += dx
			for _, bp := range g.BoundaryPorts {
				if bp.Direction == fbgraph.DirectionOutput && bp.Anchor != nil {
					bp.Anchor.X += dx
				}
			}
			right = g.OutputSidebar.Right()
		} else {
			right = innerLeft + MIN_NETWORK_WIDTH
		}
	}

	if bottom-top < MIN_NETWORK_HEIGHT {
		bottom = top + MIN_NETWORK_HEIGHT
	}

	headerY := top - BORDER_PAD_V - HEADER_HEIGHT
	g.Header = geo.NewBox(geo.NewPoint(left, headerY), right-left, HEADER_HEIGHT)
	g.Border = geo.NewBox(geo.NewPoint(left, headerY), right-left, bottom+BORDER_PAD_V-headerY)

	// Sidebars run from just below the header separator to the border
	// bottom; boundary ports re-anchor relative to the separator,
	// overriding the provisional rows from the sidebar phase.
	headerBottom := g.Header.Bottom()
	borderBottom := g.Border.Bottom()
	for _, sb := range []*geo.Box{g.InputSidebar, g.OutputSidebar} {
		if sb != nil {
			sb.TopLeft.Y = headerBottom
			sb.Height = borderBottom - headerBottom
		}
	}

	inputRow, outputRow := 0, 0
	for _, bp := range g.BoundaryPorts {
		if bp.Anchor == nil {
			continue
		}
		var row int
		if bp.Direction == fbgraph.DirectionInput {
			row = inputRow
			inputRow++
		} else {
			row = outputRow
			outputRow++
		}
		bp.Anchor.Y = headerBottom + SIDEBAR_TOP_PAD + float64(row)*SIDEBAR_ROW_HEIGHT
	}
}
