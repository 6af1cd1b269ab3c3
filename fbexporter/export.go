// Package fbexporter converts a laid-out network into drawing primitives:
// the frame, sidebars, routed connections, boundary ports and instance
// blocks, in back-to-front order.
package fbexporter

import (
	"context"

	"cdr.dev/slog"

	"fbnet/fbgraph"
	"fbnet/fblayout"
	"fbnet/fbrouter"
	"fbnet/fbtarget"
	"fbnet/lib/color"
	"fbnet/lib/geo"
	"fbnet/lib/log"
)

const (
	sidebarFill = "#EEF5FF"
	headerText  = "#333333"
	labelText   = "#000000"

	borderStrokeWidth     = 2.
	separatorStrokeWidth  = 1.
	sidebarSeparatorWidth = 0.5
	blockStrokeWidth      = 1.5
)

// Export walks the laid-out graph into an ordered primitive list. The
// graph must not be mutated afterwards.
func Export(ctx context.Context, g *fbgraph.Graph, engine *fblayout.Engine) *fbtarget.Diagram {
	ex := &exporter{
		graph:     g,
		engine:    engine,
		router:    fbrouter.NewRouter(engine.Scale, g),
		instances: g.InstanceMap(),
	}

	diagram := &fbtarget.Diagram{
		Name:   g.Name,
		Bounds: fblayout.Bounds(g),
	}

	ex.frame(diagram)
	ex.sidebars(diagram)
	ex.connections(ctx, diagram)
	ex.boundaryPorts(diagram)
	for _, inst := range g.Instances {
		ex.instance(diagram, inst)
	}
	return diagram
}

type exporter struct {
	graph     *fbgraph.Graph
	engine    *fblayout.Engine
	router    *fbrouter.Router
	instances map[string]*fbgraph.Instance
}

func (ex *exporter) frame(d *fbtarget.Diagram) {
	if ex.graph.Border != nil {
		d.Primitives = append(d.Primitives, &fbtarget.Rect{
			Box:         ex.graph.Border.Copy(),
			Fill:        color.None,
			Stroke:      color.BlockStroke,
			StrokeWidth: borderStrokeWidth,
		})
	}
	h := ex.graph.Header
	if h == nil {
		return
	}
	d.Primitives = append(d.Primitives, &fbtarget.Rect{
		Box:  h.Copy(),
		Fill: "#FFFFFF",
	})
	// separator rule at the bottom of the header strip
	d.Primitives = append(d.Primitives, &fbtarget.Polyline{
		Points:      geo.Route{geo.NewPoint(h.TopLeft.X, h.Bottom()), geo.NewPoint(h.Right(), h.Bottom())},
		Stroke:      color.BlockStroke,
		StrokeWidth: separatorStrokeWidth,
	})
	if ex.graph.Comment != "" {
		d.Primitives = append(d.Primitives, &fbtarget.Text{
			Pos:     geo.NewPoint(h.TopLeft.X+5, h.Center().Y+fbtarget.FontSize*0.35),
			Content: ex.graph.Comment,
			Size:    fbtarget.FontSize,
			Anchor:  fbtarget.AnchorStart,
			Color:   headerText,
		})
	}
}

func (ex *exporter) sidebars(d *fbtarget.Diagram) {
	if sb := ex.graph.InputSidebar; sb != nil {
		d.Primitives = append(d.Primitives, &fbtarget.Rect{Box: sb.Copy(), Fill: sidebarFill})
		d.Primitives = append(d.Primitives, &fbtarget.Polyline{
			Points:      geo.Route{geo.NewPoint(sb.Right(), sb.TopLeft.Y), geo.NewPoint(sb.Right(), sb.Bottom())},
			Stroke:      color.BlockStroke,
			StrokeWidth: sidebarSeparatorWidth,
		})
	}
	if sb := ex.graph.OutputSidebar; sb != nil {
		d.Primitives = append(d.Primitives, &fbtarget.Rect{Box: sb.Copy(), Fill: sidebarFill})
		d.Primitives = append(d.Primitives, &fbtarget.Polyline{
			Points:      geo.Route{geo.NewPoint(sb.TopLeft.X, sb.TopLeft.Y), geo.NewPoint(sb.TopLeft.X, sb.Bottom())},
			Stroke:      color.BlockStroke,
			StrokeWidth: sidebarSeparatorWidth,
		})
	}
}

func (ex *exporter) connections(ctx context.Context, d *fbtarget.Diagram) {
	for _, conn := range ex.graph.Connections {
		route := ex.router.Route(conn)
		if route == nil {
			log.Debug(ctx, "dropping unroutable connection",
				slog.F("source", conn.Source.String()),
				slog.F("destination", conn.Destination.String()))
			continue
		}
		beveled := Bevel(route, BEVEL_RADIUS)
		d.Primitives = append(d.Primitives, ex.strokes(conn, beveled)...)
	}
}
