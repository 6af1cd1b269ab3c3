package fbexporter

import (
	"fbnet/fbgraph"
	"fbnet/fbtarget"
	"fbnet/lib/color"
	"fbnet/lib/geo"
)

const (
	singleStrokeWidth = 1.5
	outerStrokeWidth  = 3.
	innerStrokeWidth  = 1.5
)

// strokes renders one routed connection. Adapter links, and data links
// carrying a structured type on either end, draw as a double stroke: the
// base color wide underneath, a lightened variant narrow on top.
func (ex *exporter) strokes(conn *fbgraph.Connection, route geo.Route) []fbtarget.Primitive {
	base := ex.connectionColor(conn)

	if !ex.isComposite(conn) {
		return []fbtarget.Primitive{&fbtarget.Polyline{
			Points:      route,
			Stroke:      base,
			StrokeWidth: singleStrokeWidth,
		}}
	}

	inner, err := color.Lighten(base)
	if err != nil {
		inner = base
	}
	return []fbtarget.Primitive{
		&fbtarget.Polyline{Points: route, Stroke: base, StrokeWidth: outerStrokeWidth},
		&fbtarget.Polyline{Points: route.Copy(), Stroke: inner, StrokeWidth: innerStrokeWidth},
	}
}

func (ex *exporter) isComposite(conn *fbgraph.Connection) bool {
	switch conn.Category {
	case fbgraph.CategoryAdapter:
		return true
	case fbgraph.CategoryData:
		srcType, _ := ex.endpointType(conn.Source)
		dstType, _ := ex.endpointType(conn.Destination)
		return color.IsStructType(srcType) || color.IsStructType(dstType)
	}
	return false
}

// connectionColor picks the stroke color: events and adapters have fixed
// colors; data links prefer the source pin's classification, fall back to
// the destination when the source is a generic "ANY" declaration, and
// finally to the default data color.
func (ex *exporter) connectionColor(conn *fbgraph.Connection) string {
	switch conn.Category {
	case fbgraph.CategoryEvent:
		return color.Event
	case fbgraph.CategoryAdapter:
		return color.Adapter
	}

	if srcType, ok := ex.endpointType(conn.Source); ok && !color.IsAnyType(srcType) {
		return color.ForDataType(srcType)
	}
	if dstType, ok := ex.endpointType(conn.Destination); ok && !color.IsAnyType(dstType) {
		return color.ForDataType(dstType)
	}
	return color.Data
}

func (ex *exporter) endpointType(e fbgraph.Endpoint) (string, bool) {
	if e.IsBoundary() {
		for _, bp := range ex.graph.BoundaryPorts {
			if bp.Name == e.Port {
				return bp.Type, true
			}
		}
		return "", false
	}
	inst, ok := ex.instances[e.Instance]
	if !ok {
		return "", false
	}
	p, ok := inst.DataPort(e.Port)
	if !ok {
		return "", false
	}
	return p.Type, true
}
