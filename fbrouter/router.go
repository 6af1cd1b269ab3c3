// Package fbrouter turns connections into orthogonal polylines. Routing
// honors the designer's bend hints (dx1/dx2/dy offsets in source-document
// units) and falls back to midpoint turns when no hint was authored.
package fbrouter

import (
	"fbnet/fbgraph"
	"fbnet/lib/geo"
)

// minimum horizontal detour so degenerate near-zero hints still produce a
// visible turn offset
const MIN_TURN_DISTANCE = 30.

// hint-less connections sharing a boundary port stagger their fallback
// turn columns by this much, in connection-list order
const STAGGER_OFFSET = 8.

// two coordinates closer than this are the same coordinate
const POINT_TOLERANCE = 0.1

// Router routes the connections of one laid-out graph. Route must be
// called in connection-list order: the stagger indices for duplicate
// boundary ports are assigned in call order to keep output deterministic.
type Router struct {
	Scale float64

	instances map[string]*fbgraph.Instance
	boundary  map[string]*fbgraph.BoundaryPort
	stagger   map[string]int
}

func NewRouter(scale float64, g *fbgraph.Graph) *Router {
	return &Router{
		Scale:     scale,
		instances: g.InstanceMap(),
		boundary:  g.BoundaryMap(),
		stagger:   make(map[string]int),
	}
}

// Route computes the waypoints of one connection. An unresolved endpoint
// is an expected upstream inference gap, not an error: the connection
// simply produces no geometry.
func (r *Router) Route(conn *fbgraph.Connection) geo.Route {
	src := r.resolve(conn.Source)
	dst := r.resolve(conn.Destination)
	if src == nil || dst == nil {
		return nil
	}

	srcBoundary := conn.Source.IsBoundary()
	dstBoundary := conn.Destination.IsBoundary()

	if srcBoundary != dstBoundary {
		return Simplify(r.boundaryRoute(conn, src, dst))
	}
	return Simplify(r.instanceRoute(conn, src, dst))
}

func (r *Router) resolve(e fbgraph.Endpoint) *geo.Point {
	if e.IsBoundary() {
		if bp, ok := r.boundary[e.Port]; ok {
			return bp.Anchor
		}
		return nil
	}
	inst, ok := r.instances[e.Instance]
	if !ok {
		return nil
	}
	return inst.Anchors[e.Port]
}

// boundaryRoute connects a sidebar port with an instance port (either
// direction): straight across when aligned, otherwise one turn column.
func (r *Router) boundaryRoute(conn *fbgraph.Connection, src, dst *geo.Point) geo.Route {
	x1, y1 := src.X, src.Y
	x2, y2 := dst.X, dst.Y

	// an authored zero hint means the same as no hint here: the turn
	// falls back to the midpoint, as in the sidebar gap computation
	if conn.DX1 == nil || *conn.DX1 == 0 {
		if geo.PrecisionCompare(y1, y2, 1) == 0 {
			return geo.Route{src.Copy(), dst.Copy()}
		}
		turnX := (x1+x2)/2 + r.nextStagger(conn)
		return hvh(src, dst, turnX)
	}
	return hvh(src, dst, x1+*conn.DX1*r.Scale)
}

// instanceRoute connects two instance ports. Without a vertical hint the
// path makes at most one turn column; with one it detours in a U through
// the crossover height.
func (r *Router) instanceRoute(conn *fbgraph.Connection, src, dst *geo.Point) geo.Route {
	x1, y1 := src.X, src.Y
	x2, y2 := dst.X, dst.Y

	if conn.DY == nil || *conn.DY == 0 {
		if conn.DX1 != nil && *conn.DX1 != 0 {
			dx := *conn.DX1 * r.Scale
			// keep degenerate hints visible
			if dx < MIN_TURN_DISTANCE && dx > -MIN_TURN_DISTANCE {
				if dx < 0 {
					dx = -MIN_TURN_DISTANCE
				} else {
					dx = MIN_TURN_DISTANCE
				}
			}
			return hvh(src, dst, x1+dx)
		}
		if geo.PrecisionCompare(y1, y2, 1) == 0 {
			return geo.Route{src.Copy(), dst.Copy()}
		}
		return hvh(src, dst, (x1+x2)/2)
	}

	// U-shaped: out by dx1, across at the crossover height, and back in
	// by dx2 when given
	seg1X := x1
	if conn.DX1 != nil {
		seg1X = x1 + *conn.DX1*r.Scale
	}
	crossY := y1 + *conn.DY*r.Scale

	if conn.DX2 != nil && *conn.DX2 != 0 {
		seg2X := x2 - *conn.DX2*r.Scale
		return geo.Route{
			src.Copy(),
			geo.NewPoint(seg1X, y1),
			geo.NewPoint(seg1X, crossY),
			geo.NewPoint(seg2X, crossY),
			geo.NewPoint(seg2X, y2),
			dst.Copy(),
		}
	}
	return geo.Route{
		src.Copy(),
		geo.NewPoint(seg1X, y1),
		geo.NewPoint(seg1X, crossY),
		geo.NewPoint(x2, crossY),
		dst.Copy(),
	}
}

// nextStagger offsets fallback turn columns for connections sharing a
// boundary port so they don't overlap.
func (r *Router) nextStagger(conn *fbgraph.Connection) float64 {
	name := conn.Source.Port
	if !conn.Source.IsBoundary() {
		name = conn.Destination.Port
	}
	i := r.stagger[name]
	r.stagger[name] = i + 1
	return float64(i) * STAGGER_OFFSET
}

// horizontal - vertical - horizontal through one turn column
func hvh(src, dst *geo.Point, turnX float64) geo.Route {
	return geo.Route{
		src.Copy(),
		geo.NewPoint(turnX, src.Y),
		geo.NewPoint(turnX, dst.Y),
		dst.Copy(),
	}
}

// Simplify collapses consecutive duplicate points, then interior points
// sitting on a straight run, preserving only the path's true corners.
// Simplifying an already-simplified route yields the same route.
func Simplify(route geo.Route) geo.Route {
	if len(route) < 2 {
		return route
	}

	deduped := geo.Route{route[0]}
	for _, p := range route[1:] {
		last := deduped[len(deduped)-1]
		if geo.PrecisionCompare(p.X, last.X, POINT_TOLERANCE) != 0 ||
			geo.PrecisionCompare(p.Y, last.Y, POINT_TOLERANCE) != 0 {
			deduped = append(deduped, p)
		}
	}
	if len(deduped) < 3 {
		return deduped
	}

	simplified := geo.Route{deduped[0]}
	for i := 1; i < len(deduped)-1; i++ {
		prev := simplified[len(simplified)-1]
		curr, next := deduped[i], deduped[i+1]
		collinearX := geo.PrecisionCompare(prev.X, curr.X, POINT_TOLERANCE) == 0 &&
			geo.PrecisionCompare(curr.X, next.X, POINT_TOLERANCE) == 0
		collinearY := geo.PrecisionCompare(prev.Y, curr.Y, POINT_TOLERANCE) == 0 &&
			geo.PrecisionCompare(curr.Y, next.Y, POINT_TOLERANCE) == 0
		if !collinearX && !collinearY {
			simplified = append(simplified, curr)
		}
	}
	return append(simplified, deduped[len(deduped)-1])
}
