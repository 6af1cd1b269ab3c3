package fbexporter

import (
	"math"

	"fbnet/lib/geo"
)

// BEVEL_RADIUS is the corner cut in pixels. It deliberately does not
// scale with the layout's scale factor: corner smoothing is a
// screen-space effect in the reference renderer.
const BEVEL_RADIUS = 5.

// Bevel replaces each direction change in a route with two points offset
// along the adjacent segments, cutting the corner. The radius shrinks to
// 40% of either adjacent segment when they are short; corners below the
// visibility threshold and collinear joints are left alone. The first and
// last points are never altered.
func Bevel(route geo.Route, radius float64) geo.Route {
	if len(route) <= 2 {
		return route.Copy()
	}

	result := geo.Route{route[0].Copy()}
	for i := 1; i < len(route)-1; i++ {
		prev, curr, next := route[i-1], route[i], route[i+1]

		inDX := curr.X - prev.X
		inDY := curr.Y - prev.Y
		inLen := math.Hypot(inDX, inDY)
		outDX := next.X - curr.X
		outDY := next.Y - curr.Y
		outLen := math.Hypot(outDX, outDY)

		r := 0.
		if inLen > 0 && outLen > 0 {
			r = math.Min(radius, math.Min(inLen*0.4, outLen*0.4))
		}
		cross := inDX*outDY - inDY*outDX
		if r > 0.5 && math.Abs(cross) > 0.01 {
			result = append(result,
				geo.NewPoint(curr.X-inDX/inLen*r, curr.Y-inDY/inLen*r),
				geo.NewPoint(curr.X+outDX/outLen*r, curr.Y+outDY/outLen*r),
			)
		} else {
			result = append(result, curr.Copy())
		}
	}
	return append(result, route[len(route)-1].Copy())
}
