// Package svg builds SVG path data strings.
package svg

import (
	"fmt"
	"math"
	"strings"

	"fbnet/lib/geo"
)

type PathContext struct {
	Commands []string
	Start    *geo.Point
	Current  *geo.Point
}

func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func NewPathContext() *PathContext {
	return &PathContext{}
}

func (c *PathContext) StartAt(p *geo.Point) {
	c.Start = p.Copy()
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", chopPrecision(p.X), chopPrecision(p.Y)))
	c.Current = p.Copy()
}

func (c *PathContext) L(x, y float64) {
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", chopPrecision(x), chopPrecision(y)))
	c.Current = geo.NewPoint(x, y)
}

// A appends a circular arc of radius r to (x, y), sweeping clockwise.
func (c *PathContext) A(r, x, y float64) {
	c.Commands = append(c.Commands, fmt.Sprintf("A %v %v 0 0 1 %v %v",
		chopPrecision(r), chopPrecision(r), chopPrecision(x), chopPrecision(y)))
	c.Current = geo.NewPoint(x, y)
}

func (c *PathContext) Z() {
	c.Commands = append(c.Commands, "Z")
	c.Current = c.Start.Copy()
}

func (c *PathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}
