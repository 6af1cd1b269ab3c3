// Package fbtarget is the render-ready output of the pipeline: an ordered
// list of drawing primitives plus the overall diagram bounds, suitable
// for direct serialization by a vector-graphics emitter.
package fbtarget

import (
	"fbnet/lib/geo"
)

const FontSize = 12

type Diagram struct {
	Name       string
	Bounds     *geo.Box
	Primitives []Primitive
}

// Primitive is a closed set: Rect, Polygon, Path, Polyline, Text.
type Primitive interface {
	primitive()
}

type Rect struct {
	Box         *geo.Box
	Fill        string
	Stroke      string
	StrokeWidth float64
}

type Polygon struct {
	Points      geo.Points
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Path carries SVG-style move/line/arc commands.
type Path struct {
	Data        string
	Fill        string
	Stroke      string
	StrokeWidth float64
}

type Polyline struct {
	Points      geo.Route
	Stroke      string
	StrokeWidth float64
}

// TextAnchor matches the SVG text-anchor values.
type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

type Text struct {
	Pos     *geo.Point
	Content string
	Size    float64
	Italic  bool
	Bold    bool
	Anchor  TextAnchor
	Color   string
}

func (*Rect) primitive()     {}
func (*Polygon) primitive()  {}
func (*Path) primitive()     {}
func (*Polyline) primitive() {}
func (*Text) primitive()     {}
