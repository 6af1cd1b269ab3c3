package geo

import (
	"fmt"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p1 *Point) Equals(p2 *Point) bool {
	if p1 == nil {
		return p2 == nil
	} else if p2 == nil {
		return false
	}
	return (p1.X == p2.X) && (p1.Y == p2.Y)
}

func (p *Point) Copy() *Point {
	return &Point{X: p.X, Y: p.Y}
}

func (p *Point) ToString() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

type Points []*Point

func (ps Points) Copy() Points {
	out := make(Points, len(ps))
	for i, p := range ps {
		out[i] = p.Copy()
	}
	return out
}

func (ps Points) ToString() string {
	strs := make([]string, 0, len(ps))
	for _, p := range ps {
		strs = append(strs, p.ToString())
	}
	return strings.Join(strs, ", ")
}
