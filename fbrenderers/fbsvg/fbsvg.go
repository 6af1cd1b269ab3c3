// fbsvg serializes a rendered diagram to SVG. The input is fbexporter's
// output.
package fbsvg

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"fbnet/fbtarget"
)

// Padding around the diagram bounds in the viewBox.
const DEFAULT_PADDING = 7.

const (
	fontFamily       = "'TGL 0-17', 'Times New Roman', Times, serif"
	fontFamilyItalic = "'TGL 0-16', 'Times New Roman', Times, serif"
)

// Render serializes the diagram's primitive list in order, so the
// exporter's back-to-front ordering becomes SVG paint order.
func Render(diagram *fbtarget.Diagram) []byte {
	buf := &bytes.Buffer{}

	vbX := diagram.Bounds.TopLeft.X - DEFAULT_PADDING
	vbY := diagram.Bounds.TopLeft.Y - DEFAULT_PADDING
	vbW := diagram.Bounds.Width + DEFAULT_PADDING*2
	vbH := diagram.Bounds.Height + DEFAULT_PADDING*2

	fmt.Fprintf(buf, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">
`, f(vbX), f(vbY), f(vbW), f(vbH), vbW, vbH)

	for _, prim := range diagram.Primitives {
		switch p := prim.(type) {
		case *fbtarget.Rect:
			renderRect(buf, p)
		case *fbtarget.Polygon:
			renderPolygon(buf, p)
		case *fbtarget.Path:
			renderPath(buf, p)
		case *fbtarget.Polyline:
			renderPolyline(buf, p)
		case *fbtarget.Text:
			renderText(buf, p)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRect(buf *bytes.Buffer, p *fbtarget.Rect) {
	fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
		f(p.Box.TopLeft.X), f(p.Box.TopLeft.Y), f(p.Box.Width), f(p.Box.Height),
		p.Fill, stroke(p.Stroke, p.StrokeWidth))
}

func renderPolygon(buf *bytes.Buffer, p *fbtarget.Polygon) {
	buf.WriteString(`<polygon points="`)
	for i, pt := range p.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%s,%s", f(pt.X), f(pt.Y))
	}
	fmt.Fprintf(buf, `" fill="%s"%s/>`+"\n", p.Fill, stroke(p.Stroke, p.StrokeWidth))
}

func renderPath(buf *bytes.Buffer, p *fbtarget.Path) {
	fmt.Fprintf(buf, `<path d="%s" fill="%s"%s stroke-linejoin="round"/>`+"\n",
		p.Data, p.Fill, stroke(p.Stroke, p.StrokeWidth))
}

func renderPolyline(buf *bytes.Buffer, p *fbtarget.Polyline) {
	buf.WriteString(`<polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%s,%s", f(pt.X), f(pt.Y))
	}
	fmt.Fprintf(buf, `" fill="none"%s stroke-linejoin="round"/>`+"\n",
		stroke(p.Stroke, p.StrokeWidth))
}

func renderText(buf *bytes.Buffer, p *fbtarget.Text) {
	family := fontFamily
	if p.Italic {
		family = fontFamilyItalic
	}
	weight := ""
	if p.Bold {
		weight = ` font-weight="bold"`
	}
	anchor := ""
	if p.Anchor != "" && p.Anchor != fbtarget.AnchorStart {
		anchor = fmt.Sprintf(` text-anchor="%s"`, p.Anchor)
	}
	fmt.Fprintf(buf, `<text x="%s" y="%s" font-family="%s" font-size="%s"%s%s fill="%s">%s</text>`+"\n",
		f(p.Pos.X), f(p.Pos.Y), family, f(p.Size), weight, anchor, p.Color,
		html.EscapeString(p.Content))
}

func stroke(color string, width float64) string {
	if color == "" {
		return ""
	}
	return fmt.Sprintf(` stroke="%s" stroke-width="%s"`, color, f(width))
}

// f formats a coordinate rounded to hundredths, without trailing zeros.
func f(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
