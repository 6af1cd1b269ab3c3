// Package textmeasure provides the text metrics the layout engine sizes
// blocks with. A Ruler measures with real truetype faces when font data is
// supplied and falls back to a deterministic per-glyph estimate otherwise.
package textmeasure

import (
	"fmt"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// FontSize is the point size every label in the diagram is set at.
const FontSize = 12

// EstimatedGlyphWidth is the per-rune width used when no font face is
// available. Calibrated against the reference IDE's serif face at size 12.
const EstimatedGlyphWidth = 8.5

// Ruler measures rendered label widths. The zero value estimates;
// NewRulerFromFonts returns one backed by real faces. A Ruler is owned by
// whichever engine uses it so concurrent layout runs stay isolated.
type Ruler struct {
	regular font.Face
	italic  font.Face
}

// NewRuler returns a Ruler that uses the per-glyph estimate for all text.
func NewRuler() *Ruler {
	return &Ruler{}
}

// NewRulerFromFonts parses truetype font data for the regular and italic
// faces. italicTTF may be nil, in which case the regular face measures
// italic text too.
func NewRulerFromFonts(regularTTF, italicTTF []byte) (*Ruler, error) {
	f, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	r := &Ruler{
		regular: truetype.NewFace(f, &truetype.Options{Size: FontSize}),
	}
	if italicTTF != nil {
		fi, err := truetype.Parse(italicTTF)
		if err != nil {
			return nil, fmt.Errorf("parsing italic font: %w", err)
		}
		r.italic = truetype.NewFace(fi, &truetype.Options{Size: FontSize})
	}
	return r, nil
}

// Measure returns the rendered width of text in pixels.
func (r *Ruler) Measure(text string, italic bool) float64 {
	face := r.regular
	if italic && r.italic != nil {
		face = r.italic
	}
	if face == nil {
		return float64(utf8.RuneCountInString(text)) * EstimatedGlyphWidth
	}
	return float64(font.MeasureString(face, text)) / 64
}
