// Package color carries the pin/connection palette of the reference IDE
// and the color transforms applied to composite links.
package color

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const (
	BlockStroke = "#A0A0A0"

	Event   = "#63B31F"
	Bool    = "#9FA48A"
	AnyBit  = "#82A3A9"
	AnyInt  = "#18519E"
	AnyReal = "#DBB418"
	String  = "#BD8663"
	Data    = "#0000FF"
	Adapter = "#845DAF"

	None = "none"
)

// Lightness scaling applied to the inner stroke of double-drawn links.
// The cap keeps the inner stroke visible on white backgrounds.
const (
	lightenFactor = 1.75
	lightenCap    = 0.92
)

var stringTypes = map[string]struct{}{
	"STRING": {}, "WSTRING": {}, "ANY_STRING": {}, "ANY_CHARS": {}, "CHAR": {}, "WCHAR": {},
}

var intTypes = map[string]struct{}{
	"INT": {}, "UINT": {}, "SINT": {}, "USINT": {}, "DINT": {}, "UDINT": {},
	"LINT": {}, "ULINT": {}, "ANY_INT": {}, "ANY_NUM": {},
}

var realTypes = map[string]struct{}{
	"REAL": {}, "LREAL": {}, "ANY_REAL": {},
}

var bitTypes = map[string]struct{}{
	"BYTE": {}, "WORD": {}, "DWORD": {}, "LWORD": {}, "ANY_BIT": {},
}

var timeTypes = map[string]struct{}{
	"TIME": {}, "LTIME": {}, "DATE": {}, "LDATE": {}, "TIME_OF_DAY": {}, "TOD": {},
	"LTOD": {}, "DATE_AND_TIME": {}, "DT": {}, "LDT": {},
}

// anyTypes are the fully generic declarations that carry no color of their
// own; a link sourced from one of these takes its color from the other end.
var anyTypes = map[string]struct{}{
	"": {}, "ANY": {}, "ANY_ELEMENTARY": {}, "ANY_MAGNITUDE": {}, "ANY_DATA": {},
}

// BaseType unwraps "ARRAY [..] OF T" declarations to T.
func BaseType(typeName string) string {
	if strings.HasPrefix(typeName, "ARRAY ") {
		if i := strings.LastIndex(typeName, " OF "); i >= 0 {
			return typeName[i+4:]
		}
	}
	return typeName
}

// ForDataType returns the pin color for a data declaration.
func ForDataType(typeName string) string {
	t := BaseType(typeName)
	switch {
	case t == "BOOL":
		return Bool
	case has(stringTypes, t):
		return String
	case has(intTypes, t):
		return AnyInt
	case has(realTypes, t):
		return AnyReal
	case has(bitTypes, t):
		return AnyBit
	default:
		return Data
	}
}

// IsAnyType reports whether typeName is one of the generic declarations
// that defer coloring to the opposite endpoint.
func IsAnyType(typeName string) bool {
	return has(anyTypes, BaseType(typeName))
}

// IsStructType reports whether typeName is a user-defined structured type,
// i.e. not one of the elementary types of the standard.
func IsStructType(typeName string) bool {
	t := BaseType(typeName)
	if t == "BOOL" || t == "EVENT" || t == "Event" {
		return false
	}
	if has(stringTypes, t) || has(intTypes, t) || has(realTypes, t) ||
		has(bitTypes, t) || has(timeTypes, t) || has(anyTypes, t) {
		return false
	}
	return true
}

// Lighten scales the color's lightness in HSL space, capped below pure
// white. Used for the inner stroke of double-drawn links.
func Lighten(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	l *= lightenFactor
	if l > lightenCap {
		l = lightenCap
	}
	return colorful.Hsl(h, s, l).Clamped().Hex(), nil
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
