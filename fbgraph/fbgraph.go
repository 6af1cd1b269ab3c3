// Package fbgraph holds the function block network model. The parser and
// resolver populate it; the layout phases mutate it in place, in phase
// order; everything downstream only reads it.
package fbgraph

import (
	"strings"

	"fbnet/lib/geo"
)

// PortCategory distinguishes the three connection layers of a network.
type PortCategory int

const (
	CategoryEvent PortCategory = iota
	CategoryData
	CategoryAdapter
)

func (c PortCategory) String() string {
	switch c {
	case CategoryEvent:
		return "event"
	case CategoryData:
		return "data"
	case CategoryAdapter:
		return "adapter"
	}
	return "unknown"
}

// Direction is the side of the boundary a port lives on.
type Direction int

const (
	DirectionInput Direction = iota
	DirectionOutput
)

func (d Direction) String() string {
	if d == DirectionOutput {
		return "output"
	}
	return "input"
}

// BlockKind classifies the type behind an instance.
type BlockKind int

const (
	KindBasic BlockKind = iota
	KindComposite
	KindSimple
	KindService
	KindSubApp
	KindAdapter
)

// AdapterKind tells plug and socket instances apart. Non-adapter
// instances carry AdapterNone.
type AdapterKind int

const (
	AdapterNone AdapterKind = iota
	AdapterPlug
	AdapterSocket
)

// Port is one pin on an instance. Immutable once resolved.
type Port struct {
	Name    string
	Type    string
	Comment string
	// With lists the data pins associated with an event pin.
	With []string
}

// Instance is one placed block in the network.
type Instance struct {
	Name     string
	TypeName string
	Kind     BlockKind
	Adapter  AdapterKind

	// Logical position in source-document units.
	X float64
	Y float64

	EventInputs  []Port
	EventOutputs []Port
	DataInputs   []Port
	DataOutputs  []Port
	Sockets      []Port
	Plugs        []Port

	Parameters map[string]string

	// Everything below is written by the layout phases.

	// Box is the block body in pixel space.
	Box *geo.Box
	// FigureWidth is the block width widened, if needed, to fit the name
	// label rendered above the block.
	FigureWidth float64

	EventSectionHeight   float64
	NameSectionTop       float64
	NameSectionBottom    float64
	DataSectionHeight    float64
	AdapterSectionTop    float64
	AdapterSectionHeight float64

	// Anchors maps port name to the pixel point connections attach at.
	Anchors map[string]*geo.Point
}

// ShortTypeName strips the namespace qualifier from the type reference.
func (inst *Instance) ShortTypeName() string {
	if i := strings.LastIndex(inst.TypeName, "::"); i >= 0 {
		return inst.TypeName[i+2:]
	}
	return inst.TypeName
}

// DataPort finds a data pin by name on either side, for link coloring.
func (inst *Instance) DataPort(name string) (Port, bool) {
	for _, p := range inst.DataOutputs {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range inst.DataInputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Endpoint references one end of a connection: a port on a named
// instance, or a bare boundary port when Instance is empty.
type Endpoint struct {
	Instance string
	Port     string
}

// ParseEndpoint splits an "instance.port" or bare boundary-port
// reference.
func ParseEndpoint(s string) Endpoint {
	if i := strings.Index(s, "."); i >= 0 {
		return Endpoint{Instance: s[:i], Port: s[i+1:]}
	}
	return Endpoint{Port: s}
}

func (e Endpoint) IsBoundary() bool {
	return e.Instance == ""
}

func (e Endpoint) String() string {
	if e.Instance == "" {
		return e.Port
	}
	return e.Instance + "." + e.Port
}

// Connection joins two endpoints on one of the three network layers.
// The bend hints are designer-authored offsets in source-document units;
// nil means no hint was authored, which is distinct from a zero hint.
type Connection struct {
	Source      Endpoint
	Destination Endpoint
	Category    PortCategory

	DX1 *float64
	DX2 *float64
	DY  *float64
}

// BoundaryPort is an interface-level port drawn in a sidebar.
type BoundaryPort struct {
	Name      string
	Type      string
	Direction Direction
	Category  PortCategory

	// Anchor is written by the layout phases.
	Anchor *geo.Point
}

// RootKind is the document flavor the network came from.
type RootKind int

const (
	RootSubApp RootKind = iota
	RootFBType
	RootSystem
)

// Graph is the complete network. Layout writes the sidebar, header and
// border geometry plus the pixel mapping of the logical origin.
type Graph struct {
	Name    string
	Comment string
	Root    RootKind

	Instances     []*Instance
	Connections   []*Connection
	BoundaryPorts []*BoundaryPort

	InputSidebar  *geo.Box
	OutputSidebar *geo.Box
	Header        *geo.Box
	Border        *geo.Box

	// Pixel coordinates of logical (0,0), used to convert bend hints.
	OriginX float64
	OriginY float64
}

// InstanceMap returns a name lookup over the instances.
func (g *Graph) InstanceMap() map[string]*Instance {
	m := make(map[string]*Instance, len(g.Instances))
	for _, inst := range g.Instances {
		m[inst.Name] = inst
	}
	return m
}

// BoundaryMap returns a name lookup over the boundary ports.
func (g *Graph) BoundaryMap() map[string]*BoundaryPort {
	m := make(map[string]*BoundaryPort, len(g.BoundaryPorts))
	for _, bp := range g.BoundaryPorts {
		m[bp.Name] = bp
	}
	return m
}

// TruncateLabel cuts text to max runes and appends an ellipsis.
// max <= 0 disables truncation.
func TruncateLabel(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
