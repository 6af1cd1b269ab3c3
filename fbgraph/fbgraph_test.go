package fbgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEndpoint(t *testing.T) {
	e := ParseEndpoint("TIMER.START")
	assert.Equal(t, "TIMER", e.Instance)
	assert.Equal(t, "START", e.Port)
	assert.False(t, e.IsBoundary())
	assert.Equal(t, "TIMER.START", e.String())

	b := ParseEndpoint("QI")
	assert.Equal(t, "", b.Instance)
	assert.Equal(t, "QI", b.Port)
	assert.True(t, b.IsBoundary())
	assert.Equal(t, "QI", b.String())
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "START_MON…", TruncateLabel("START_MONITORING", 9))
	assert.Equal(t, "REQ", TruncateLabel("REQ", 3))
	assert.Equal(t, "START_MONITORING", TruncateLabel("START_MONITORING", 0))
	// rune-safe: cut happens between runes, not bytes
	assert.Equal(t, "αβ…", TruncateLabel("αβγδ", 2))
}

func TestShortTypeName(t *testing.T) {
	inst := &Instance{TypeName: "iec61499::events::E_SWITCH"}
	assert.Equal(t, "E_SWITCH", inst.ShortTypeName())

	inst = &Instance{TypeName: "E_DELAY"}
	assert.Equal(t, "E_DELAY", inst.ShortTypeName())
}

func TestDataPort(t *testing.T) {
	inst := &Instance{
		DataInputs:  []Port{{Name: "IN", Type: "INT"}},
		DataOutputs: []Port{{Name: "OUT", Type: "REAL"}, {Name: "IN", Type: "BOOL"}},
	}

	p, ok := inst.DataPort("OUT")
	if !ok {
		t.Fatal("expected OUT to resolve")
	}
	assert.Equal(t, "REAL", p.Type)

	// outputs win when both sides declare the name
	p, ok = inst.DataPort("IN")
	assert.True(t, ok)
	assert.Equal(t, "BOOL", p.Type)

	_, ok = inst.DataPort("MISSING")
	assert.False(t, ok)
}

func TestGraphMaps(t *testing.T) {
	g := &Graph{
		Instances: []*Instance{{Name: "A"}, {Name: "B"}},
		BoundaryPorts: []*BoundaryPort{
			{Name: "QI", Direction: DirectionInput},
		},
	}

	instances := g.InstanceMap()
	assert.Len(t, instances, 2)
	assert.Same(t, g.Instances[1], instances["B"])

	boundary := g.BoundaryMap()
	assert.Same(t, g.BoundaryPorts[0], boundary["QI"])
}
