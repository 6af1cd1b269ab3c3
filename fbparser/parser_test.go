package fbparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fbnet/fbgraph"
)

const subAppDoc = `<?xml version="1.0" encoding="UTF-8"?>
<SubAppType Name="MonitorNet" Comment="temperature monitoring">
  <SubAppInterfaceList>
    <SubAppEventInputs>
      <SubAppEvent Name="START"/>
    </SubAppEventInputs>
    <SubAppEventOutputs>
      <SubAppEvent Name="DONE"/>
    </SubAppEventOutputs>
    <InputVars>
      <VarDeclaration Name="LIMIT" Type="REAL"/>
    </InputVars>
    <OutputVars>
      <VarDeclaration Name="READINGS" Type="REAL" ArraySize="4"/>
    </OutputVars>
  </SubAppInterfaceList>
  <SubAppNetwork>
    <FB Name="SENSOR" Type="io::TEMP_READ" x="200" y="400">
      <Parameter Name="PERIOD" Value="T#100ms"/>
      <Attribute Name="DataType" Value="REAL"/>
    </FB>
    <SubApp Name="FILTER" Type="FILTER_NET" x="1800" y="400"/>
    <EventConnections>
      <Connection Source="START" Destination="SENSOR.REQ"/>
      <Connection Source="SENSOR.CNF" Destination="FILTER.REQ" dx1="120.5"/>
    </EventConnections>
    <DataConnections>
      <Connection Source="SENSOR.OUT" Destination="FILTER.IN" dx1="0" dy="300"/>
    </DataConnections>
  </SubAppNetwork>
</SubAppType>`

func TestParseSubAppType(t *testing.T) {
	g, err := Parse([]byte(subAppDoc))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "MonitorNet", g.Name)
	assert.Equal(t, "temperature monitoring", g.Comment)
	assert.Equal(t, fbgraph.RootSubApp, g.Root)

	if len(g.BoundaryPorts) != 4 {
		t.Fatalf("expected 4 boundary ports, got %d", len(g.BoundaryPorts))
	}
	start := g.BoundaryPorts[0]
	assert.Equal(t, "START", start.Name)
	assert.Equal(t, "Event", start.Type)
	assert.Equal(t, fbgraph.DirectionInput, start.Direction)
	assert.Equal(t, fbgraph.CategoryEvent, start.Category)

	readings := g.BoundaryPorts[3]
	assert.Equal(t, "ARRAY [0..3] OF REAL", readings.Type)
	assert.Equal(t, fbgraph.DirectionOutput, readings.Direction)

	if len(g.Instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(g.Instances))
	}
	sensor := g.Instances[0]
	assert.Equal(t, "io::TEMP_READ", sensor.TypeName)
	assert.Equal(t, 200., sensor.X)
	assert.Equal(t, 400., sensor.Y)
	assert.Equal(t, "T#100ms", sensor.Parameters["PERIOD"])
	assert.Equal(t, "REAL", sensor.Parameters["__DataType__"])
	assert.Equal(t, fbgraph.KindSubApp, g.Instances[1].Kind)

	if len(g.Connections) != 3 {
		t.Fatalf("expected 3 connections, got %d", len(g.Connections))
	}
	first := g.Connections[0]
	assert.True(t, first.Source.IsBoundary())
	assert.Nil(t, first.DX1)

	hinted := g.Connections[1]
	if hinted.DX1 == nil {
		t.Fatal("expected dx1 hint")
	}
	assert.Equal(t, 120.5, *hinted.DX1)
	assert.Nil(t, hinted.DY)

	// a written zero is a hint, distinct from absence
	data := g.Connections[2]
	assert.Equal(t, fbgraph.CategoryData, data.Category)
	if data.DX1 == nil || data.DY == nil {
		t.Fatal("expected authored dx1 and dy")
	}
	assert.Equal(t, 0., *data.DX1)
	assert.Equal(t, 300., *data.DY)
	assert.Nil(t, data.DX2)
}

const fbTypeDoc = `<FBType Name="CTRL" Comment="controller">
  <InterfaceList>
    <EventInputs>
      <Event Name="INIT"/>
    </EventInputs>
    <Sockets>
      <AdapterDeclaration Name="MEAS" Type="ASensor" x="100" y="900"/>
    </Sockets>
  </InterfaceList>
  <FBNetwork>
    <FB Name="LOGIC" Type="PID" x="600" y="300"/>
  </FBNetwork>
</FBType>`

func TestParseFBType(t *testing.T) {
	g, err := Parse([]byte(fbTypeDoc))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, fbgraph.RootFBType, g.Root)

	// the interface socket materializes as an adapter block
	if len(g.Instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(g.Instances))
	}
	meas := g.Instances[0]
	assert.Equal(t, "MEAS", meas.Name)
	assert.Equal(t, fbgraph.KindAdapter, meas.Kind)
	assert.Equal(t, fbgraph.AdapterSocket, meas.Adapter)
	assert.Equal(t, fbgraph.KindBasic, g.Instances[1].Kind)
}

func TestParseFBTypeWithoutNetwork(t *testing.T) {
	_, err := Parse([]byte(`<FBType Name="BASIC"><BasicFB/></FBType>`))
	assert.Error(t, err)
}

func TestParseSystem(t *testing.T) {
	doc := `<System Name="PLANT">
  <Application Name="APP1">
    <SubAppNetwork>
      <FB Name="A" Type="X" x="0" y="0"/>
    </SubAppNetwork>
  </Application>
  <Application Name="APP2">
    <SubAppNetwork>
      <FB Name="B" Type="Y" x="100" y="100"/>
    </SubAppNetwork>
  </Application>
</System>`
	g, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, fbgraph.RootSystem, g.Root)
	assert.Len(t, g.Instances, 2)
}

func TestParseUnknownRoot(t *testing.T) {
	_, err := Parse([]byte(`<DeviceType Name="D"/>`))
	assert.Error(t, err)
}

func TestParseInterface(t *testing.T) {
	doc := `<FBType Name="PID">
  <InterfaceList>
    <EventInputs>
      <Event Name="REQ">
        <With Var="SP"/>
        <With Var="PV"/>
      </Event>
    </EventInputs>
    <EventOutputs>
      <Event Name="CNF"/>
    </EventOutputs>
    <InputVars>
      <VarDeclaration Name="SP" Type="REAL"/>
      <VarDeclaration Name="PV" Type="REAL"/>
    </InputVars>
    <OutputVars>
      <VarDeclaration Name="OUT" Type="REAL"/>
    </OutputVars>
    <Plugs>
      <AdapterDeclaration Name="TUNE" Type="ATune"/>
    </Plugs>
  </InterfaceList>
  <BasicFB/>
</FBType>`
	iface, err := ParseInterface([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, fbgraph.KindBasic, iface.Kind)
	assert.Equal(t, []string{"SP", "PV"}, iface.EventInputs[0].With)
	assert.Len(t, iface.DataInputs, 2)
	assert.Len(t, iface.DataOutputs, 1)
	assert.Len(t, iface.Plugs, 1)
	assert.Empty(t, iface.Sockets)
}

func TestParseInterfaceKinds(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want fbgraph.BlockKind
	}{
		{"composite", `<FBType Name="C"><InterfaceList/><FBNetwork/></FBType>`, fbgraph.KindComposite},
		{"simple", `<FBType Name="S"><InterfaceList/><SimpleFB/></FBType>`, fbgraph.KindSimple},
		{"service", `<FBType Name="SI"><InterfaceList/><Service/></FBType>`, fbgraph.KindService},
		{"adapter", `<AdapterType Name="A"><InterfaceList/></AdapterType>`, fbgraph.KindAdapter},
		{"subapp", `<SubAppType Name="N"><SubAppInterfaceList/></SubAppType>`, fbgraph.KindSubApp},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iface, err := ParseInterface([]byte(tc.doc))
			if err != nil {
				t.Fatal(err)
			}
			assert.Equal(t, tc.want, iface.Kind)
		})
	}
}
