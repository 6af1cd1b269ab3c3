package fbparser

// The XML vocabulary of IEC 61499 documents, as the reference IDE writes
// them. Sub-application documents use the SubApp-prefixed element names
// for the same structures FBType documents spell without the prefix;
// both spellings are accepted everywhere so type definitions from either
// dialect resolve.

type xmlSubAppType struct {
	Name      string            `xml:"Name,attr"`
	Comment   string            `xml:"Comment,attr"`
	Interface *xmlInterfaceList `xml:"SubAppInterfaceList"`
	Network   *xmlNetwork       `xml:"SubAppNetwork"`
}

type xmlFBType struct {
	Name      string            `xml:"Name,attr"`
	Comment   string            `xml:"Comment,attr"`
	Interface *xmlInterfaceList `xml:"InterfaceList"`
	Network   *xmlNetwork       `xml:"FBNetwork"`
	Composite *xmlNetwork       `xml:"CompositeFB"`

	Basic   *xmlPresence `xml:"BasicFB"`
	Simple  *xmlPresence `xml:"SimpleFB"`
	Service *xmlPresence `xml:"Service"`
}

type xmlAdapterType struct {
	Name      string            `xml:"Name,attr"`
	Comment   string            `xml:"Comment,attr"`
	Interface *xmlInterfaceList `xml:"InterfaceList"`
}

type xmlSystem struct {
	Name         string           `xml:"Name,attr"`
	Comment      string           `xml:"Comment,attr"`
	Applications []xmlApplication `xml:"Application"`
}

type xmlApplication struct {
	Name    string      `xml:"Name,attr"`
	Network *xmlNetwork `xml:"SubAppNetwork"`
}

type xmlPresence struct{}

type xmlInterfaceList struct {
	EventInputs        []xmlEventSection   `xml:"EventInputs"`
	EventOutputs       []xmlEventSection   `xml:"EventOutputs"`
	SubAppEventInputs  []xmlEventSection   `xml:"SubAppEventInputs"`
	SubAppEventOutputs []xmlEventSection   `xml:"SubAppEventOutputs"`
	InputVars          []xmlVarSection     `xml:"InputVars"`
	OutputVars         []xmlVarSection     `xml:"OutputVars"`
	Plugs              []xmlAdapterSection `xml:"Plugs"`
	Sockets            []xmlAdapterSection `xml:"Sockets"`
}

type xmlEventSection struct {
	Events       []xmlEvent `xml:"Event"`
	SubAppEvents []xmlEvent `xml:"SubAppEvent"`
}

type xmlEvent struct {
	Name    string    `xml:"Name,attr"`
	Type    string    `xml:"Type,attr"`
	Comment string    `xml:"Comment,attr"`
	With    []xmlWith `xml:"With"`
}

type xmlWith struct {
	Var string `xml:"Var,attr"`
}

type xmlVarSection struct {
	Vars []xmlVarDeclaration `xml:"VarDeclaration"`
}

type xmlVarDeclaration struct {
	Name      string `xml:"Name,attr"`
	Type      string `xml:"Type,attr"`
	ArraySize string `xml:"ArraySize,attr"`
	Comment   string `xml:"Comment,attr"`
}

type xmlAdapterSection struct {
	Adapters []xmlAdapterDeclaration `xml:"AdapterDeclaration"`
}

type xmlAdapterDeclaration struct {
	Name    string  `xml:"Name,attr"`
	Type    string  `xml:"Type,attr"`
	Comment string  `xml:"Comment,attr"`
	X       float64 `xml:"x,attr"`
	Y       float64 `xml:"y,attr"`
}

type xmlNetwork struct {
	FBs                []xmlFBInstance         `xml:"FB"`
	SubApps            []xmlFBInstance         `xml:"SubApp"`
	EventConnections   []xmlConnectionSection `xml:"EventConnections"`
	DataConnections    []xmlConnectionSection `xml:"DataConnections"`
	AdapterConnections []xmlConnectionSection `xml:"AdapterConnections"`
}

type xmlFBInstance struct {
	Name       string         `xml:"Name,attr"`
	Type       string         `xml:"Type,attr"`
	X          float64        `xml:"x,attr"`
	Y          float64        `xml:"y,attr"`
	Parameters []xmlParameter `xml:"Parameter"`
	Attributes []xmlAttribute `xml:"Attribute"`
}

type xmlParameter struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

type xmlAttribute struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

type xmlConnectionSection struct {
	Connections []xmlConnection `xml:"Connection"`
}

// The bend hint attributes stay pointers: a connection with no authored
// hints routes differently from one whose hints are written as zero.
type xmlConnection struct {
	Source      string   `xml:"Source,attr"`
	Destination string   `xml:"Destination,attr"`
	DX1         *float64 `xml:"dx1,attr"`
	DX2         *float64 `xml:"dx2,attr"`
	DY          *float64 `xml:"dy,attr"`
}
