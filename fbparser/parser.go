// Package fbparser reads IEC 61499 XML documents into the network model:
// sub-application types, composite function block types and full systems
// on the network side, plus standalone type definitions for interface
// resolution.
package fbparser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"fbnet/fbgraph"
)

// Parse reads one network document. The root element decides the
// document flavor; anything but SubAppType, FBType or System is an
// error, as is an FBType with no inner network.
func Parse(data []byte) (*fbgraph.Graph, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	start, err := rootElement(dec)
	if err != nil {
		return nil, err
	}

	switch start.Name.Local {
	case "SubAppType":
		var doc xmlSubAppType
		if err := dec.DecodeElement(&doc, start); err != nil {
			return nil, fmt.Errorf("fbparser: decoding SubAppType: %w", err)
		}
		return convertSubAppType(&doc), nil
	case "FBType":
		var doc xmlFBType
		if err := dec.DecodeElement(&doc, start); err != nil {
			return nil, fmt.Errorf("fbparser: decoding FBType: %w", err)
		}
		return convertFBType(&doc)
	case "System":
		var doc xmlSystem
		if err := dec.DecodeElement(&doc, start); err != nil {
			return nil, fmt.Errorf("fbparser: decoding System: %w", err)
		}
		return convertSystem(&doc), nil
	}
	return nil, fmt.Errorf("fbparser: unknown root element %q", start.Name.Local)
}

// ParseFile is Parse over a file's contents.
func ParseFile(path string) (*fbgraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fbparser: %w", err)
	}
	return Parse(data)
}

func rootElement(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("fbparser: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("fbparser: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return &start, nil
		}
	}
}

func convertSubAppType(doc *xmlSubAppType) *fbgraph.Graph {
	g := &fbgraph.Graph{
		Name:    doc.Name,
		Comment: doc.Comment,
		Root:    fbgraph.RootSubApp,
	}
	if doc.Interface != nil {
		convertBoundary(doc.Interface, g)
	}
	if doc.Network != nil {
		convertNetwork(doc.Network, g)
	}
	return g
}

func convertFBType(doc *xmlFBType) (*fbgraph.Graph, error) {
	network := doc.Network
	if network == nil {
		network = doc.Composite
	}
	if network == nil {
		return nil, fmt.Errorf("fbparser: FBType %q has no inner network", doc.Name)
	}

	g := &fbgraph.Graph{
		Name:    doc.Name,
		Comment: doc.Comment,
		Root:    fbgraph.RootFBType,
	}
	if doc.Interface != nil {
		convertBoundary(doc.Interface, g)
		// interface-level adapters show up as blocks inside the network
		for _, section := range doc.Interface.Plugs {
			for _, adp := range section.Adapters {
				g.Instances = append(g.Instances, adapterInstance(adp, fbgraph.AdapterPlug))
			}
		}
		for _, section := range doc.Interface.Sockets {
			for _, adp := range section.Adapters {
				g.Instances = append(g.Instances, adapterInstance(adp, fbgraph.AdapterSocket))
			}
		}
	}
	convertNetwork(network, g)
	return g, nil
}

func convertSystem(doc *xmlSystem) *fbgraph.Graph {
	g := &fbgraph.Graph{
		Name:    doc.Name,
		Comment: doc.Comment,
		Root:    fbgraph.RootSystem,
	}
	for _, app := range doc.Applications {
		if app.Network != nil {
			convertNetwork(app.Network, g)
		}
	}
	return g
}

func adapterInstance(adp xmlAdapterDeclaration, kind fbgraph.AdapterKind) *fbgraph.Instance {
	return &fbgraph.Instance{
		Name:       adp.Name,
		TypeName:   adp.Type,
		Kind:       fbgraph.KindAdapter,
		Adapter:    kind,
		X:          adp.X,
		Y:          adp.Y,
		Parameters: map[string]string{},
	}
}

// convertBoundary collects the interface-level ports, in declaration
// order: event inputs, event outputs, data inputs, data outputs. That
// order is the sidebar row order.
func convertBoundary(iface *xmlInterfaceList, g *fbgraph.Graph) {
	boundaryEvents := func(sections []xmlEventSection, dir fbgraph.Direction) {
		for _, section := range sections {
			for _, ev := range allEvents(section) {
				g.BoundaryPorts = append(g.BoundaryPorts, &fbgraph.BoundaryPort{
					Name:      ev.Name,
					Type:      eventType(ev),
					Direction: dir,
					Category:  fbgraph.CategoryEvent,
				})
			}
		}
	}
	boundaryVars := func(sections []xmlVarSection, dir fbgraph.Direction) {
		for _, section := range sections {
			for _, v := range section.Vars {
				g.BoundaryPorts = append(g.BoundaryPorts, &fbgraph.BoundaryPort{
					Name:      v.Name,
					Type:      typeString(v),
					Direction: dir,
					Category:  fbgraph.CategoryData,
				})
			}
		}
	}

	boundaryEvents(iface.EventInputs, fbgraph.DirectionInput)
	boundaryEvents(iface.SubAppEventInputs, fbgraph.DirectionInput)
	boundaryEvents(iface.EventOutputs, fbgraph.DirectionOutput)
	boundaryEvents(iface.SubAppEventOutputs, fbgraph.DirectionOutput)
	boundaryVars(iface.InputVars, fbgraph.DirectionInput)
	boundaryVars(iface.OutputVars, fbgraph.DirectionOutput)
}

func convertNetwork(network *xmlNetwork, g *fbgraph.Graph) {
	for _, fb := range network.FBs {
		g.Instances = append(g.Instances, convertInstance(fb, fbgraph.KindBasic))
	}
	for _, sub := range network.SubApps {
		g.Instances = append(g.Instances, convertInstance(sub, fbgraph.KindSubApp))
	}

	convertConnections(network.EventConnections, fbgraph.CategoryEvent, g)
	convertConnections(network.DataConnections, fbgraph.CategoryData, g)
	convertConnections(network.AdapterConnections, fbgraph.CategoryAdapter, g)
}

func convertInstance(fb xmlFBInstance, kind fbgraph.BlockKind) *fbgraph.Instance {
	inst := &fbgraph.Instance{
		Name:       fb.Name,
		TypeName:   fb.Type,
		Kind:       kind,
		X:          fb.X,
		Y:          fb.Y,
		Parameters: make(map[string]string, len(fb.Parameters)),
	}
	for _, p := range fb.Parameters {
		inst.Parameters[p.Name] = p.Value
	}
	for _, a := range fb.Attributes {
		if a.Name == "DataType" {
			inst.Parameters["__DataType__"] = a.Value
		}
	}
	return inst
}

func convertConnections(sections []xmlConnectionSection, category fbgraph.PortCategory, g *fbgraph.Graph) {
	for _, section := range sections {
		for _, c := range section.Connections {
			g.Connections = append(g.Connections, &fbgraph.Connection{
				Source:      fbgraph.ParseEndpoint(c.Source),
				Destination: fbgraph.ParseEndpoint(c.Destination),
				Category:    category,
				DX1:         c.DX1,
				DX2:         c.DX2,
				DY:          c.DY,
			})
		}
	}
}

func allEvents(section xmlEventSection) []xmlEvent {
	if len(section.SubAppEvents) == 0 {
		return section.Events
	}
	return append(append([]xmlEvent{}, section.Events...), section.SubAppEvents...)
}

func eventType(ev xmlEvent) string {
	if ev.Type == "" {
		return "Event"
	}
	return ev.Type
}

// typeString renders a VarDeclaration's type, folding a numeric
// ArraySize attribute into the bracketed array notation.
func typeString(v xmlVarDeclaration) string {
	if v.ArraySize == "" {
		return v.Type
	}
	n, err := strconv.Atoi(v.ArraySize)
	if err != nil || n <= 0 {
		return v.Type
	}
	return fmt.Sprintf("ARRAY [0..%d] OF %s", n-1, v.Type)
}
