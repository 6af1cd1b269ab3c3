package fbparser

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"fbnet/fbgraph"
)

// Interface is the pin surface of a named type, extracted from its
// definition file. Adapter definitions describe the socket perspective;
// the resolver mirrors them for plug instances.
type Interface struct {
	Kind fbgraph.BlockKind

	EventInputs  []fbgraph.Port
	EventOutputs []fbgraph.Port
	DataInputs   []fbgraph.Port
	DataOutputs  []fbgraph.Port
	Sockets      []fbgraph.Port
	Plugs        []fbgraph.Port
}

// ParseInterface reads a type definition document (FBType, SubAppType or
// AdapterType) down to its pin surface and kind.
func ParseInterface(data []byte) (*Interface, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	start, err := rootElement(dec)
	if err != nil {
		return nil, err
	}

	switch start.Name.Local {
	case "AdapterType":
		var doc xmlAdapterType
		if err := dec.DecodeElement(&doc, start); err != nil {
			return nil, fmt.Errorf("fbparser: decoding AdapterType: %w", err)
		}
		return extractInterface(doc.Interface, fbgraph.KindAdapter), nil
	case "SubAppType":
		var doc xmlSubAppType
		if err := dec.DecodeElement(&doc, start); err != nil {
			return nil, fmt.Errorf("fbparser: decoding SubAppType: %w", err)
		}
		return extractInterface(doc.Interface, fbgraph.KindSubApp), nil
	case "FBType":
		var doc xmlFBType
		if err := dec.DecodeElement(&doc, start); err != nil {
			return nil, fmt.Errorf("fbparser: decoding FBType: %w", err)
		}
		return extractInterface(doc.Interface, fbTypeKind(&doc)), nil
	}
	return nil, fmt.Errorf("fbparser: unknown root element %q", start.Name.Local)
}

func fbTypeKind(doc *xmlFBType) fbgraph.BlockKind {
	switch {
	case doc.Basic != nil:
		return fbgraph.KindBasic
	case doc.Composite != nil || doc.Network != nil:
		return fbgraph.KindComposite
	case doc.Simple != nil:
		return fbgraph.KindSimple
	}
	return fbgraph.KindService
}

func extractInterface(iface *xmlInterfaceList, kind fbgraph.BlockKind) *Interface {
	out := &Interface{Kind: kind}
	if iface == nil {
		return out
	}

	events := func(sections []xmlEventSection) []fbgraph.Port {
		var ports []fbgraph.Port
		for _, section := range sections {
			for _, ev := range allEvents(section) {
				ports = append(ports, fbgraph.Port{
					Name:    ev.Name,
					Type:    eventType(ev),
					Comment: ev.Comment,
					With:    withVars(ev),
				})
			}
		}
		return ports
	}
	vars := func(sections []xmlVarSection) []fbgraph.Port {
		var ports []fbgraph.Port
		for _, section := range sections {
			for _, v := range section.Vars {
				ports = append(ports, fbgraph.Port{
					Name:    v.Name,
					Type:    typeString(v),
					Comment: v.Comment,
				})
			}
		}
		return ports
	}
	adapters := func(sections []xmlAdapterSection) []fbgraph.Port {
		var ports []fbgraph.Port
		for _, section := range sections {
			for _, adp := range section.Adapters {
				ports = append(ports, fbgraph.Port{
					Name:    adp.Name,
					Type:    adp.Type,
					Comment: adp.Comment,
				})
			}
		}
		return ports
	}

	out.EventInputs = append(events(iface.EventInputs), events(iface.SubAppEventInputs)...)
	out.EventOutputs = append(events(iface.EventOutputs), events(iface.SubAppEventOutputs)...)
	out.DataInputs = vars(iface.InputVars)
	out.DataOutputs = vars(iface.OutputVars)
	out.Sockets = adapters(iface.Sockets)
	out.Plugs = adapters(iface.Plugs)
	return out
}

func withVars(ev xmlEvent) []string {
	var names []string
	for _, w := range ev.With {
		if w.Var != "" {
			names = append(names, w.Var)
		}
	}
	return names
}
