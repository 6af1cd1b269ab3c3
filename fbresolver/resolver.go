// Package fbresolver fills in instance pin surfaces. Network documents
// reference types by name only; the resolver looks each type up in the
// type library directories and falls back to inferring pins from the
// connection list when no definition is found.
package fbresolver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cdr.dev/slog"

	"fbnet/fbgraph"
	"fbnet/fbparser"
	"fbnet/lib/log"
)

// Resolver carries the file index and parsed-interface cache for one run.
// Separate resolvers share nothing, so concurrent conversions with
// different libraries stay isolated.
type Resolver struct {
	libPaths []string

	index   map[string]string
	cache   map[string]*fbparser.Interface
	indexed bool
}

func NewResolver(libPaths ...string) *Resolver {
	return &Resolver{
		libPaths: libPaths,
		index:    map[string]string{},
		cache:    map[string]*fbparser.Interface{},
	}
}

// Resolve populates the pin surface of every instance in g.
func (r *Resolver) Resolve(ctx context.Context, g *fbgraph.Graph) {
	r.buildIndex(ctx)

	for _, inst := range g.Instances {
		if inst.Adapter != fbgraph.AdapterNone {
			r.resolveAdapter(ctx, inst, g)
		} else {
			r.resolveInstance(ctx, inst, g)
		}
	}
}

// buildIndex walks the library directories once, indexing every type
// definition file both by bare name and by its ::-qualified path, so
// "E_SWITCH" and "iec61499::events::E_SWITCH" both resolve.
func (r *Resolver) buildIndex(ctx context.Context) {
	if r.indexed {
		return
	}
	r.indexed = true

	for _, libPath := range r.libPaths {
		root := os.DirFS(libPath)
		err := fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			switch filepath.Ext(path) {
			case ".fbt", ".sub", ".adp":
			default:
				return nil
			}

			full := filepath.Join(libPath, filepath.FromSlash(path))
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			r.index[stem] = full

			parts := strings.Split(path, "/")
			parts[len(parts)-1] = stem
			r.index[strings.Join(parts, "::")] = full
			return nil
		})
		if err != nil {
			log.Debug(ctx, "skipping type library path",
				slog.F("path", libPath), slog.Error(err))
		}
	}
}

func (r *Resolver) resolveInstance(ctx context.Context, inst *fbgraph.Instance, g *fbgraph.Graph) {
	iface := r.lookup(ctx, inst.TypeName)
	if iface == nil {
		inferFromConnections(inst, g)
		return
	}

	inst.EventInputs = iface.EventInputs
	inst.EventOutputs = iface.EventOutputs
	inst.DataInputs = iface.DataInputs
	inst.DataOutputs = iface.DataOutputs
	inst.Sockets = iface.Sockets
	inst.Plugs = iface.Plugs
	if inst.Kind != fbgraph.KindSubApp {
		inst.Kind = iface.Kind
	}
}

// resolveAdapter applies the definition's pin surface to an adapter
// instance. Definitions are written from the socket perspective, so a
// plug sees every direction mirrored.
func (r *Resolver) resolveAdapter(ctx context.Context, inst *fbgraph.Instance, g *fbgraph.Graph) {
	iface := r.lookup(ctx, inst.TypeName)
	if iface == nil {
		inferFromConnections(inst, g)
		return
	}

	if inst.Adapter == fbgraph.AdapterPlug {
		inst.EventInputs = iface.EventOutputs
		inst.EventOutputs = iface.EventInputs
		inst.DataInputs = iface.DataOutputs
		inst.DataOutputs = iface.DataInputs
	} else {
		inst.EventInputs = iface.EventInputs
		inst.EventOutputs = iface.EventOutputs
		inst.DataInputs = iface.DataInputs
		inst.DataOutputs = iface.DataOutputs
	}
	inst.Kind = fbgraph.KindAdapter
}

func (r *Resolver) lookup(ctx context.Context, typeName string) *fbparser.Interface {
	if typeName == "" {
		return nil
	}
	if iface, ok := r.cache[typeName]; ok {
		return iface
	}

	path, ok := r.index[typeName]
	if !ok {
		short := typeName
		if i := strings.LastIndex(typeName, "::"); i >= 0 {
			short = typeName[i+2:]
		}
		path, ok = r.index[short]
	}
	if !ok {
		r.cache[typeName] = nil
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug(ctx, "unreadable type definition",
			slog.F("type", typeName), slog.F("path", path), slog.Error(err))
		r.cache[typeName] = nil
		return nil
	}
	iface, err := fbparser.ParseInterface(data)
	if err != nil {
		log.Debug(ctx, "unparseable type definition",
			slog.F("type", typeName), slog.F("path", path), slog.Error(err))
		r.cache[typeName] = nil
		return nil
	}

	r.cache[typeName] = iface
	return iface
}

// inferFromConnections derives a minimal pin surface from the endpoints
// that reference the instance: sources become outputs, destinations
// inputs, each pin once, in connection order. Inferred data pins carry
// no type and render in the default data color.
func inferFromConnections(inst *fbgraph.Instance, g *fbgraph.Graph) {
	appendOnce := func(ports []fbgraph.Port, name, typeName string) []fbgraph.Port {
		for _, p := range ports {
			if p.Name == name {
				return ports
			}
		}
		return append(ports, fbgraph.Port{Name: name, Type: typeName})
	}

	for _, conn := range g.Connections {
		if conn.Source.Instance == inst.Name {
			switch conn.Category {
			case fbgraph.CategoryEvent:
				inst.EventOutputs = appendOnce(inst.EventOutputs, conn.Source.Port, "Event")
			case fbgraph.CategoryData:
				inst.DataOutputs = appendOnce(inst.DataOutputs, conn.Source.Port, "")
			}
		}
		if conn.Destination.Instance == inst.Name {
			switch conn.Category {
			case fbgraph.CategoryEvent:
				inst.EventInputs = appendOnce(inst.EventInputs, conn.Destination.Port, "Event")
			case fbgraph.CategoryData:
				inst.DataInputs = appendOnce(inst.DataInputs, conn.Destination.Port, "")
			}
		}
	}
}
