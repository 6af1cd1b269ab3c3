// fbnet renders IEC 61499 network documents to SVG.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"fbnet/fbexporter"
	"fbnet/fbgraph"
	"fbnet/fblayout"
	"fbnet/fbparser"
	"fbnet/fbrenderers/fbsvg"
	"fbnet/fbresolver"
	"fbnet/lib/log"
	"fbnet/lib/textmeasure"
)

func main() {
	output := pflag.StringP("output", "o", "", "output path; only valid with a single input")
	typeLibs := pflag.StringArray("type-lib", nil, "type library directory; repeatable")
	scale := pflag.Float64("scale", 0, "canvas-to-pixel scale; 0 scales automatically")
	settingsPath := pflag.String("settings", "", "TOML block size settings file")
	fontPath := pflag.String("font", "", "TTF font for label measurement")
	fontItalicPath := pflag.String("font-italic", "", "italic TTF font for type labels")
	toStdout := pflag.Bool("stdout", false, "write SVG to stdout instead of files")
	pflag.Parse()

	ctx := log.Stderr(context.Background())
	if err := run(ctx, opts{
		inputs:         pflag.Args(),
		output:         *output,
		typeLibs:       *typeLibs,
		scale:          *scale,
		settingsPath:   *settingsPath,
		fontPath:       *fontPath,
		fontItalicPath: *fontItalicPath,
		toStdout:       *toStdout,
	}); err != nil {
		log.Error(ctx, "fbnet failed", slog.Error(err))
		os.Exit(1)
	}
}

type opts struct {
	inputs         []string
	output         string
	typeLibs       []string
	scale          float64
	settingsPath   string
	fontPath       string
	fontItalicPath string
	toStdout       bool
}

func run(ctx context.Context, o opts) error {
	if len(o.inputs) == 0 {
		return errors.New("usage: fbnet [flags] <network document>...")
	}
	if o.output != "" && len(o.inputs) > 1 {
		return errors.New("--output requires a single input")
	}

	settings, err := fbgraph.LoadSettings(o.settingsPath)
	if err != nil {
		return err
	}
	ruler, err := buildRuler(o.fontPath, o.fontItalicPath)
	if err != nil {
		return err
	}

	engine := fblayout.NewEngine(o.scale, settings, ruler)

	for _, input := range o.inputs {
		g, err := fbparser.ParseFile(input)
		if err != nil {
			return err
		}
		// the input's own directory always serves as a library, so
		// sibling type definitions resolve without --type-lib
		resolver := fbresolver.NewResolver(libPaths(input, o.typeLibs)...)
		resolver.Resolve(ctx, g)
		engine.Layout(ctx, g)
		rendered := fbsvg.Render(fbexporter.Export(ctx, g, engine))

		if o.toStdout {
			if _, err := os.Stdout.Write(rendered); err != nil {
				return err
			}
			continue
		}
		out := o.output
		if out == "" {
			out = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
		}
		if err := os.WriteFile(out, rendered, 0o644); err != nil {
			return err
		}
		log.Info(ctx, "wrote diagram",
			slog.F("input", input), slog.F("output", out))
	}
	return nil
}

// libPaths appends the input document's directory to the configured
// library paths unless it is already among them.
func libPaths(input string, typeLibs []string) []string {
	dir := filepath.Dir(input)
	paths := make([]string, 0, len(typeLibs)+1)
	paths = append(paths, typeLibs...)
	for _, p := range paths {
		if p == dir {
			return paths
		}
	}
	return append(paths, dir)
}

// buildRuler loads measurement fonts when given; without them labels are
// sized by the estimate and blocks come out slightly wider.
func buildRuler(fontPath, italicPath string) (*textmeasure.Ruler, error) {
	if fontPath == "" {
		return textmeasure.NewRuler(), nil
	}
	regular, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	italic := regular
	if italicPath != "" {
		italic, err = os.ReadFile(italicPath)
		if err != nil {
			return nil, fmt.Errorf("reading italic font: %w", err)
		}
	}
	return textmeasure.NewRulerFromFonts(regular, italic)
}
