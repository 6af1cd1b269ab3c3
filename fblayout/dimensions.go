package fblayout

import (
	"strings"

	"fbnet/fbgraph"
	"fbnet/lib/geo"
	"fbnet/lib/go2"
)

// sizeInstance derives the block dimensions of one instance from its port
// counts and label metrics. Zero-port instances still get a minimum-sized
// block; there are no error conditions here.
func (e *Engine) sizeInstance(inst *fbgraph.Instance) {
	eventRows := go2.Max(go2.Max(len(inst.EventInputs), len(inst.EventOutputs)), 1)
	dataRows := go2.Max(len(inst.DataInputs), len(inst.DataOutputs))
	adapterRows := go2.Max(len(inst.Sockets), len(inst.Plugs))

	inst.EventSectionHeight = float64(eventRows) * PORT_ROW_HEIGHT
	inst.DataSectionHeight = float64(dataRows) * PORT_ROW_HEIGHT
	inst.AdapterSectionHeight = float64(adapterRows) * PORT_ROW_HEIGHT

	// the +1 row is the name strip between events and data
	height := float64(eventRows+dataRows+adapterRows+1)*PORT_ROW_HEIGHT +
		float64(e.Settings.MarginTopBottom)

	inst.NameSectionTop = inst.EventSectionHeight
	inst.NameSectionBottom = inst.EventSectionHeight + NAME_SECTION_HEIGHT
	inst.AdapterSectionTop = inst.NameSectionBottom + inst.DataSectionHeight

	width := go2.Max(MIN_BLOCK_WIDTH, e.nameSectionWidth(inst))
	width = go2.Max(width, e.portsWidth(inst))
	width += float64(e.Settings.MarginLeftRight)

	inst.Box = geo.NewBox(nil, width, height)

	// the instance name is rendered above the block and may be wider
	inst.FigureWidth = go2.Max(width, e.Ruler.Measure(inst.Name, false))
}

// nameSectionWidth is the width needed by the name strip: outline notches,
// the kind icon, and the (truncated, italic) type label.
func (e *Engine) nameSectionWidth(inst *fbgraph.Instance) float64 {
	label := fbgraph.TruncateLabel(inst.ShortTypeName(), e.Settings.MaxTypeLabelSize)
	typeWidth := e.Ruler.Measure(label, true)
	return NOTCH_WIDTH + 3 + NAME_ICON_WIDTH + NAME_ICON_TEXT_GAP + typeWidth + 5 + NOTCH_WIDTH
}

// portsWidth is the width needed by the widest left pin column, the
// widest right pin column and the gap between them.
func (e *Engine) portsWidth(inst *fbgraph.Instance) float64 {
	minPinWidth := 0.
	if e.Settings.MinPinLabelSize > 0 {
		minPinWidth = e.Ruler.Measure(strings.Repeat("W", e.Settings.MinPinLabelSize), false)
	}

	pin := func(p fbgraph.Port, glyphSpace float64) float64 {
		label := fbgraph.TruncateLabel(p.Name, e.Settings.MaxPinLabelSize)
		return glyphSpace + go2.Max(minPinWidth, e.Ruler.Measure(label, false))
	}

	maxLeft := 0.
	for _, p := range inst.EventInputs {
		maxLeft = go2.Max(maxLeft, pin(p, PIN_GLYPH_SPACE))
	}
	for _, p := range inst.DataInputs {
		maxLeft = go2.Max(maxLeft, pin(p, PIN_GLYPH_SPACE))
	}
	for _, p := range inst.Sockets {
		maxLeft = go2.Max(maxLeft, pin(p, ADAPTER_GLYPH_SPACE))
	}

	maxRight := 0.
	for _, p := range inst.EventOutputs {
		maxRight = go2.Max(maxRight, pin(p, PIN_GLYPH_SPACE))
	}
	for _, p := range inst.DataOutputs {
		maxRight = go2.Max(maxRight, pin(p, PIN_GLYPH_SPACE))
	}
	for _, p := range inst.Plugs {
		maxRight = go2.Max(maxRight, pin(p, ADAPTER_GLYPH_SPACE))
	}

	return maxLeft + MIN_CENTER_GAP + maxRight
}
