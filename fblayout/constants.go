package fblayout

// Geometry constants calibrated against the reference IDE at 100% zoom.

const PORT_ROW_HEIGHT = 16.

// The name strip between the event and data sections is one row tall.
const NAME_SECTION_HEIGHT = 16.

const TRIANGLE_WIDTH = 5.
const TRIANGLE_HEIGHT = 10.

const MIN_BLOCK_WIDTH = 80.

// min gap between the left and right pin label columns
const MIN_CENTER_GAP = 8.

// pin symbol allowance: triangle plus the text gap and stroke slack
const PIN_GLYPH_SPACE = TRIANGLE_WIDTH + 3 + 1.5

// plug/socket symbols are twice as wide as pin triangles
const ADAPTER_GLYPH_SPACE = TRIANGLE_WIDTH*2 + 3 + 1.5

// notch depth of the block outline at the section seams
const NOTCH_WIDTH = 8.

const NAME_ICON_WIDTH = 14.
const NAME_ICON_TEXT_GAP = 4.

// vertical space reserved above a block for its instance name label
const LABEL_STRIP_HEIGHT = 20.

// margin around the instance area before sidebars are placed
const MARGIN = 60.

// DEFAULT_SCALE converts source-document canvas units to pixels. The
// value is empirical: it reproduces the reference IDE's rendering at
// 100% zoom and is not derived from anything in the documents.
const DEFAULT_SCALE = 0.16

// minimum pixel gap the automatic scale keeps between adjacent blocks
const AUTO_SCALE_GAP = 60.

const SIDEBAR_OUTER_MARGIN = 2.
const SIDEBAR_TEXT_GAP = 3.
const SIDEBAR_ROW_HEIGHT = 17.
const SIDEBAR_TOP_PAD = SIDEBAR_ROW_HEIGHT

// fixed clearance between a sidebar and the nearest routed turn column.
// Empirical, like DEFAULT_SCALE.
const SIDEBAR_CLEARANCE = 58.

// extra pixels added on top of the worst overshoot when the corrective
// instance shift runs
const OVERSHOOT_PADDING = 30.

const HEADER_HEIGHT = 25.

// vertical padding between the content bounds and the outer border
const BORDER_PAD_V = 20.

// Minimum inner network area between the two sidebars. The reference IDE
// never renders a smaller canvas; no authoritative constant survives, so
// these match the smallest network it shows without scrollbars.
const MIN_NETWORK_WIDTH = 200.
const MIN_NETWORK_HEIGHT = 120.
