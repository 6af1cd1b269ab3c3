package fbgraph

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings mirror the reference IDE's block size preferences. All label
// sizes are caps in characters; margins are pixels. Construct with
// DefaultSettings and treat as read-only during layout.
type Settings struct {
	MaxValueLabelSize            int `toml:"max_value_label_size"`
	MaxTypeLabelSize             int `toml:"max_type_label_size"`
	MinPinLabelSize              int `toml:"min_pin_label_size"`
	MaxPinLabelSize              int `toml:"max_pin_label_size"`
	MinInterfaceBarSize          int `toml:"min_interface_bar_size"`
	MaxInterfaceBarSize          int `toml:"max_interface_bar_size"`
	MaxHiddenConnectionLabelSize int `toml:"max_hidden_connection_label_size"`

	MarginTopBottom int `toml:"margin_top_bottom"`
	MarginLeftRight int `toml:"margin_left_right"`
}

// DefaultSettings returns the reference IDE defaults.
func DefaultSettings() *Settings {
	return &Settings{
		MaxValueLabelSize:            25,
		MaxTypeLabelSize:             15,
		MinPinLabelSize:              0,
		MaxPinLabelSize:              12,
		MinInterfaceBarSize:          0,
		MaxInterfaceBarSize:          40,
		MaxHiddenConnectionLabelSize: 15,
		MarginTopBottom:              0,
		MarginLeftRight:              0,
	}
}

// LoadSettings overlays a TOML file onto the defaults. A missing file is
// not an error; the defaults are returned unchanged.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("loading settings %q: %w", path, err)
	}
	return s, nil
}
