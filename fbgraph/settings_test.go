package fbgraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 15, s.MaxTypeLabelSize)
	assert.Equal(t, 12, s.MaxPinLabelSize)
	assert.Equal(t, 40, s.MaxInterfaceBarSize)
	assert.Equal(t, 0, s.MarginTopBottom)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	err := os.WriteFile(path, []byte("max_pin_label_size = 6\nmargin_left_right = 4\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 6, s.MaxPinLabelSize)
	assert.Equal(t, 4, s.MarginLeftRight)
	// untouched keys keep their defaults
	assert.Equal(t, 15, s.MaxTypeLabelSize)
}
