// Package preset stores parameter snapshots as JSON files and applies them
// to a running processor, optionally following edits to the file.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/lfocool/plugin"
)

// ErrIncompatible is returned for presets written by an incompatible
// plugin version.
var ErrIncompatible = errors.New("preset: incompatible version")

// Preset is a snapshot of the processor parameters in plain units.
type Preset struct {
	// Version of the plugin that wrote the preset. Empty means current.
	Version   string  `json:"version,omitempty"`
	Frequency float64 `json:"frequency"`
	GainModDB float64 `json:"gain_mod_db"`
}

// FromParams captures the current parameter values.
func FromParams(params *plugin.Params) Preset {
	return Preset{
		Version:   plugin.Version,
		Frequency: params.Frequency.PlainValue(),
		GainModDB: params.GainModDB(),
	}
}

// Apply writes the preset to params. Values outside the parameter ranges
// are clamped. Apply is safe while the processor is running.
func (p Preset) Apply(params *plugin.Params) {
	params.Frequency.SetPlainValue(p.Frequency)
	params.SetGainModDB(p.GainModDB)
}

// Check reports whether info can load the preset.
func (p Preset) Check(info plugin.Info) error {
	if p.Version == "" {
		return nil
	}
	ok, err := info.CompatibleWith(p.Version)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s cannot load %s", ErrIncompatible, info.Version, p.Version)
	}
	return nil
}

// Decode reads a preset from r and checks it against the current plugin.
func Decode(r io.Reader) (Preset, error) {
	var p Preset
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("preset: decode: %w", err)
	}
	if err := p.Check(plugin.DefaultInfo()); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Encode writes p to w as indented JSON.
func Encode(w io.Writer, p Preset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}
	return nil
}

// Load reads the preset stored at path.
func Load(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes p to path, replacing any existing file.
func Save(path string, p Preset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("preset: %w", cerr)
		}
	}()
	return Encode(f, p)
}
