package plugin

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the plugin version reported to hosts and stored in presets.
const Version = "0.1.0"

// AudioIOLayout describes a supported channel configuration.
type AudioIOLayout struct {
	Name           string
	InputChannels  int
	OutputChannels int
}

// Info is the static plugin metadata host adapters register.
type Info struct {
	Name    string
	Vendor  string
	URL     string
	Email   string
	Version *semver.Version

	ClapID          string
	ClapDescription string
	ClapFeatures    []string

	VST3ClassID       [16]byte
	VST3Subcategories []string

	// Layouts lists supported layouts; the first one is the default.
	Layouts []AudioIOLayout

	SampleAccurateAutomation bool
	MIDIInput                bool
	MIDIOutput               bool
}

// DefaultInfo returns the metadata of LFOCool.
func DefaultInfo() Info {
	var classID [16]byte
	copy(classID[:], "StarburstLfoCool")

	return Info{
		Name:    "LFOCool",
		Vendor:  "Starburst Audio",
		URL:     "https://github.com/cwbudde/lfocool",
		Email:   "sylveon_ari@hotmail.com",
		Version: semver.MustParse(Version),

		ClapID:          "com.starburstaudio.lfo-cool",
		ClapDescription: "Plug-in for LFO modulation",
		ClapFeatures:    []string{"audio-effect", "stereo"},

		VST3ClassID:       classID,
		VST3Subcategories: []string{"Fx", "Dynamics"},

		Layouts: []AudioIOLayout{
			{Name: "Stereo", InputChannels: 2, OutputChannels: 2},
		},

		SampleAccurateAutomation: true,
	}
}

// CompatibleWith reports whether data written by a plugin of the given
// version can be loaded by this one. Versions sharing the major number are
// compatible; before 1.0.0 the minor number must match as well.
func (i Info) CompatibleWith(version string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("lfocool: invalid version %q: %w", version, err)
	}

	constraint, err := semver.NewConstraint("^" + i.Version.String())
	if err != nil {
		return false, fmt.Errorf("lfocool: %w", err)
	}
	// Older data of the same line loads too; ^ only admits newer versions.
	if v.LessThan(i.Version) {
		return v.Major() == i.Version.Major() && (v.Major() > 0 || v.Minor() == i.Version.Minor()), nil
	}
	return constraint.Check(v), nil
}

// String returns "Name Version (Vendor)".
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s)", i.Name, i.Version, i.Vendor)
}
