package plugin

import (
	"fmt"

	"github.com/cwbudde/lfocool/dsp/buffer"
	"github.com/cwbudde/lfocool/dsp/param"
)

// Status is returned by Process.
type Status int

const (
	// StatusNormal asks the host to keep calling Process.
	StatusNormal Status = iota
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ProcessContext carries the host state for one block.
type ProcessContext struct {
	// SampleRate of the block in Hz. Zero keeps the last known rate.
	SampleRate float64

	// Changes are automation events for this block, sorted by Offset.
	// Offsets index samples within the block; events at or past the block
	// end are applied after the block.
	Changes []param.Change
}

// Plugin is the contract host protocol adapters drive.
type Plugin interface {
	Info() Info
	Registry() *param.Registry
	Initialize(sampleRate float64, maxBlockSize int) error
	Reset()
	Process(block buffer.Block, ctx *ProcessContext) Status
}
