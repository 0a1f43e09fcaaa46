package param

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateID is returned when two parameters share an ID.
	ErrDuplicateID = errors.New("param: duplicate parameter ID")

	// ErrUnknownID is returned for IDs that are not registered.
	ErrUnknownID = errors.New("param: unknown parameter ID")
)

// Change is a host automation event: set the parameter identified by
// ParamID to Normalized at sample Offset within the current block.
type Change struct {
	ParamID    string
	Offset     int
	Normalized float64
}

// SortChanges orders changes by sample offset, keeping the host order of
// changes that share an offset.
func SortChanges(changes []Change) {
	slices.SortStableFunc(changes, func(a, b Change) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
}

// Registry holds parameters in declaration order.
type Registry struct {
	params []*FloatParam
	byID   map[string]*FloatParam
}

// NewRegistry registers params in the given order.
func NewRegistry(params ...*FloatParam) (*Registry, error) {
	r := &Registry{byID: make(map[string]*FloatParam, len(params))}
	for _, p := range params {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a parameter after validating its range and ID.
func (r *Registry) Add(p *FloatParam) error {
	if err := p.Range().Validate(); err != nil {
		return fmt.Errorf("%s: %w", p.ID(), err)
	}
	if _, ok := r.byID[p.ID()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID())
	}
	r.params = append(r.params, p)
	r.byID[p.ID()] = p
	return nil
}

// Len returns the number of parameters.
func (r *Registry) Len() int { return len(r.params) }

// At returns the parameter at declaration index i.
func (r *Registry) At(i int) *FloatParam { return r.params[i] }

// Get returns the parameter with the given ID, or nil.
func (r *Registry) Get(id string) *FloatParam { return r.byID[id] }

// All returns the parameters in declaration order. The slice must not be modified.
func (r *Registry) All() []*FloatParam { return r.params }

// Apply sets the parameter named by c. It reports false for unknown IDs.
func (r *Registry) Apply(c Change) bool {
	p := r.byID[c.ParamID]
	if p == nil {
		return false
	}
	p.SetNormalizedValue(c.Normalized)
	return true
}

// SetNormalized sets a parameter by ID.
func (r *Registry) SetNormalized(id string, normalized float64) error {
	if !r.Apply(Change{ParamID: id, Normalized: normalized}) {
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	return nil
}

// SetSampleRate forwards the processing rate to every smoother.
func (r *Registry) SetSampleRate(sampleRate float64) {
	for _, p := range r.params {
		p.SetSampleRate(sampleRate)
	}
}

// ResetSmoothers snaps every smoother to its parameter's current value.
func (r *Registry) ResetSmoothers() {
	for _, p := range r.params {
		p.ResetSmoother()
	}
}
