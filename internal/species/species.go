// Package species holds the per-species constants and mutable state used by
// the ignition model, and the container that owns them.
package species

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSpecies = errors.New("species: invalid species")
	ErrDuplicateKey   = errors.New("species: duplicate key")
)

// Species is one chemical species taking part in (or spectating) the global
// reaction. Mol is fixed at construction; the remaining state is written by
// the simulator that owns the record.
type Species struct {
	Name string
	Mol  float64

	MolFrac float64
	MolConc float64
	// W is the net reaction rate: negative when consumed, positive when produced.
	W float64

	EnthalpyF float64
	Cp        float64
}

// New returns a species record with zeroed simulation state.
func New(name string, mol, enthalpyF, cp float64) (*Species, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidSpecies)
	}
	if mol <= 0 {
		return nil, fmt.Errorf("%w: %s has non-positive mol %v", ErrInvalidSpecies, name, mol)
	}
	if cp <= 0 {
		return nil, fmt.Errorf("%w: %s has non-positive cp %v", ErrInvalidSpecies, name, cp)
	}
	return &Species{Name: name, Mol: mol, EnthalpyF: enthalpyF, Cp: cp}, nil
}

func (s *Species) String() string {
	return fmt.Sprintf("%s - %v moles.", s.Name, s.Mol)
}
