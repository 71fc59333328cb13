package species

import "fmt"

type Group int

const (
	Reactant Group = iota
	Product
)

func (g Group) String() string {
	switch g {
	case Reactant:
		return "reactant"
	case Product:
		return "product"
	default:
		return "unknown"
	}
}

type entry struct {
	key   string
	group Group
	sp    *Species
}

// Set owns every species of a mixture. Records are tagged with their group
// and kept in insertion order; all views hand out the owned pointers, so
// mutations through any view are visible through every other.
type Set struct {
	entries []entry
	index   map[string]int
}

func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add registers sp under key. Keys are unique across both groups.
func (s *Set) Add(key string, g Group, sp *Species) error {
	if sp == nil {
		return fmt.Errorf("%w: nil record for %q", ErrInvalidSpecies, key)
	}
	if _, ok := s.index[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, entry{key: key, group: g, sp: sp})
	return nil
}

// Get returns the record stored under key, or nil.
func (s *Set) Get(key string) *Species {
	i, ok := s.index[key]
	if !ok {
		return nil
	}
	return s.entries[i].sp
}

// GroupOf reports the group of key.
func (s *Set) GroupOf(key string) (Group, bool) {
	i, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return s.entries[i].group, true
}

func (s *Set) Len() int { return len(s.entries) }

func (s *Set) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.key
	}
	return keys
}

func (s *Set) All() []*Species {
	out := make([]*Species, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.sp
	}
	return out
}

func (s *Set) Group(g Group) []*Species {
	out := make([]*Species, 0, len(s.entries))
	for _, e := range s.entries {
		if e.group == g {
			out = append(out, e.sp)
		}
	}
	return out
}

// MolSum is the total stoichiometric mol count of a group.
func (s *Set) MolSum(g Group) float64 {
	sum := 0.0
	for _, sp := range s.Group(g) {
		sum += sp.Mol
	}
	return sum
}

// Each calls fn for every record in insertion order.
func (s *Set) Each(fn func(key string, g Group, sp *Species)) {
	for _, e := range s.entries {
		fn(e.key, e.group, e.sp)
	}
}
