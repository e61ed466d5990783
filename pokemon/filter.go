package pokemon

import set3 "github.com/TomTonic/Set3"

// Shiny filter masks.
const (
	FilterStar   uint8 = 1
	FilterSquare uint8 = 2
	FilterShiny  uint8 = FilterStar | FilterSquare
)

// Filter selects states. IV bounds are inclusive. A nil set and the Any value accept
// everything. Filters are pure predicates and safe for concurrent use.
type Filter struct {
	MinIVs       [6]uint8
	MaxIVs       [6]uint8
	Natures      *set3.Set3[uint8]
	HiddenPowers *set3.Set3[uint8]
	Slots        *set3.Set3[uint8]
	Ability      uint8
	Gender       uint8
	// Shiny is Any or a mask of FilterStar and FilterSquare.
	Shiny uint8
}

// NewFilter returns a filter that accepts every state.
func NewFilter() Filter {
	return Filter{
		MaxIVs:  [6]uint8{31, 31, 31, 31, 31, 31},
		Ability: Any,
		Gender:  Any,
		Shiny:   Any,
	}
}

// NewSet builds a set of small values for the Natures, HiddenPowers and Slots fields.
func NewSet(values ...uint8) *set3.Set3[uint8] {
	s := set3.EmptyWithCapacity[uint8](uint32(len(values)))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func contains(s *set3.Set3[uint8], v uint8) bool { return s == nil || s.Contains(v) }

// CompareIVs reports whether every IV lies within MinIVs and MaxIVs.
func (f *Filter) CompareIVs(ivs [6]uint8) bool {
	for i, iv := range ivs {
		if iv < f.MinIVs[i] || iv > f.MaxIVs[i] {
			return false
		}
	}
	return true
}

func (f *Filter) CompareNature(nature uint8) bool { return contains(f.Natures, nature) }

func (f *Filter) CompareHiddenPower(hp uint8) bool { return contains(f.HiddenPowers, hp) }

func (f *Filter) CompareSlot(slot uint8) bool { return contains(f.Slots, slot) }

func (f *Filter) CompareAbility(index uint8) bool { return f.Ability == Any || f.Ability == index }

func (f *Filter) CompareGender(gender uint8) bool { return f.Gender == Any || f.Gender == gender }

func (f *Filter) CompareShiny(shiny uint8) bool { return f.Shiny == Any || f.Shiny&shiny != 0 }

// CompareState checks every field except the encounter slot.
func (f *Filter) CompareState(s *State) bool {
	return f.CompareAbility(s.abilityIndex) &&
		f.CompareGender(s.gender) &&
		f.CompareNature(s.nature) &&
		f.CompareShiny(s.shiny) &&
		f.CompareIVs(s.ivs) &&
		f.CompareHiddenPower(s.hiddenPower)
}

// CompareWild checks the state and its encounter slot.
func (f *Filter) CompareWild(s *State, slot uint8) bool {
	return f.CompareSlot(slot) && f.CompareState(s)
}
