package pokemon

import (
	"cmp"
	"slices"
)

// GeneratorState is a state together with the advance count that produced it.
type GeneratorState struct {
	State
	advances uint32
}

// NewGeneratorState tags s with the advance count that produced it.
func NewGeneratorState(advances uint32, s State) GeneratorState {
	return GeneratorState{State: s, advances: advances}
}

// Advances is the number of steps from the starting seed.
func (g *GeneratorState) Advances() uint32 { return g.advances }

// WildGeneratorState adds the encounter slot outcome.
type WildGeneratorState struct {
	GeneratorState
	specie        uint16
	item          uint16
	form          uint8
	encounterSlot uint8
}

// NewWildGeneratorState tags s with its advance count and encounter slot outcome.
func NewWildGeneratorState(advances uint32, s State, specie uint16, form, slot uint8, item uint16) WildGeneratorState {
	return WildGeneratorState{
		GeneratorState: NewGeneratorState(advances, s),
		specie:         specie,
		form:           form,
		encounterSlot:  slot,
		item:           item,
	}
}

// Specie and Form identify the Pokémon of the chosen slot.
func (w *WildGeneratorState) Specie() uint16 { return w.specie }

func (w *WildGeneratorState) Form() uint8 { return w.form }

// EncounterSlot is the index of the chosen slot in the area.
func (w *WildGeneratorState) EncounterSlot() uint8 { return w.encounterSlot }

// Item is the held item ID, 0 for none.
func (w *WildGeneratorState) Item() uint16 { return w.item }

// Inheritance values of EggState: which parent passed an IV down.
const (
	InheritNone uint8 = iota
	InheritParentA
	InheritParentB
)

// HeldEgg is the first phase of an egg: the PID decided when the egg is received. The
// second phase, WithPickup, fills in the IVs drawn when it is picked up or hatched.
type HeldEgg struct {
	advances uint32
	pid      uint32
}

// NewHeldEgg records the PID of an egg received after advances steps.
func NewHeldEgg(advances, pid uint32) HeldEgg { return HeldEgg{advances: advances, pid: pid} }

// Advances is the step at which the egg was received.
func (h HeldEgg) Advances() uint32 { return h.advances }

// PID is the PID decided when the egg was received.
func (h HeldEgg) PID() uint32 { return h.pid }

// EggState is a fully determined egg.
type EggState struct {
	GeneratorState
	pickupAdvances uint32
	inheritance    [6]uint8
}

// WithPickup combines the held phase with the pickup phase. pid is the final PID; it
// differs from the held PID only for games that draw one PID half at pickup.
func (h HeldEgg) WithPickup(pickupAdvances, pid uint32, ivs, inheritance [6]uint8, level uint8, tsv uint16, info *PersonalInfo) EggState {
	s := NewState(pid, ivs, uint8(pid&1), GenderFromPID(pid, info.Gender), level, uint8(pid%25),
		Shininess(pid, tsv, 8), info)
	return EggState{
		GeneratorState: NewGeneratorState(h.advances, s),
		pickupAdvances: pickupAdvances,
		inheritance:    inheritance,
	}
}

// PickupAdvances is the step at which the egg was picked up.
func (e *EggState) PickupAdvances() uint32 { return e.pickupAdvances }

// Inheritance holds one InheritNone, InheritParentA or InheritParentB per stat.
func (e *EggState) Inheritance() [6]uint8 { return e.inheritance }

// Seed is the seed width of a searcher result.
type Seed interface {
	~uint32 | ~uint64
}

// SearcherState is a state together with the seed a searcher recovered for it.
type SearcherState[S Seed] struct {
	State
	seed S
}

// NewSearcherState tags s with the seed that produces it.
func NewSearcherState[S Seed](seed S, s State) SearcherState[S] {
	return SearcherState[S]{State: s, seed: seed}
}

// Seed is the recovered starting seed.
func (s *SearcherState[S]) Seed() S { return s.seed }

// WildSearcherState adds the encounter slot outcome.
type WildSearcherState[S Seed] struct {
	SearcherState[S]
	specie        uint16
	item          uint16
	encounterSlot uint8
}

// NewWildSearcherState tags s with its seed and encounter slot outcome.
func NewWildSearcherState[S Seed](seed S, s State, specie uint16, slot uint8, item uint16) WildSearcherState[S] {
	return WildSearcherState[S]{SearcherState: NewSearcherState(seed, s), specie: specie, encounterSlot: slot, item: item}
}

// Specie is the Pokémon of the chosen slot.
func (w *WildSearcherState[S]) Specie() uint16 { return w.specie }

// EncounterSlot is the index of the chosen slot in the area.
func (w *WildSearcherState[S]) EncounterSlot() uint8 { return w.encounterSlot }

// Item is the held item ID, 0 for none.
func (w *WildSearcherState[S]) Item() uint16 { return w.item }

// advanced is implemented by every generator state.
type advanced interface {
	Advances() uint32
}

// SortByAdvances orders generator results by advance count, keeping the emission order
// of equal counts.
func SortByAdvances[T any, P interface {
	*T
	advanced
}](states []T) {
	slices.SortStableFunc(states, func(a, b T) int {
		return cmp.Compare(P(&a).Advances(), P(&b).Advances())
	})
}

// SortEggs orders eggs by held advances, then pickup advances.
func SortEggs(states []EggState) {
	slices.SortStableFunc(states, func(a, b EggState) int {
		if c := cmp.Compare(a.advances, b.advances); c != 0 {
			return c
		}
		return cmp.Compare(a.pickupAdvances, b.pickupAdvances)
	})
}

// SortSearcherStates orders searcher results by seed, then PID.
func SortSearcherStates[S Seed](states []SearcherState[S]) {
	slices.SortStableFunc(states, func(a, b SearcherState[S]) int {
		if c := cmp.Compare(a.seed, b.seed); c != 0 {
			return c
		}
		return cmp.Compare(a.pid, b.pid)
	})
}

// SortWildSearcherStates orders wild searcher results by seed, then PID.
func SortWildSearcherStates[S Seed](states []WildSearcherState[S]) {
	slices.SortStableFunc(states, func(a, b WildSearcherState[S]) int {
		if c := cmp.Compare(a.seed, b.seed); c != 0 {
			return c
		}
		return cmp.Compare(a.pid, b.pid)
	})
}
