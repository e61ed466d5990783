package gen4

import (
	"context"

	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/recovery"
	"github.com/TomTonic/seedfinder/rng"
	"github.com/TomTonic/seedfinder/search"
)

// chainedWords is the number of draws of a Poké Radar shiny PID.
const chainedWords = 15

func rewind(x, n uint32) uint32 {
	r := rng.NewPokeRNGR(x)
	r.Advance(n)
	return r.Seed()
}

func sameNature(accepted, pid uint32) bool { return accepted%25 == pid%25 }

// origins lists the states a Method J or K generation could have started from when its
// IVs are drawn right after pivot. Cute Charm may skip the PID loop entirely, so the
// prefix right before pivot is added too.
func (d *drawer) origins(pivot, prefix uint32) []uint32 {
	out := recovery.PIDLoopWindow(rng.NewPokeRNGR(pivot), 0, prefix, sameNature)
	if !d.lead.cuteCharm {
		return out
	}
	seen := set3.EmptyWithCapacity[uint32](uint32(len(out)) + prefix)
	for _, s := range out {
		seen.Add(s)
	}
	back := rng.NewPokeRNGR(pivot)
	for range prefix {
		if s := back.Next(); !seen.Contains(s) {
			seen.Add(s)
			out = append(out, s)
		}
	}
	return out
}

// StaticSearcher finds the seeds of static encounters from an IV range. Results are
// seeds from which StaticGenerator with no advances reproduces the state.
type StaticSearcher struct {
	*search.Runner[pokemon.SearcherState[uint32]]
	gen    *StaticGenerator
	rec    *recovery.Recoverer
	filter *pokemon.Filter
}

func NewStaticSearcher(method pokemon.Method, lead pokemon.Lead, synchNature uint8, profile *pokemon.Profile, filter *pokemon.Filter, config search.Config) (*StaticSearcher, error) {
	gen, err := NewStaticGenerator(pokemon.Options{Lead: lead, SynchNature: synchNature}, method, profile, filter)
	if err != nil {
		return nil, err
	}
	return &StaticSearcher{
		Runner: search.NewRunner[pokemon.SearcherState[uint32]](config),
		gen:    gen,
		rec:    recovery.PokeRNG(),
		filter: filter,
	}, nil
}

// candidates lists the origins to replay for pivot.
func (s *StaticSearcher) candidates(pivot uint32) []uint32 {
	switch s.gen.method {
	case pokemon.Method1:
		return []uint32{rewind(pivot, 2)}
	case pokemon.PokeRadarShiny:
		return []uint32{rewind(pivot, chainedWords)}
	}
	return s.gen.origins(pivot, 2)
}

// Search runs the IV grid [min, max].
func (s *StaticSearcher) Search(ctx context.Context, min, max [6]uint8, tpl *pokemon.StaticTemplate) error {
	return s.RunIVs(ctx, min, max, func(ivs [6]uint8, dst []pokemon.SearcherState[uint32]) []pokemon.SearcherState[uint32] {
		for _, pivot := range s.rec.RecoverIVs(ivs, make([]uint32, 0, s.rec.MaxCandidates())) {
			for _, origin := range s.candidates(pivot) {
				e := rng.NewPokeRNG(origin)
				st, ivSeed := s.gen.step(&e, tpl)
				if ivSeed == pivot && s.filter.CompareState(&st) {
					dst = append(dst, pokemon.NewSearcherState(origin, st))
				}
			}
		}
		return dst
	})
}

// WildSearcher finds the seeds of Method J and K wild encounters from an IV range.
type WildSearcher struct {
	*search.Runner[pokemon.WildSearcherState[uint32]]
	gen    *WildGenerator
	rec    *recovery.Recoverer
	filter *pokemon.Filter
}

func NewWildSearcher(method pokemon.Method, lead pokemon.Lead, synchNature uint8, profile *pokemon.Profile, filter *pokemon.Filter, config search.Config) (*WildSearcher, error) {
	gen, err := NewWildGenerator(pokemon.Options{Lead: lead, SynchNature: synchNature}, method, profile, filter)
	if err != nil {
		return nil, err
	}
	return &WildSearcher{
		Runner: search.NewRunner[pokemon.WildSearcherState[uint32]](config),
		gen:    gen,
		rec:    recovery.PokeRNG(),
		filter: filter,
	}, nil
}

// Search runs the IV grid [min, max] over area.
func (s *WildSearcher) Search(ctx context.Context, min, max [6]uint8, area *pokemon.EncounterArea) error {
	return s.RunIVs(ctx, min, max, func(ivs [6]uint8, dst []pokemon.WildSearcherState[uint32]) []pokemon.WildSearcherState[uint32] {
		for _, pivot := range s.rec.RecoverIVs(ivs, make([]uint32, 0, s.rec.MaxCandidates())) {
			for _, origin := range s.gen.origins(pivot, wildPrefix) {
				e := rng.NewPokeRNG(origin)
				r, ok := s.gen.step(&e, area)
				if !ok || r.ivSeed != pivot || !s.filter.CompareWild(&r.state, r.slot) {
					continue
				}
				dst = append(dst, pokemon.NewWildSearcherState(origin, r.state, area.Slot(r.slot).Specie, r.slot, r.item))
			}
		}
		return dst
	})
}
