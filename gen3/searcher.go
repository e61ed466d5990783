package gen3

import (
	"context"
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/recovery"
	"github.com/TomTonic/seedfinder/rng"
	"github.com/TomTonic/seedfinder/search"
)

// rewindPoke steps x back n times on the handheld generator.
func rewindPoke(x, n uint32) uint32 {
	r := rng.NewPokeRNGR(x)
	r.Advance(n)
	return r.Seed()
}

// recovererFor returns the calibration matching the IV word spacing of method.
func recovererFor(method pokemon.Method) *recovery.Recoverer {
	if method == pokemon.Method4 || method == pokemon.MethodH4 {
		return recovery.PokeRNGSkip()
	}
	return recovery.PokeRNG()
}

// StaticSearcher finds the seeds of static encounters from an IV range. Results are
// seeds from which StaticGenerator with no advances reproduces the state.
type StaticSearcher struct {
	*search.Runner[pokemon.SearcherState[uint32]]
	gen    *StaticGenerator
	rec    *recovery.Recoverer
	filter *pokemon.Filter
}

func NewStaticSearcher(method pokemon.Method, profile *pokemon.Profile, filter *pokemon.Filter, config search.Config) (*StaticSearcher, error) {
	gen, err := NewStaticGenerator(pokemon.Options{}, method, profile, filter)
	if err != nil {
		return nil, err
	}
	return &StaticSearcher{
		Runner: search.NewRunner[pokemon.SearcherState[uint32]](config),
		gen:    gen,
		rec:    recovererFor(method),
		filter: filter,
	}, nil
}

// Search runs the IV grid [min, max]. Roamers are not searchable: their stored IVs keep
// only eight bits of the first IV word.
func (s *StaticSearcher) Search(ctx context.Context, min, max [6]uint8, tpl *pokemon.StaticTemplate) error {
	if tpl.Roamer {
		return fmt.Errorf("gen3 static search of roamer %d: %w", tpl.Specie, pokemon.ErrUnsupportedTemplate)
	}
	return s.RunIVs(ctx, min, max, func(ivs [6]uint8, dst []pokemon.SearcherState[uint32]) []pokemon.SearcherState[uint32] {
		return s.searchIVs(ivs, tpl, dst)
	})
}

func (s *StaticSearcher) searchIVs(ivs [6]uint8, tpl *pokemon.StaticTemplate, dst []pokemon.SearcherState[uint32]) []pokemon.SearcherState[uint32] {
	pidWords := uint32(2)
	if s.gen.method == pokemon.Method2 {
		pidWords = 3
	}
	pivots := s.rec.RecoverIVs(ivs, make([]uint32, 0, s.rec.MaxCandidates()))
	for _, pivot := range pivots {
		origin := rewindPoke(pivot, pidWords)
		e := rng.NewPokeRNG(origin)
		st, ivSeed := s.gen.step(&e, tpl)
		if ivSeed == pivot && s.filter.CompareState(&st) {
			dst = append(dst, pokemon.NewSearcherState(origin, st))
		}
	}
	return dst
}

// WildSearcher finds the seeds of wild encounters from an IV range.
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
		rec:    recovererFor(method),
		filter: filter,
	}, nil
}

// stopPredicate reports PID pairs the encounter loop would have accepted whatever the
// lead rolls were: same nature, and for Cute Charm the forced gender for every species
// of the area.
func (s *WildSearcher) stopPredicate(area *pokemon.EncounterArea) func(accepted, pid uint32) bool {
	if !s.gen.lead.cuteCharm {
		return func(accepted, pid uint32) bool { return accepted%25 == pid%25 }
	}
	target := cuteCharmGender(s.gen.opts.Lead)
	var ratios []uint8
	for i := range area.Slots {
		if info := area.Slots[i].Info; !info.FixedGender() {
			ratios = append(ratios, info.Gender)
		}
	}
	return func(accepted, pid uint32) bool {
		if accepted%25 != pid%25 {
			return false
		}
		for _, r := range ratios {
			if pokemon.GenderFromPID(pid, r) != target {
				return false
			}
		}
		return true
	}
}

// Search runs the IV grid [min, max] over area.
func (s *WildSearcher) Search(ctx context.Context, min, max [6]uint8, area *pokemon.EncounterArea) error {
	stop := s.stopPredicate(area)
	gap := uint32(0)
	if s.gen.method == pokemon.MethodH2 {
		gap = 1
	}
	return s.RunIVs(ctx, min, max, func(ivs [6]uint8, dst []pokemon.WildSearcherState[uint32]) []pokemon.WildSearcherState[uint32] {
		pivots := s.rec.RecoverIVs(ivs, make([]uint32, 0, s.rec.MaxCandidates()))
		for _, pivot := range pivots {
			for _, origin := range recovery.PIDLoopWindow(rng.NewPokeRNGR(pivot), gap, wildPrefix, stop) {
				e := rng.NewPokeRNG(origin)
				r, ok := s.gen.step(&e, area)
				if !ok || r.ivSeed != pivot || !s.filter.CompareWild(&r.state, r.slot) {
					continue
				}
				dst = append(dst, pokemon.NewWildSearcherState(origin, r.state, area.Slot(r.slot).Specie, r.slot, 0))
			}
		}
		return dst
	})
}

// GameCubeSearcher finds the seeds of Colosseum and XD gifts and shadow Pokémon.
type GameCubeSearcher struct {
	*search.Runner[pokemon.SearcherState[uint32]]
	gen    *GameCubeGenerator
	rec    *recovery.Recoverer
	filter *pokemon.Filter
}

func NewGameCubeSearcher(profile *pokemon.Profile, filter *pokemon.Filter, config search.Config) (*GameCubeSearcher, error) {
	gen, err := NewGameCubeGenerator(pokemon.Options{}, profile, filter)
	if err != nil {
		return nil, err
	}
	return &GameCubeSearcher{
		Runner: search.NewRunner[pokemon.SearcherState[uint32]](config),
		gen:    gen,
		rec:    recovery.XDRNG(),
		filter: filter,
	}, nil
}

// Search runs the IV grid for a gift or static encounter. The IVs are the first draws,
// so the recovered seed is the origin.
func (s *GameCubeSearcher) Search(ctx context.Context, min, max [6]uint8, tpl *pokemon.StaticTemplate) error {
	return s.RunIVs(ctx, min, max, func(ivs [6]uint8, dst []pokemon.SearcherState[uint32]) []pokemon.SearcherState[uint32] {
		for _, pivot := range s.rec.RecoverIVs(ivs, make([]uint32, 0, s.rec.MaxCandidates())) {
			e := rng.NewXDRNG(pivot)
			st, _ := s.gen.draw(&e, tpl, tpl.Shiny == pokemon.ShinyNever)
			if s.filter.CompareState(&st) {
				dst = append(dst, pokemon.NewSearcherState(pivot, st))
			}
		}
		return dst
	})
}

// SearchShadow runs the IV grid for a shadow Pokémon and inverts its lock chain.
func (s *GameCubeSearcher) SearchShadow(ctx context.Context, min, max [6]uint8, tpl *pokemon.ShadowTemplate) error {
	lock := NewShadowLock(tpl, s.gen.profile.TSV())
	return s.RunIVs(ctx, min, max, func(ivs [6]uint8, dst []pokemon.SearcherState[uint32]) []pokemon.SearcherState[uint32] {
		for _, pivot := range s.rec.RecoverIVs(ivs, make([]uint32, 0, s.rec.MaxCandidates())) {
			for _, origin := range lock.Origins(pivot) {
				e := rng.NewXDRNG(origin)
				st, ivSeed := s.gen.shadowStep(&e, lock, tpl)
				if ivSeed == pivot && s.filter.CompareState(&st) {
					dst = append(dst, pokemon.NewSearcherState(origin, st))
				}
			}
		}
		return dst
	})
}
