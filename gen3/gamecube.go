package gen3

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// GameCubeGenerator produces Colosseum and XD gifts, statics and shadow Pokémon on the
// XD generator.
type GameCubeGenerator struct {
	opts    pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

func NewGameCubeGenerator(opts pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter) (*GameCubeGenerator, error) {
	if !profile.Version.Has(pokemon.GC) {
		return nil, fmt.Errorf("gamecube generator for %#x: %w", profile.Version, pokemon.ErrUnsupportedTemplate)
	}
	return &GameCubeGenerator{opts: opts, profile: profile, filter: filter}, nil
}

// draw reads IVs, ability and PID. With shinySkip the PID is redrawn while it is shiny
// for the trainer.
func (g *GameCubeGenerator) draw(e *rng.LCRNG, tpl *pokemon.StaticTemplate, shinySkip bool) (pokemon.State, uint32) {
	ivSeed := e.Seed()
	ivs := pokemon.IVsFromWords(e.NextUint16(), e.NextUint16())
	ability := uint8(e.NextUint16() & 1)
	if tpl.Info.Abilities[0] == tpl.Info.Abilities[1] {
		ability = 0
	}
	tsv := g.profile.TSV()
	var pid uint32
	for {
		high := uint32(e.NextUint16())
		low := uint32(e.NextUint16())
		pid = high<<16 | low
		if !shinySkip || !pokemon.IsShiny(pid, tsv) {
			break
		}
	}
	s := pokemon.NewState(pid, ivs, ability, pokemon.GenderFromPID(pid, tpl.Info.Gender), tpl.Level,
		uint8(pid%25), pokemon.Shininess(pid, tsv, 8), tpl.Info)
	return s, ivSeed
}

func (g *GameCubeGenerator) generate(seed uint32, step func(e *rng.LCRNG) pokemon.State) []pokemon.GeneratorState {
	var states []pokemon.GeneratorState
	base := rng.NewXDRNG(seed)
	base.Advance(g.opts.Start())
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		e := base
		s := step(&e)
		if g.filter.CompareState(&s) {
			states = append(states, pokemon.NewGeneratorState(g.opts.InitialAdvances+cnt, s))
		}
		base.Next()
	}
	return states
}

// Generate produces a gift or static encounter. ShinyNever templates redraw shiny PIDs.
func (g *GameCubeGenerator) Generate(seed uint32, tpl *pokemon.StaticTemplate) []pokemon.GeneratorState {
	return g.generate(seed, func(e *rng.LCRNG) pokemon.State {
		s, _ := g.draw(e, tpl, tpl.Shiny == pokemon.ShinyNever)
		return s
	})
}

// GenerateShadow produces a shadow Pokémon after its locked team.
func (g *GameCubeGenerator) GenerateShadow(seed uint32, tpl *pokemon.ShadowTemplate) []pokemon.GeneratorState {
	lock := NewShadowLock(tpl, g.profile.TSV())
	return g.generate(seed, func(e *rng.LCRNG) pokemon.State {
		s, _ := g.shadowStep(e, lock, tpl)
		return s
	})
}

func (g *GameCubeGenerator) shadowStep(e *rng.LCRNG, lock *ShadowLock, tpl *pokemon.ShadowTemplate) (pokemon.State, uint32) {
	lock.Forward(e)
	return g.draw(e, &tpl.StaticTemplate, lock.v.shadowShiny || tpl.Shiny == pokemon.ShinyNever)
}
