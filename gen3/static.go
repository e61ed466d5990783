// Package gen3 generates and searches Ruby/Sapphire/Emerald, FireRed/LeafGreen and the
// GameCube titles Colosseum and XD.
package gen3

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// newState derives a generation 3 state: nature, ability and gender all come from the PID.
func newState(pid uint32, ivs [6]uint8, level uint8, tsv uint16, info *pokemon.PersonalInfo) pokemon.State {
	return pokemon.NewState(pid, ivs, uint8(pid&1), pokemon.GenderFromPID(pid, info.Gender), level,
		uint8(pid%25), pokemon.Shininess(pid, tsv, 8), info)
}

// roamerIVs applies the roamer bug: only the low byte of the first IV word survives.
func roamerIVs(iv1 uint16) [6]uint8 {
	return [6]uint8{uint8(iv1 & 31), uint8((iv1 >> 5) & 7)}
}

// StaticGenerator produces static encounters and gifts with Method 1, 2 or 4.
type StaticGenerator struct {
	opts    pokemon.Options
	method  pokemon.Method
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

// NewStaticGenerator validates the method. Leads have no effect on static encounters.
func NewStaticGenerator(opts pokemon.Options, method pokemon.Method, profile *pokemon.Profile, filter *pokemon.Filter) (*StaticGenerator, error) {
	switch method {
	case pokemon.Method1, pokemon.Method2, pokemon.Method4:
	default:
		return nil, fmt.Errorf("gen3 static %v: %w", method, pokemon.ErrUnsupportedMethod)
	}
	return &StaticGenerator{opts: opts, method: method, profile: profile, filter: filter}, nil
}

// step draws one encounter from e and returns the state together with the engine state
// right before the first IV word.
func (g *StaticGenerator) step(e *rng.LCRNG, tpl *pokemon.StaticTemplate) (pokemon.State, uint32) {
	low := uint32(e.NextUint16())
	high := uint32(e.NextUint16())
	if g.method == pokemon.Method2 {
		e.Next()
	}
	ivSeed := e.Seed()
	iv1 := e.NextUint16()
	if g.method == pokemon.Method4 {
		e.Next()
	}
	iv2 := e.NextUint16()

	ivs := pokemon.IVsFromWords(iv1, iv2)
	if tpl.Roamer {
		ivs = roamerIVs(iv1)
	}
	return newState(high<<16|low, ivs, tpl.Level, g.profile.TSV(), tpl.Info), ivSeed
}

// Generate returns the matching states for advances InitialAdvances..InitialAdvances+MaxAdvances.
func (g *StaticGenerator) Generate(seed uint32, tpl *pokemon.StaticTemplate) []pokemon.GeneratorState {
	var states []pokemon.GeneratorState
	base := rng.NewPokeRNG(seed)
	base.Advance(g.opts.Start())
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		e := base
		s, _ := g.step(&e, tpl)
		if g.filter.CompareState(&s) {
			states = append(states, pokemon.NewGeneratorState(g.opts.InitialAdvances+cnt, s))
		}
		base.Next()
	}
	return states
}
