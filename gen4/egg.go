package gen4

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// Daycare describes the parents of a gen 4 egg.
type Daycare struct {
	ParentIVs [2][6]uint8
	// Masuda is set when the parents come from games of different languages; the PID is
	// then rerolled up to four times until it is shiny.
	Masuda bool
	Info   *pokemon.PersonalInfo
}

// inheritOrder is the stat order the game picks inherited IVs from.
var inheritOrder = [6]int{pokemon.HP, pokemon.Atk, pokemon.Def, pokemon.Spe, pokemon.SpA, pokemon.SpD}

// EggGenerator produces DPPt and HGSS eggs. The held phase draws the PID from a Mersenne
// Twister; the pickup phase draws IVs and inheritance from the handheld LCRNG.
type EggGenerator struct {
	held    pokemon.Options
	pickup  pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
	daycare Daycare
	pick    drawer
}

func NewEggGenerator(held, pickup pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter, daycare Daycare) (*EggGenerator, error) {
	method := pokemon.MethodJ
	switch {
	case profile.Version.Has(pokemon.HGSS):
		method = pokemon.MethodK
	case !profile.Version.Has(pokemon.DPPt):
		return nil, fmt.Errorf("gen4 egg for %#x: %w", profile.Version, pokemon.ErrUnsupportedTemplate)
	}
	return &EggGenerator{
		held:    held,
		pickup:  pickup,
		profile: profile,
		filter:  filter,
		daycare: daycare,
		pick:    drawer{method: method, profile: profile, filter: filter},
	}, nil
}

// GenerateHeld returns one held egg per advance of the twister.
func (g *EggGenerator) GenerateHeld(seed uint32) []pokemon.HeldEgg {
	eggs := make([]pokemon.HeldEgg, 0, g.held.MaxAdvances+1)
	mt := rng.NewMT(seed)
	mt.Advance(g.held.Start())
	tsv := g.profile.TSV()
	for cnt := uint32(0); cnt <= g.held.MaxAdvances; cnt++ {
		pid := mt.Next()
		if g.daycare.Masuda {
			a := rng.NewARNG(pid)
			for i := 0; i < 4 && !pokemon.IsShiny(pid, tsv); i++ {
				pid = a.Next()
			}
		}
		eggs = append(eggs, pokemon.NewHeldEgg(g.held.InitialAdvances+cnt, pid))
	}
	return eggs
}

// pickupStep draws the IVs, three distinct inherited stats and their parents.
func (g *EggGenerator) pickupStep(e *rng.LCRNG) ([6]uint8, [6]uint8) {
	ivs := pokemon.IVsFromWords(e.NextUint16(), e.NextUint16())

	var stats [3]int
	var chosen [6]bool
	for i := range stats {
		j := g.pick.bounded(e, 6)
		for chosen[j] {
			j = g.pick.bounded(e, 6)
		}
		chosen[j] = true
		stats[i] = inheritOrder[j]
	}
	var inheritance [6]uint8
	for _, stat := range stats {
		parent := g.pick.bounded(e, 2)
		ivs[stat] = g.daycare.ParentIVs[parent][stat]
		inheritance[stat] = pokemon.InheritParentA + uint8(parent)
	}
	return ivs, inheritance
}

// Generate combines every held egg of seed with every pickup advance of seed2.
func (g *EggGenerator) Generate(seed, seed2 uint32) []pokemon.EggState {
	var states []pokemon.EggState
	held := g.GenerateHeld(seed)
	base := rng.NewPokeRNG(seed2)
	base.Advance(g.pickup.Start())
	tsv := g.profile.TSV()
	for cnt := uint32(0); cnt <= g.pickup.MaxAdvances; cnt++ {
		e := base
		ivs, inheritance := g.pickupStep(&e)
		for _, h := range held {
			egg := h.WithPickup(g.pickup.InitialAdvances+cnt, h.PID(), ivs, inheritance, 1, tsv, g.daycare.Info)
			if g.filter.CompareState(&egg.State) {
				states = append(states, egg)
			}
		}
		base.Next()
	}
	pokemon.SortEggs(states)
	return states
}
