package gen3

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// Daycare describes the parents of an Emerald egg.
type Daycare struct {
	ParentIVs [2][6]uint8
	// Compatibility is the daycare man's chance in percent (20, 50 or 70).
	Compatibility uint8
	Info          *pokemon.PersonalInfo
}

// inheritOrder is the stat order the game picks inherited IVs from.
var inheritOrder = [6]int{pokemon.HP, pokemon.Atk, pokemon.Def, pokemon.Spe, pokemon.SpA, pokemon.SpD}

// EggGenerator produces Emerald eggs. The held phase runs on the seed the game uses
// when the egg is created and decides the low PID half; the pickup phase runs on a
// second seed and decides the high PID half and the IVs.
type EggGenerator struct {
	held    pokemon.Options
	pickup  pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
	daycare Daycare
}

func NewEggGenerator(held, pickup pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter, daycare Daycare) (*EggGenerator, error) {
	if !profile.Version.Has(pokemon.Emerald) {
		return nil, fmt.Errorf("gen3 egg for %#x: %w", profile.Version, pokemon.ErrUnsupportedTemplate)
	}
	return &EggGenerator{held: held, pickup: pickup, profile: profile, filter: filter, daycare: daycare}, nil
}

// GenerateHeld returns the held eggs: advances where the compatibility roll succeeds.
func (g *EggGenerator) GenerateHeld(seed uint32) []pokemon.HeldEgg {
	var eggs []pokemon.HeldEgg
	base := rng.NewPokeRNG(seed)
	base.Advance(g.held.Start())
	for cnt := uint32(0); cnt <= g.held.MaxAdvances; cnt++ {
		e := base
		if uint32(e.NextUint16())*100/0xffff < uint32(g.daycare.Compatibility) {
			low := uint32(e.NextUint16()%0xfffe) + 1
			eggs = append(eggs, pokemon.NewHeldEgg(g.held.InitialAdvances+cnt, low))
		}
		base.Next()
	}
	return eggs
}

// pickupStep draws the high PID half, IVs and inheritance.
func (g *EggGenerator) pickupStep(e *rng.LCRNG) (uint16, [6]uint8, [6]uint8) {
	high := e.NextUint16()
	e.Next()
	ivs := pokemon.IVsFromWords(e.NextUint16(), e.NextUint16())

	// After each pick the game drops the entry at position i, not the one picked, so a
	// stat can be picked twice and the later parent wins.
	available := [6]int{0, 1, 2, 3, 4, 5}
	var stats [3]int
	for i := range stats {
		stats[i] = inheritOrder[available[int(e.NextUint16())%(6-i)]]
		copy(available[i:], available[i+1:])
	}
	var parents [3]uint16
	for i := range parents {
		parents[i] = e.NextUint16() & 1
	}
	var inheritance [6]uint8
	for i, stat := range stats {
		ivs[stat] = g.daycare.ParentIVs[parents[i]][stat]
		inheritance[stat] = pokemon.InheritParentA + uint8(parents[i])
	}
	return high, ivs, inheritance
}

// Generate combines every held egg of seed with every pickup advance of seed2.
func (g *EggGenerator) Generate(seed, seed2 uint32) []pokemon.EggState {
	var states []pokemon.EggState
	held := g.GenerateHeld(seed)
	if len(held) == 0 {
		return nil
	}
	base := rng.NewPokeRNG(seed2)
	base.Advance(g.pickup.Start())
	tsv := g.profile.TSV()
	for cnt := uint32(0); cnt <= g.pickup.MaxAdvances; cnt++ {
		e := base
		high, ivs, inheritance := g.pickupStep(&e)
		for _, h := range held {
			pid := uint32(high)<<16 | h.PID()
			egg := h.WithPickup(g.pickup.InitialAdvances+cnt, pid, ivs, inheritance, 5, tsv, g.daycare.Info)
			if g.filter.CompareState(&egg.State) {
				states = append(states, egg)
			}
		}
		base.Next()
	}
	pokemon.SortEggs(states)
	return states
}
