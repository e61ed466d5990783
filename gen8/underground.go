package gen8

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// UndergroundSlot is one species that can appear in a Grand Underground room, with its
// spawn weight.
type UndergroundSlot struct {
	Specie uint16
	Form   uint8
	Rate   uint16
	Info   *pokemon.PersonalInfo
}

// UndergroundArea is a Grand Underground room. Spawns Pokémon are placed each time the
// room is entered.
type UndergroundArea struct {
	Location uint16
	MinLevel uint8
	MaxLevel uint8
	Spawns   uint8
	Slots    []UndergroundSlot
}

func (a *UndergroundArea) totalRate() uint32 {
	var sum uint32
	for i := range a.Slots {
		sum += uint32(a.Slots[i].Rate)
	}
	return sum
}

// pick maps a roll in [0, totalRate) to a slot index.
func (a *UndergroundArea) pick(roll uint32) uint8 {
	for i := range a.Slots {
		if roll < uint32(a.Slots[i].Rate) {
			return uint8(i)
		}
		roll -= uint32(a.Slots[i].Rate)
	}
	return uint8(len(a.Slots) - 1)
}

// UndergroundState is one spawn of a room.
type UndergroundState struct {
	pokemon.WildGeneratorState
	spawn uint8
}

// Spawn is the position of this Pokémon among the room's spawns.
func (u *UndergroundState) Spawn() uint8 { return u.spawn }

// UndergroundGenerator produces the spawns of a Grand Underground room.
type UndergroundGenerator struct {
	opts    pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

func NewUndergroundGenerator(opts pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter) (*UndergroundGenerator, error) {
	if opts.Lead != pokemon.LeadNone {
		return nil, fmt.Errorf("gen8 underground %v: %w", opts.Lead, pokemon.ErrUnsupportedLead)
	}
	return &UndergroundGenerator{opts: opts, profile: profile, filter: filter}, nil
}

// rolls is the number of PID draws a spawn gets to find a shiny.
func (g *UndergroundGenerator) rolls() int {
	if g.profile.ShinyCharm {
		return 3
	}
	return 1
}

// Generate returns the matching spawns of area for the configured advance window.
func (g *UndergroundGenerator) Generate(seed0, seed1 uint64, area *UndergroundArea) []UndergroundState {
	total := area.totalRate()
	if total == 0 {
		return nil
	}
	var states []UndergroundState
	base := rng.NewXorshift(seed0, seed1)
	base.Advance(g.opts.Start())
	tsv := g.profile.TSV()
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		gen := base
		for spawn := uint8(0); spawn < area.Spawns; spawn++ {
			slot := area.pick(gen.NextRange(0, total))
			info := &area.Slots[slot]
			level := area.MinLevel + uint8(gen.NextRange(0, uint32(area.MaxLevel-area.MinLevel)+1))
			s := fill(gen.Next(), tsv, fillParams{
				level: level,
				shiny: pokemon.ShinyRandom,
				rolls: g.rolls(),
				charm: pokemon.Any,
				info:  info.Info,
			})
			item := heldItem(&gen, info.Info, false)
			if g.filter.CompareWild(&s, slot) {
				states = append(states, UndergroundState{
					WildGeneratorState: pokemon.NewWildGeneratorState(g.opts.InitialAdvances+cnt, s, info.Specie, info.Form, slot, item),
					spawn:              spawn,
				})
			}
		}
		base.Next()
	}
	return states
}
