package gen8

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

func charmTarget(lead pokemon.Lead, applied bool) uint8 {
	switch {
	case !applied:
		return pokemon.Any
	case lead == pokemon.LeadCuteCharmFemale:
		return 1
	case lead == pokemon.LeadCuteCharmMale:
		return 0
	}
	return pokemon.Any
}

// WildGenerator produces BDSP wild encounters from the 128-bit Xorshift state.
type WildGenerator struct {
	opts    pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

func NewWildGenerator(opts pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter) (*WildGenerator, error) {
	if err := checkLead(opts.Lead); err != nil {
		return nil, err
	}
	if !profile.Version.Has(pokemon.BDSP) {
		return nil, fmt.Errorf("gen8 wild for %#x: %w", profile.Version, pokemon.ErrUnsupportedTemplate)
	}
	return &WildGenerator{opts: opts, profile: profile, filter: filter}, nil
}

func (g *WildGenerator) step(gen *rng.Xorshift, area *pokemon.EncounterArea) (pokemon.State, uint8, uint16) {
	lead := g.opts.Lead
	applied := leadApplies(gen, lead)

	var slot uint8
	forced := false
	if applied && (lead == pokemon.LeadMagnetPull || lead == pokemon.LeadStatic) {
		if slots := area.SlotsByLead(lead); len(slots) > 0 {
			slot = slots[gen.NextRange(0, uint32(len(slots)))]
			forced = true
		}
	}
	if !forced {
		slot = pokemon.EncounterSlot(g.profile.Version, area.Encounter, uint8(gen.NextRange(0, 100)))
	}
	info := area.Slot(slot)
	level := info.MinLevel + uint8(gen.NextRange(0, uint32(info.MaxLevel-info.MinLevel)+1))
	if applied && lead == pokemon.LeadPressure {
		level = info.MaxLevel
	}

	s := fill(gen.Next(), g.profile.TSV(), fillParams{
		level:  level,
		shiny:  pokemon.ShinyRandom,
		synced: applied && lead == pokemon.LeadSynchronize,
		nature: g.opts.SynchNature,
		charm:  charmTarget(lead, applied),
		info:   info.Info,
	})
	return s, slot, heldItem(gen, info.Info, lead == pokemon.LeadCompoundEyes)
}

// Generate returns the matching encounters of area for the configured advance window.
func (g *WildGenerator) Generate(seed0, seed1 uint64, area *pokemon.EncounterArea) []pokemon.WildGeneratorState {
	var states []pokemon.WildGeneratorState
	base := rng.NewXorshift(seed0, seed1)
	base.Advance(g.opts.Start())
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		gen := base
		s, slot, item := g.step(&gen, area)
		if g.filter.CompareWild(&s, slot) {
			info := area.Slot(slot)
			states = append(states, pokemon.NewWildGeneratorState(g.opts.InitialAdvances+cnt, s, info.Specie, info.Form, slot, item))
		}
		base.Next()
	}
	return states
}

// StaticGenerator produces BDSP static encounters, gifts and roamers.
type StaticGenerator struct {
	opts    pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

// NewStaticGenerator accepts LeadNone and LeadSynchronize.
func NewStaticGenerator(opts pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter) (*StaticGenerator, error) {
	if opts.Lead != pokemon.LeadNone && opts.Lead != pokemon.LeadSynchronize {
		return nil, fmt.Errorf("gen8 static %v: %w", opts.Lead, pokemon.ErrUnsupportedLead)
	}
	return &StaticGenerator{opts: opts, profile: profile, filter: filter}, nil
}

// step draws one static encounter. Roamers have no lead roll and seed the Pokémon with
// their encryption constant.
func (g *StaticGenerator) step(gen *rng.Xorshift, tpl *pokemon.StaticTemplate) pokemon.State {
	p := fillParams{
		level:   tpl.Level,
		ivCount: tpl.IVCount,
		shiny:   tpl.Shiny,
		roamer:  tpl.Roamer,
		nature:  g.opts.SynchNature,
		charm:   pokemon.Any,
		info:    tpl.Info,
	}
	if !tpl.Roamer {
		p.synced = leadApplies(gen, g.opts.Lead)
	}
	s := fill(gen.Next(), g.profile.TSV(), p)
	if tpl.Ability != pokemon.Any {
		s = pokemon.NewStateEC(s.EC(), s.PID(), s.IVs(), tpl.Ability, s.Gender(), s.Level(), s.Nature(), s.Shiny(), tpl.Info)
	}
	return s
}

// Generate returns the matching encounters from the Xorshift state (seed0, seed1).
func (g *StaticGenerator) Generate(seed0, seed1 uint64, tpl *pokemon.StaticTemplate) []pokemon.GeneratorState {
	var states []pokemon.GeneratorState
	base := rng.NewXorshift(seed0, seed1)
	base.Advance(g.opts.Start())
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		gen := base
		s := g.step(&gen, tpl)
		if g.filter.CompareState(&s) {
			states = append(states, pokemon.NewGeneratorState(g.opts.InitialAdvances+cnt, s))
		}
		base.Next()
	}
	return states
}
