package gen3

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// leadDraws lists the extra draws a lead adds. The draws always happen in this order:
// forced slot coin, slot, level, pressure coin, cute charm roll, nature.
type leadDraws struct {
	forceSlot   bool
	pressure    bool
	synchronize bool
	cuteCharm   bool
}

// emeraldLeads is the draw table of Emerald. Ruby/Sapphire and FireRed/LeafGreen only
// know LeadNone.
var emeraldLeads = map[pokemon.Lead]leadDraws{
	pokemon.LeadNone:            {},
	pokemon.LeadSynchronize:     {synchronize: true},
	pokemon.LeadCuteCharmMale:   {cuteCharm: true},
	pokemon.LeadCuteCharmFemale: {cuteCharm: true},
	pokemon.LeadMagnetPull:      {forceSlot: true},
	pokemon.LeadStatic:          {forceSlot: true},
	pokemon.LeadPressure:        {pressure: true},
}

// wildPrefix bounds the draws before the PID loop: rock smash check, forced slot (two
// draws), level, one lead draw and the nature.
const wildPrefix = 6

// WildGenerator produces wild encounters with Method H1, H2 or H4.
type WildGenerator struct {
	opts    pokemon.Options
	method  pokemon.Method
	profile *pokemon.Profile
	filter  *pokemon.Filter
	lead    leadDraws
}

func NewWildGenerator(opts pokemon.Options, method pokemon.Method, profile *pokemon.Profile, filter *pokemon.Filter) (*WildGenerator, error) {
	switch method {
	case pokemon.MethodH1, pokemon.MethodH2, pokemon.MethodH4:
	default:
		return nil, fmt.Errorf("gen3 wild %v: %w", method, pokemon.ErrUnsupportedMethod)
	}
	lead, ok := emeraldLeads[opts.Lead]
	if !ok || (opts.Lead != pokemon.LeadNone && !profile.Version.Has(pokemon.Emerald)) {
		return nil, fmt.Errorf("gen3 wild %v: %w", opts.Lead, pokemon.ErrUnsupportedLead)
	}
	return &WildGenerator{opts: opts, method: method, profile: profile, filter: filter, lead: lead}, nil
}

// wildResult is one encounter drawn by step.
type wildResult struct {
	state  pokemon.State
	slot   uint8
	ivSeed uint32
}

// step draws one encounter. ok is false when a rock smash roll finds nothing.
func (g *WildGenerator) step(e *rng.LCRNG, area *pokemon.EncounterArea) (wildResult, bool) {
	if area.Encounter == pokemon.RockSmash && e.NextUint16()%2880 >= uint16(area.Rate)*16 {
		return wildResult{}, false
	}

	var slot uint8
	forced := false
	if g.lead.forceSlot && influencesSlot(g.opts.Lead, area.Encounter) && e.NextUint16()%2 == 0 {
		// No draw when none or all of the slots have the type.
		if slots := area.SlotsByLead(g.opts.Lead); len(slots) > 0 && len(slots) < len(area.Slots) {
			slot = slots[e.NextUint16()%uint16(len(slots))]
			forced = true
		}
	}
	if !forced {
		slot = pokemon.EncounterSlot(g.profile.Version, area.Encounter, uint8(e.NextUint16()%100))
	}
	info := area.Slot(slot)
	level := info.Level(e.NextUint16())
	if g.lead.pressure {
		switch {
		case e.NextUint16()%2 == 0:
			level = info.MaxLevel
		case level > info.MinLevel:
			level--
		}
	}

	var nature uint8
	cuteCharm := false
	switch {
	case g.lead.synchronize:
		if e.NextUint16()&1 == 0 {
			nature = g.opts.SynchNature
		} else {
			nature = uint8(e.NextUint16() % 25)
		}
	case g.lead.cuteCharm:
		cuteCharm = !info.Info.FixedGender() && e.NextUint16()%3 > 0
		nature = uint8(e.NextUint16() % 25)
	default:
		nature = uint8(e.NextUint16() % 25)
	}

	target := cuteCharmGender(g.opts.Lead)
	var pid uint32
	for {
		low := uint32(e.NextUint16())
		high := uint32(e.NextUint16())
		pid = high<<16 | low
		if uint8(pid%25) != nature {
			continue
		}
		if cuteCharm && pokemon.GenderFromPID(pid, info.Info.Gender) != target {
			continue
		}
		break
	}

	if g.method == pokemon.MethodH2 {
		e.Next()
	}
	ivSeed := e.Seed()
	iv1 := e.NextUint16()
	if g.method == pokemon.MethodH4 {
		e.Next()
	}
	iv2 := e.NextUint16()

	s := newState(pid, pokemon.IVsFromWords(iv1, iv2), level, g.profile.TSV(), info.Info)
	return wildResult{state: s, slot: slot, ivSeed: ivSeed}, true
}

// influencesSlot reports whether a slot forcing lead rolls on encounter: Magnet Pull on
// land, Static on land and water.
func influencesSlot(lead pokemon.Lead, e pokemon.Encounter) bool {
	switch e {
	case pokemon.Grass:
		return true
	case pokemon.Surfing:
		return lead == pokemon.LeadStatic
	}
	return false
}

func cuteCharmGender(l pokemon.Lead) uint8 {
	if l == pokemon.LeadCuteCharmFemale {
		return 1
	}
	return 0
}

// Generate returns the matching encounters of area for the configured advance window.
func (g *WildGenerator) Generate(seed uint32, area *pokemon.EncounterArea) []pokemon.WildGeneratorState {
	var states []pokemon.WildGeneratorState
	base := rng.NewPokeRNG(seed)
	base.Advance(g.opts.Start())
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		e := base
		if r, ok := g.step(&e, area); ok && g.filter.CompareWild(&r.state, r.slot) {
			slot := area.Slot(r.slot)
			states = append(states, pokemon.NewWildGeneratorState(g.opts.InitialAdvances+cnt, r.state,
				slot.Specie, slot.Form, r.slot, 0))
		}
		base.Next()
	}
	return states
}
