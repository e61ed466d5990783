package gen4

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// wildPrefix bounds the draws before the PID loop: bite check, slot (two draws with a
// forcing lead), level, one lead draw and the nature.
const wildPrefix = 6

// biteRate is the percentage a rod gets a bite at all.
func biteRate(e pokemon.Encounter) uint16 {
	switch e {
	case pokemon.OldRod:
		return 25
	case pokemon.GoodRod:
		return 50
	}
	return 75
}

// drawsLevel reports whether the category picks a level from the slot's range. Grass
// slots have a fixed level.
func drawsLevel(e pokemon.Encounter) bool {
	return e != pokemon.Grass && e != pokemon.DoubleGrass
}

// WildGenerator produces wild encounters with Method J (DPPt) or K (HGSS).
type WildGenerator struct {
	drawer
}

func NewWildGenerator(opts pokemon.Options, method pokemon.Method, profile *pokemon.Profile, filter *pokemon.Filter) (*WildGenerator, error) {
	if method != pokemon.MethodJ && method != pokemon.MethodK {
		return nil, fmt.Errorf("gen4 wild %v: %w", method, pokemon.ErrUnsupportedMethod)
	}
	d, err := newDrawer(opts, method, profile, filter)
	if err != nil {
		return nil, err
	}
	return &WildGenerator{d}, nil
}

type wildResult struct {
	state  pokemon.State
	slot   uint8
	item   uint16
	ivSeed uint32
}

// step draws one encounter. ok is false when a rod gets no bite.
func (g *WildGenerator) step(e *rng.LCRNG, area *pokemon.EncounterArea) (wildResult, bool) {
	if area.Encounter.IsFishing() && !g.lead.suctionCups && g.bounded(e, 100) >= biteRate(area.Encounter) {
		return wildResult{}, false
	}

	var slot uint8
	forced := false
	if g.lead.forceSlot {
		if slots := area.SlotsByLead(g.opts.Lead); len(slots) > 0 && g.bounded(e, 2) == 0 {
			slot = slots[g.bounded(e, uint16(len(slots)))]
			forced = true
		}
	}
	if !forced {
		slot = pokemon.EncounterSlot(g.profile.Version, area.Encounter, uint8(g.bounded(e, 100)))
	}
	info := area.Slot(slot)
	level := info.MinLevel
	if drawsLevel(area.Encounter) {
		level += uint8(g.bounded(e, uint16(info.MaxLevel-info.MinLevel)+1))
	}
	if g.lead.pressure && g.bounded(e, 2) == 0 {
		level = info.MaxLevel
	}

	pid := g.leadPID(e, info.Info)
	ivs, ivSeed := g.ivs(e)
	item := g.item(e, info.Info)
	return wildResult{
		state:  g.state(pid, ivs, level, info.Info),
		slot:   slot,
		item:   item,
		ivSeed: ivSeed,
	}, true
}

// item draws the held item: 50% common and 5% rare, 60% and 20% with Compound Eyes.
func (g *WildGenerator) item(e *rng.LCRNG, info *pokemon.PersonalInfo) uint16 {
	common, rare := uint16(50), uint16(55)
	if g.lead.compoundEyes {
		common, rare = 60, 80
	}
	switch roll := g.bounded(e, 100); {
	case roll < common:
		return info.Items[0]
	case roll < rare:
		return info.Items[1]
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
				slot.Specie, slot.Form, r.slot, r.item))
		}
		base.Next()
	}
	return states
}
