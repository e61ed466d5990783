package gen5

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// abilityBit, shinyLockBit and idBit are PID bits the game flips after drawing it.
const (
	abilityBit   = 0x10000
	shinyLockBit = 0x10000000
	idBit        = 0x80000000
)

// roamerOrder is the stat order roamers draw their IVs in.
var roamerOrder = [6]int{pokemon.HP, pokemon.Atk, pokemon.Def, pokemon.SpD, pokemon.Spe, pokemon.SpA}

// ivs draws the six IVs from the twister seeded by the upper seed half.
func ivs(seed uint64, advances uint32, roamer bool) [6]uint8 {
	mt := rng.NewMT(uint32(seed >> 32))
	mt.Advance(advances)
	var out [6]uint8
	for i := range out {
		stat := i
		if roamer {
			stat = roamerOrder[i]
		}
		out[stat] = uint8(mt.Next() >> 27)
	}
	return out
}

// core holds the configuration shared by the static and wild generators.
type core struct {
	opts       pokemon.Options
	ivAdvances uint32
	profile    *Profile5
	filter     *pokemon.Filter
}

func newCore(opts pokemon.Options, ivAdvances uint32, profile *Profile5, filter *pokemon.Filter) (core, error) {
	if opts.Lead != pokemon.LeadNone && opts.Lead != pokemon.LeadSynchronize {
		return core{}, fmt.Errorf("gen5 %v: %w", opts.Lead, pokemon.ErrUnsupportedLead)
	}
	return core{opts: opts, ivAdvances: ivAdvances, profile: profile, filter: filter}, nil
}

// synchronized consumes the lead draw every encounter makes and reports whether a
// Synchronize lead applies.
func (c *core) synchronized(e *rng.LCRNG64) bool {
	hit := e.NextUint32Bounded(2) == 1
	return hit && c.opts.Lead == pokemon.LeadSynchronize
}

func (c *core) nature(e *rng.LCRNG64, synced bool) uint8 {
	if synced {
		return c.opts.SynchNature
	}
	return uint8(e.NextUint32Bounded(25))
}

// fixIDBit flips bit 31 unless it already equals bit 0 XOR the low bits of both trainer
// ids.
func (c *core) fixIDBit(pid uint32) uint32 {
	if (pid>>31)^(pid&1)^uint32(c.profile.TID&1)^uint32(c.profile.SID&1) == 1 {
		pid ^= idBit
	}
	return pid
}

func (c *core) state(pid uint32, ivs [6]uint8, level, nature uint8, info *pokemon.PersonalInfo) pokemon.State {
	return pokemon.NewState(pid, ivs, uint8(pid>>16&1), pokemon.GenderFromPID(pid, info.Gender), level, nature,
		c.profile.Shininess(pid), info)
}

// StaticGenerator produces static encounters, gifts and roamers.
type StaticGenerator struct {
	core
}

func NewStaticGenerator(opts pokemon.Options, ivAdvances uint32, profile *Profile5, filter *pokemon.Filter) (*StaticGenerator, error) {
	c, err := newCore(opts, ivAdvances, profile, filter)
	if err != nil {
		return nil, err
	}
	return &StaticGenerator{c}, nil
}

func (g *StaticGenerator) step(e *rng.LCRNG64, ivs [6]uint8, tpl *pokemon.StaticTemplate) pokemon.State {
	synced := false
	if !tpl.Roamer {
		synced = g.synchronized(e)
	}
	pid := e.NextUint32() ^ abilityBit
	switch {
	case tpl.Shiny == pokemon.ShinyNever:
		if pokemon.IsShiny(pid, g.profile.TSV()) {
			pid ^= shinyLockBit
		}
	case !tpl.Roamer:
		pid = g.fixIDBit(pid)
	}
	return g.state(pid, ivs, tpl.Level, g.nature(e, synced), tpl.Info)
}

// Generate returns the matching states of the configured advance window. The IVs are
// fixed by ivAdvances and shared by every PID advance.
func (g *StaticGenerator) Generate(seed uint64, tpl *pokemon.StaticTemplate) []pokemon.GeneratorState {
	iv := ivs(seed, g.ivAdvances, tpl.Roamer)
	if !g.filter.CompareIVs(iv) {
		return nil
	}
	var states []pokemon.GeneratorState
	base := rng.NewBWRNG(seed)
	base.Advance(uint64(g.opts.Start()))
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		e := base
		s := g.step(&e, iv, tpl)
		if g.filter.CompareState(&s) {
			states = append(states, pokemon.NewGeneratorState(g.opts.InitialAdvances+cnt, s))
		}
		base.Next()
	}
	return states
}

// WildGenerator produces grass, surfing and fishing encounters.
type WildGenerator struct {
	core
}

func NewWildGenerator(opts pokemon.Options, ivAdvances uint32, profile *Profile5, filter *pokemon.Filter) (*WildGenerator, error) {
	c, err := newCore(opts, ivAdvances, profile, filter)
	if err != nil {
		return nil, err
	}
	return &WildGenerator{c}, nil
}

func (g *WildGenerator) step(e *rng.LCRNG64, ivs [6]uint8, area *pokemon.EncounterArea) (pokemon.State, uint8, uint16) {
	synced := g.synchronized(e)
	slot := pokemon.EncounterSlot(g.profile.Version, area.Encounter, uint8(e.NextUint32Bounded(100)))
	info := area.Slot(slot)
	level := info.MinLevel + uint8(e.NextUint32Bounded(uint32(info.MaxLevel-info.MinLevel)+1))
	pid := g.fixIDBit(e.NextUint32() ^ abilityBit)
	nature := g.nature(e, synced)

	var item uint16
	switch roll := e.NextUint32Bounded(100); {
	case roll < 50:
		item = info.Info.Items[0]
	case roll < 55:
		item = info.Info.Items[1]
	}
	return g.state(pid, ivs, level, nature, info.Info), slot, item
}

// Generate returns the matching encounters of area for the configured advance window.
func (g *WildGenerator) Generate(seed uint64, area *pokemon.EncounterArea) []pokemon.WildGeneratorState {
	iv := ivs(seed, g.ivAdvances, false)
	if !g.filter.CompareIVs(iv) {
		return nil
	}
	var states []pokemon.WildGeneratorState
	base := rng.NewBWRNG(seed)
	base.Advance(uint64(g.opts.Start()))
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		e := base
		s, slot, item := g.step(&e, iv, area)
		if g.filter.CompareWild(&s, slot) {
			info := area.Slot(slot)
			states = append(states, pokemon.NewWildGeneratorState(g.opts.InitialAdvances+cnt, s, info.Specie, info.Form, slot, item))
		}
		base.Next()
	}
	return states
}
