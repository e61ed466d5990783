// Package gen4 generates and searches Diamond/Pearl/Platinum and HeartGold/SoulSilver.
//
// The two game families draw the same values but round bounded draws differently:
// Method J (DPPt) divides, Method K (HGSS) takes the modulo.
package gen4

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// leadDraws lists the extra draws and effects of a lead.
type leadDraws struct {
	forceSlot    bool
	pressure     bool
	synchronize  bool
	cuteCharm    bool
	suctionCups  bool
	compoundEyes bool
}

var leads = map[pokemon.Lead]leadDraws{
	pokemon.LeadNone:            {},
	pokemon.LeadSynchronize:     {synchronize: true},
	pokemon.LeadCuteCharmMale:   {cuteCharm: true},
	pokemon.LeadCuteCharmFemale: {cuteCharm: true},
	pokemon.LeadMagnetPull:      {forceSlot: true},
	pokemon.LeadStatic:          {forceSlot: true},
	pokemon.LeadPressure:        {pressure: true},
	pokemon.LeadSuctionCups:     {suctionCups: true},
	pokemon.LeadCompoundEyes:    {compoundEyes: true},
}

// drawer holds what every gen 4 routine needs to turn words into a state.
type drawer struct {
	opts    pokemon.Options
	method  pokemon.Method
	profile *pokemon.Profile
	filter  *pokemon.Filter
	lead    leadDraws
}

func newDrawer(opts pokemon.Options, method pokemon.Method, profile *pokemon.Profile, filter *pokemon.Filter) (drawer, error) {
	lead, ok := leads[opts.Lead]
	if !ok {
		return drawer{}, fmt.Errorf("gen4 %v: %w", opts.Lead, pokemon.ErrUnsupportedLead)
	}
	return drawer{opts: opts, method: method, profile: profile, filter: filter, lead: lead}, nil
}

// bounded applies the rounding convention of the method.
func (d *drawer) bounded(e *rng.LCRNG, max uint16) uint16 {
	if d.method == pokemon.MethodK {
		return e.NextUint16Mod(max)
	}
	return e.NextUint16Div(max)
}

// cuteCharmBuffer is the low PID byte offset that forces the lead's gender.
func cuteCharmBuffer(lead pokemon.Lead, ratio uint8) uint32 {
	if lead == pokemon.LeadCuteCharmMale {
		return 25 * (uint32(ratio)/25 + 1)
	}
	return 0
}

// leadPID draws the lead roll, nature and PID of Methods J and K.
func (d *drawer) leadPID(e *rng.LCRNG, info *pokemon.PersonalInfo) uint32 {
	var nature uint32
	switch {
	case d.lead.synchronize:
		if d.bounded(e, 2) == 0 {
			nature = uint32(d.opts.SynchNature)
		} else {
			nature = uint32(d.bounded(e, 25))
		}
	case d.lead.cuteCharm:
		charmed := d.bounded(e, 3) != 0
		nature = uint32(d.bounded(e, 25))
		if charmed && !info.FixedGender() {
			return cuteCharmBuffer(d.opts.Lead, info.Gender) + nature
		}
	default:
		nature = uint32(d.bounded(e, 25))
	}
	for {
		low := uint32(e.NextUint16())
		high := uint32(e.NextUint16())
		if pid := high<<16 | low; pid%25 == nature {
			return pid
		}
	}
}

// chainedPID builds the shiny PID of a Poké Radar chain: the low three bits of each half
// come first, then thirteen single bits of the low half, and the high half is fitted to
// the trainer so the PID is always shiny.
func chainedPID(e *rng.LCRNG, tsv uint16) uint32 {
	low := e.NextUint16() & 7
	high := e.NextUint16() & 7
	for i := 3; i < 16; i++ {
		low |= (e.NextUint16() & 1) << i
	}
	high |= (tsv ^ low) & 0xfff8
	return uint32(high)<<16 | uint32(low)
}

func (d *drawer) ivs(e *rng.LCRNG) ([6]uint8, uint32) {
	ivSeed := e.Seed()
	return pokemon.IVsFromWords(e.NextUint16(), e.NextUint16()), ivSeed
}

func (d *drawer) state(pid uint32, ivs [6]uint8, level uint8, info *pokemon.PersonalInfo) pokemon.State {
	return pokemon.NewState(pid, ivs, uint8(pid&1), pokemon.GenderFromPID(pid, info.Gender), level,
		uint8(pid%25), pokemon.Shininess(pid, d.profile.TSV(), 8), info)
}

// StaticGenerator produces static encounters with Method 1 (gifts, roamers), Method J or
// K (stationary encounters affected by leads) or a shiny Poké Radar chain.
type StaticGenerator struct {
	drawer
}

func NewStaticGenerator(opts pokemon.Options, method pokemon.Method, profile *pokemon.Profile, filter *pokemon.Filter) (*StaticGenerator, error) {
	switch method {
	case pokemon.Method1, pokemon.MethodJ, pokemon.MethodK, pokemon.PokeRadarShiny:
	default:
		return nil, fmt.Errorf("gen4 static %v: %w", method, pokemon.ErrUnsupportedMethod)
	}
	if method != pokemon.MethodJ && method != pokemon.MethodK && opts.Lead != pokemon.LeadNone {
		return nil, fmt.Errorf("gen4 static %v with %v: %w", method, opts.Lead, pokemon.ErrUnsupportedLead)
	}
	d, err := newDrawer(opts, method, profile, filter)
	if err != nil {
		return nil, err
	}
	return &StaticGenerator{d}, nil
}

func (g *StaticGenerator) step(e *rng.LCRNG, tpl *pokemon.StaticTemplate) (pokemon.State, uint32) {
	var pid uint32
	switch g.method {
	case pokemon.Method1:
		low := uint32(e.NextUint16())
		pid = uint32(e.NextUint16())<<16 | low
	case pokemon.PokeRadarShiny:
		pid = chainedPID(e, g.profile.TSV())
	default:
		pid = g.leadPID(e, tpl.Info)
	}
	ivs, ivSeed := g.ivs(e)
	return g.state(pid, ivs, tpl.Level, tpl.Info), ivSeed
}

// Generate returns the matching states of the configured advance window.
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
