// Package gen8 generates Brilliant Diamond/Shining Pearl encounters and Sword/Shield
// raids, and recovers raid seeds.
package gen8

import (
	"fmt"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

const shinyLockBit = 0x10000000

// leadApplies consumes the lead roll. Leads other than LeadNone take effect half the time.
func leadApplies(gen *rng.Xorshift, lead pokemon.Lead) bool {
	if lead == pokemon.LeadNone {
		return false
	}
	return gen.NextRange(0, 100) < 50
}

func checkLead(lead pokemon.Lead) error {
	switch lead {
	case pokemon.LeadNone, pokemon.LeadSynchronize, pokemon.LeadCuteCharmMale, pokemon.LeadCuteCharmFemale,
		pokemon.LeadMagnetPull, pokemon.LeadStatic, pokemon.LeadPressure, pokemon.LeadCompoundEyes:
		return nil
	}
	return fmt.Errorf("gen8 %v: %w", lead, pokemon.ErrUnsupportedLead)
}

// fitShiny applies a template's shiny policy. The game first checks the PID against a
// trainer id it drew itself; a PID shiny for that fake trainer is rewritten to be shiny
// for the real one, of the same kind, and any other PID is made non-shiny.
func fitShiny(pid uint32, fake uint32, tsv uint16, policy pokemon.Shiny) uint32 {
	low := uint16(pid)
	fakeXor := pokemon.ShinyValue(pid) ^ uint16(fake>>16) ^ uint16(fake)
	realShiny := pokemon.ShinyValue(pid)^tsv < 16
	forced := func(square bool) uint32 {
		high := low ^ tsv
		if !square {
			high ^= 1
		}
		return uint32(high)<<16 | uint32(low)
	}

	switch policy {
	case pokemon.ShinyNever:
	case pokemon.ShinyStar, pokemon.ShinySquare:
		return forced(policy == pokemon.ShinySquare)
	case pokemon.ShinyAlways:
		if realShiny {
			return pid
		}
		return forced(fakeXor == 0)
	default:
		if fakeXor < 16 {
			if realShiny {
				return pid
			}
			return forced(fakeXor == 0)
		}
	}
	if realShiny {
		pid ^= shinyLockBit
	}
	return pid
}

// fillParams are the encounter decisions made before the Pokémon itself is drawn.
type fillParams struct {
	level   uint8
	ivCount uint8
	shiny   pokemon.Shiny
	// rolls is the number of PID draws allowed to find a shiny; zero means one.
	rolls int
	// roamer seeds the Pokémon generator with the encryption constant itself.
	roamer bool
	synced bool
	nature uint8
	// charm forces this gender when not pokemon.Any.
	charm uint8
	info  *pokemon.PersonalInfo
}

// fill draws a BDSP Pokémon from its 32-bit seed: encryption constant, fake trainer, PID,
// IVs, ability, gender and nature.
func fill(seed uint32, tsv uint16, p fillParams) pokemon.State {
	r := rng.NewXoroshiroBDSP(seed)
	ec := seed
	if !p.roamer {
		ec = r.Next()
	}
	fake := r.Next()
	var pid uint32
	for i := 0; i < max(p.rolls, 1); i++ {
		pid = r.Next()
		if pokemon.ShinyValue(pid)^uint16(fake>>16)^uint16(fake) < 16 {
			break
		}
	}
	pid = fitShiny(pid, fake, tsv, p.shiny)

	var ivs [6]uint8
	var flawless [6]bool
	for n := uint8(0); n < p.ivCount; {
		if i := r.NextMod(6); !flawless[i] {
			flawless[i] = true
			ivs[i] = 31
			n++
		}
	}
	for i := range ivs {
		if !flawless[i] {
			ivs[i] = uint8(r.NextMod(32))
		}
	}
	ability := uint8(r.NextMod(2))

	var gender uint8
	switch {
	case p.info.FixedGender():
		gender = pokemon.GenderFromPID(0, p.info.Gender)
	case p.charm != pokemon.Any:
		gender = p.charm
	case uint8(r.NextMod(253)+1) < p.info.Gender:
		gender = 1
	}

	nature := p.nature
	if !p.synced {
		nature = uint8(r.NextMod(25))
	}
	return pokemon.NewStateEC(ec, pid, ivs, ability, gender, p.level, nature, pokemon.Shininess(pid, tsv, 16), p.info)
}

// heldItem draws the item roll of a wild Pokémon.
func heldItem(gen *rng.Xorshift, info *pokemon.PersonalInfo, compoundEyes bool) uint16 {
	common, rare := uint32(50), uint32(55)
	if compoundEyes {
		common, rare = 60, 80
	}
	switch roll := gen.NextRange(0, 100); {
	case roll < common:
		return info.Items[0]
	case roll < rare:
		return info.Items[1]
	}
	return 0
}
