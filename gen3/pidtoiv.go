package gen3

import (
	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/recovery"
	"github.com/TomTonic/seedfinder/rng"
)

// PIDToIVState is one way a PID can be produced: the origin seed, the method and the IVs
// that follow.
type PIDToIVState struct {
	Seed   uint32
	Method pokemon.Method
	IVs    [6]uint8
}

// Recoverers bundles the calibrations PIDToIVs needs. Build it once with NewRecoverers.
type Recoverers struct {
	poke *recovery.Recoverer
	xd   *recovery.Recoverer
}

func NewRecoverers() *Recoverers {
	return &Recoverers{poke: recovery.PokeRNG(), xd: recovery.XDRNG()}
}

// PIDToIVs lists every Method 1, 2, 4 and XD/Colo origin that draws pid.
func (r *Recoverers) PIDToIVs(pid uint32) []PIDToIVState {
	var out []PIDToIVState

	// handheld methods draw the low half first
	for _, seed := range r.poke.RecoverPID(uint16(pid), uint16(pid>>16), nil) {
		for _, m := range [...]pokemon.Method{pokemon.Method1, pokemon.Method2, pokemon.Method4} {
			e := rng.NewPokeRNG(seed)
			e.Advance(2)
			if m == pokemon.Method2 {
				e.Next()
			}
			iv1 := e.NextUint16()
			if m == pokemon.Method4 {
				e.Next()
			}
			out = append(out, PIDToIVState{Seed: seed, Method: m, IVs: pokemon.IVsFromWords(iv1, e.NextUint16())})
		}
	}

	// XD and Colosseum draw IVs and ability before the high half
	for _, seed := range r.xd.RecoverPID(uint16(pid>>16), uint16(pid), nil) {
		origin := rewindXD(seed, 3)
		e := rng.NewXDRNG(origin)
		ivs := pokemon.IVsFromWords(e.NextUint16(), e.NextUint16())
		out = append(out, PIDToIVState{Seed: origin, Method: pokemon.XDColo, IVs: ivs})
	}
	return out
}
