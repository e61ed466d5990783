package gen8

import (
	"context"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
	"github.com/TomTonic/seedfinder/search"
)

// Ability values of a RaidTemplate beyond a fixed slot 0-2.
const (
	AbilityNoHidden uint8 = 3
	AbilityAny      uint8 = 4
)

// ecOffset is the low half of the constant Xoroshiro adds to its seed for the first
// output: the encryption constant reveals the low half of the raid seed.
const ecOffset = 0x229d6a5b

// RaidTemplate is one Pokémon of a Sword/Shield den.
type RaidTemplate struct {
	Specie  uint16
	Form    uint8
	Level   uint8
	Shiny   pokemon.Shiny
	Ability uint8
	// Gender is Any unless the den fixes it.
	Gender  uint8
	IVCount uint8
	Info    *pokemon.PersonalInfo
}

// raidPID draws the encryption constant and the final PID.
func raidPID(x *rng.Xoroshiro, tsv uint16, shiny pokemon.Shiny) (ec, pid uint32) {
	ec = x.NextUint32()
	fake := x.NextUint32()
	pid = fitShiny(x.NextUint32(), fake, tsv, shiny)
	return ec, pid
}

// raidState draws the whole den Pokémon of seed.
func raidState(seed uint64, tsv uint16, tpl *RaidTemplate) pokemon.State {
	x := rng.NewXoroshiro(seed)
	ec, pid := raidPID(&x, tsv, tpl.Shiny)

	var ivs [6]uint8
	var flawless [6]bool
	for n := uint8(0); n < tpl.IVCount; {
		if i := x.NextBounded(6); !flawless[i] {
			flawless[i] = true
			ivs[i] = 31
			n++
		}
	}
	for i := range ivs {
		if !flawless[i] {
			ivs[i] = uint8(x.NextBounded(32))
		}
	}

	ability := tpl.Ability
	switch tpl.Ability {
	case AbilityAny:
		ability = uint8(x.NextBounded(3))
	case AbilityNoHidden:
		ability = uint8(x.NextBounded(2))
	}

	var gender uint8
	switch {
	case tpl.Info.FixedGender():
		gender = pokemon.GenderFromPID(0, tpl.Info.Gender)
	case tpl.Gender != pokemon.Any:
		gender = tpl.Gender
	case uint8(x.NextBounded(253)+1) < tpl.Info.Gender:
		gender = 1
	}
	nature := uint8(x.NextBounded(25))
	return pokemon.NewStateEC(ec, pid, ivs, ability, gender, tpl.Level, nature, pokemon.Shininess(pid, tsv, 16), tpl.Info)
}

// nextRaidSeed is the seed of the following day: the first output of the generator.
func nextRaidSeed(seed uint64) uint64 {
	x := rng.NewXoroshiro(seed)
	return x.Next()
}

// RaidGenerator produces the den Pokémon of consecutive days.
type RaidGenerator struct {
	opts    pokemon.Options
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

// NewRaidGenerator never fails: every profile can roll raids.
func NewRaidGenerator(opts pokemon.Options, profile *pokemon.Profile, filter *pokemon.Filter) *RaidGenerator {
	return &RaidGenerator{opts: opts, profile: profile, filter: filter}
}

// Generate returns the matching raids starting from den seed seed, one advance per day.
func (g *RaidGenerator) Generate(seed uint64, tpl *RaidTemplate) []pokemon.GeneratorState {
	for range g.opts.Start() {
		seed = nextRaidSeed(seed)
	}
	var states []pokemon.GeneratorState
	tsv := g.profile.TSV()
	for cnt := uint32(0); cnt <= g.opts.MaxAdvances; cnt++ {
		s := raidState(seed, tsv, tpl)
		if g.filter.CompareState(&s) {
			states = append(states, pokemon.NewGeneratorState(g.opts.InitialAdvances+cnt, s))
		}
		seed = nextRaidSeed(seed)
	}
	return states
}

// raidSlice is the number of seed high halves one slice covers.
const raidSlice = 1 << 16

// RaidSearcher recovers den seeds from a caught Pokémon's encryption constant and PID.
type RaidSearcher struct {
	*search.Runner[pokemon.SearcherState[uint64]]
	profile *pokemon.Profile
	filter  *pokemon.Filter
}

func NewRaidSearcher(profile *pokemon.Profile, filter *pokemon.Filter, config search.Config) *RaidSearcher {
	return &RaidSearcher{
		Runner:  search.NewRunner[pokemon.SearcherState[uint64]](config),
		profile: profile,
		filter:  filter,
	}
}

// Search sweeps every seed high half.
func (s *RaidSearcher) Search(ctx context.Context, ec, pid uint32, tpl *RaidTemplate) error {
	return s.SearchRange(ctx, ec, pid, 0, 0xffffffff, tpl)
}

// SearchRange sweeps the seed high halves [first, last]. The low half follows from ec.
func (s *RaidSearcher) SearchRange(ctx context.Context, ec, pid, first, last uint32, tpl *RaidTemplate) error {
	if first > last {
		return nil
	}
	low := uint64(ec - ecOffset)
	tsv := s.profile.TSV()
	n := int((uint64(last)-uint64(first))/raidSlice) + 1
	return s.Run(ctx, n, func(i int, dst []pokemon.SearcherState[uint64]) []pokemon.SearcherState[uint64] {
		from := uint64(first) + uint64(i)*raidSlice
		to := min(from+raidSlice-1, uint64(last))
		for high := from; high <= to; high++ {
			seed := high<<32 | low
			x := rng.NewXoroshiro(seed)
			if _, p := raidPID(&x, tsv, tpl.Shiny); p != pid {
				continue
			}
			st := raidState(seed, tsv, tpl)
			if s.filter.CompareState(&st) {
				dst = append(dst, pokemon.NewSearcherState(seed, st))
			}
		}
		return dst
	})
}
