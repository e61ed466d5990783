package gen4

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
	"github.com/TomTonic/seedfinder/search"
)

var (
	bidoof = &pokemon.PersonalInfo{Stats: [6]uint8{59, 45, 40, 31, 35, 40}, Gender: 127,
		Abilities: [3]uint16{86, 109, 109}, Types: [2]uint8{0, 0}, Items: [3]uint16{0, 155, 0}, Present: true}
	magnemite = &pokemon.PersonalInfo{Stats: [6]uint8{25, 35, 70, 95, 55, 45}, Gender: pokemon.GenderUnknown,
		Abilities: [3]uint16{42, 5, 5}, Types: [2]uint8{pokemon.TypeElectric, pokemon.TypeSteel},
		Items: [3]uint16{0, 233, 0}, Present: true}
	magikarp = &pokemon.PersonalInfo{Stats: [6]uint8{20, 10, 55, 80, 15, 20}, Gender: 127,
		Abilities: [3]uint16{33, 33, 33}, Types: [2]uint8{10, 10}, Present: true}
	buneary = &pokemon.PersonalInfo{Stats: [6]uint8{55, 66, 44, 85, 44, 56}, Gender: 127,
		Abilities: [3]uint16{50, 103, 103}, Types: [2]uint8{0, 0}, Items: [3]uint16{247, 247, 0}, Present: true}
)

func grassArea() *pokemon.EncounterArea {
	slots := make([]pokemon.Slot, 12)
	for i := range slots {
		switch i % 3 {
		case 0:
			slots[i] = pokemon.Slot{Specie: 399, MinLevel: 3, MaxLevel: 3, Info: bidoof}
		case 1:
			slots[i] = pokemon.Slot{Specie: 427, MinLevel: 4, MaxLevel: 4, Info: buneary}
		default:
			slots[i] = pokemon.Slot{Specie: 81, MinLevel: 5, MaxLevel: 5, Info: magnemite}
		}
	}
	return &pokemon.EncounterArea{Location: 202, Rate: 30, Encounter: pokemon.Grass, Slots: slots}
}

func waterArea(e pokemon.Encounter) *pokemon.EncounterArea {
	slots := make([]pokemon.Slot, 5)
	for i := range slots {
		slots[i] = pokemon.Slot{Specie: 129, MinLevel: 10, MaxLevel: 25, Info: magikarp}
	}
	return &pokemon.EncounterArea{Location: 218, Rate: 25, Encounter: e, Slots: slots}
}

func platinum() *pokemon.Profile {
	return &pokemon.Profile{Name: "Pt", Version: pokemon.Platinum, TID: 24680, SID: 13579}
}

func heartGold() *pokemon.Profile {
	return &pokemon.Profile{Name: "HG", Version: pokemon.HeartGold, TID: 777, SID: 31337}
}

func profileFor(m pokemon.Method) *pokemon.Profile {
	if m == pokemon.MethodK {
		return heartGold()
	}
	return platinum()
}

func TestMethodJDividesAndMethodKTakesModulo(t *testing.T) {
	filter := pokemon.NewFilter()
	tpl := &pokemon.StaticTemplate{Specie: 399, Level: 30, Info: bidoof}
	for _, method := range []pokemon.Method{pokemon.MethodJ, pokemon.MethodK} {
		gen, err := NewStaticGenerator(pokemon.Options{MaxAdvances: 200}, method, profileFor(method), &filter)
		require.NoError(t, err)
		for _, s := range gen.Generate(0x600dcafe, tpl) {
			e := rng.NewPokeRNG(0x600dcafe)
			e.Advance(s.Advances())
			word := e.NextUint16()
			want := word / 0xa3e
			if method == pokemon.MethodK {
				want = word % 25
			}
			assert.Equal(t, uint8(want), s.Nature(), "%v advance %d", method, s.Advances())
		}
	}
}

func TestUnsupportedConfigurations(t *testing.T) {
	filter := pokemon.NewFilter()
	_, err := NewStaticGenerator(pokemon.Options{}, pokemon.MethodH1, platinum(), &filter)
	assert.ErrorIs(t, err, pokemon.ErrUnsupportedMethod)
	_, err = NewStaticGenerator(pokemon.Options{Lead: pokemon.LeadSynchronize}, pokemon.Method1, platinum(), &filter)
	assert.ErrorIs(t, err, pokemon.ErrUnsupportedLead)
	_, err = NewWildGenerator(pokemon.Options{}, pokemon.Method1, platinum(), &filter)
	assert.ErrorIs(t, err, pokemon.ErrUnsupportedMethod)
	_, err = NewWildGenerator(pokemon.Options{Lead: pokemon.Lead(99)}, pokemon.MethodJ, platinum(), &filter)
	assert.ErrorIs(t, err, pokemon.ErrUnsupportedLead)
	_, err = NewEggGenerator(pokemon.Options{}, pokemon.Options{}, &pokemon.Profile{Version: pokemon.Emerald}, &filter, Daycare{})
	assert.ErrorIs(t, err, pokemon.ErrUnsupportedTemplate)
}

func TestChainedShinyIsAlwaysShiny(t *testing.T) {
	filter := pokemon.NewFilter()
	profile := platinum()
	gen, err := NewStaticGenerator(pokemon.Options{MaxAdvances: 500}, pokemon.PokeRadarShiny, profile, &filter)
	require.NoError(t, err)
	states := gen.Generate(0xabcdef01, &pokemon.StaticTemplate{Level: 20, Info: bidoof})
	require.Len(t, states, 501)
	for _, s := range states {
		assert.True(t, pokemon.IsShiny(s.PID(), profile.TSV()), "pid %#08x", s.PID())
		assert.NotZero(t, s.Shiny())
	}
}

func find(results []pokemon.SearcherState[uint32], seed uint32) *pokemon.SearcherState[uint32] {
	for i := range results {
		if results[i].Seed() == seed {
			return &results[i]
		}
	}
	return nil
}

func TestStaticRoundTrip(t *testing.T) {
	filter := pokemon.NewFilter()
	tpl := &pokemon.StaticTemplate{Specie: 427, Level: 20, Info: buneary}
	cases := []struct {
		name   string
		method pokemon.Method
		lead   pokemon.Lead
	}{
		{"Method1", pokemon.Method1, pokemon.LeadNone},
		{"MethodJ", pokemon.MethodJ, pokemon.LeadNone},
		{"MethodK", pokemon.MethodK, pokemon.LeadNone},
		{"MethodJSynchronize", pokemon.MethodJ, pokemon.LeadSynchronize},
		{"MethodKCuteCharm", pokemon.MethodK, pokemon.LeadCuteCharmFemale},
		{"MethodJCuteCharm", pokemon.MethodJ, pokemon.LeadCuteCharmMale},
		{"PokeRadarShiny", pokemon.PokeRadarShiny, pokemon.LeadNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := profileFor(tc.method)
			opts := pokemon.Options{MaxAdvances: 40, Lead: tc.lead, SynchNature: 3}
			gen, err := NewStaticGenerator(opts, tc.method, profile, &filter)
			require.NoError(t, err)
			single, err := NewStaticGenerator(pokemon.Options{Lead: tc.lead, SynchNature: 3}, tc.method, profile, &filter)
			require.NoError(t, err)
			searcher, err := NewStaticSearcher(tc.method, tc.lead, 3, profile, &filter, search.Config{Workers: 2})
			require.NoError(t, err)

			const seed = 0x2d1c0b0a
			for i, want := range gen.Generate(seed, tpl) {
				if i%5 != 0 {
					continue
				}
				ivs := want.IVs()
				require.NoError(t, searcher.Search(context.Background(), ivs, ivs, tpl))
				results := searcher.DrainResults()

				origin := rng.NewPokeRNG(seed)
				origin.Advance(want.Advances())
				got := find(results, origin.Seed())
				require.NotNil(t, got, "advance %d not found", want.Advances())
				assert.Equal(t, want.State, got.State)

				for _, r := range results {
					again := single.Generate(r.Seed(), tpl)
					require.Len(t, again, 1)
					assert.Equal(t, r.State, again[0].State)
				}
			}
		})
	}
}

func findWild(results []pokemon.WildSearcherState[uint32], seed uint32) *pokemon.WildSearcherState[uint32] {
	for i := range results {
		if results[i].Seed() == seed {
			return &results[i]
		}
	}
	return nil
}

func TestWildRoundTrip(t *testing.T) {
	filter := pokemon.NewFilter()
	cases := []struct {
		name   string
		method pokemon.Method
		lead   pokemon.Lead
		area   *pokemon.EncounterArea
	}{
		{"JGrass", pokemon.MethodJ, pokemon.LeadNone, grassArea()},
		{"KGrass", pokemon.MethodK, pokemon.LeadNone, grassArea()},
		{"JSurf", pokemon.MethodJ, pokemon.LeadNone, waterArea(pokemon.Surfing)},
		{"KSuperRod", pokemon.MethodK, pokemon.LeadNone, waterArea(pokemon.SuperRod)},
		{"JGoodRodSuctionCups", pokemon.MethodJ, pokemon.LeadSuctionCups, waterArea(pokemon.GoodRod)},
		{"KSynchronize", pokemon.MethodK, pokemon.LeadSynchronize, grassArea()},
		{"JCuteCharm", pokemon.MethodJ, pokemon.LeadCuteCharmMale, grassArea()},
		{"KMagnetPull", pokemon.MethodK, pokemon.LeadMagnetPull, grassArea()},
		{"JPressure", pokemon.MethodJ, pokemon.LeadPressure, waterArea(pokemon.Surfing)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := profileFor(tc.method)
			opts := pokemon.Options{MaxAdvances: 60, Lead: tc.lead, SynchNature: 20}
			gen, err := NewWildGenerator(opts, tc.method, profile, &filter)
			require.NoError(t, err)
			searcher, err := NewWildSearcher(tc.method, tc.lead, 20, profile, &filter, search.Config{Workers: 2})
			require.NoError(t, err)

			const seed = 0x51a7e000
			states := gen.Generate(seed, tc.area)
			require.NotEmpty(t, states)
			for i, want := range states {
				if i%6 != 0 {
					continue
				}
				ivs := want.IVs()
				require.NoError(t, searcher.Search(context.Background(), ivs, ivs, tc.area))
				results := searcher.DrainResults()

				origin := rng.NewPokeRNG(seed)
				origin.Advance(want.Advances())
				got := findWild(results, origin.Seed())
				require.NotNil(t, got, "advance %d not found", want.Advances())
				assert.Equal(t, want.State, got.State)
				assert.Equal(t, want.EncounterSlot(), got.EncounterSlot())
				assert.Equal(t, want.Item(), got.Item())
			}
		})
	}
}

func TestFishingBiteRate(t *testing.T) {
	filter := pokemon.NewFilter()
	for _, tc := range []struct {
		e    pokemon.Encounter
		lead pokemon.Lead
		rate float64
	}{
		{pokemon.OldRod, pokemon.LeadNone, 0.25},
		{pokemon.GoodRod, pokemon.LeadNone, 0.50},
		{pokemon.SuperRod, pokemon.LeadNone, 0.75},
		{pokemon.OldRod, pokemon.LeadSuctionCups, 1},
	} {
		gen, err := NewWildGenerator(pokemon.Options{MaxAdvances: 3999, Lead: tc.lead}, pokemon.MethodJ, platinum(), &filter)
		require.NoError(t, err)
		states := gen.Generate(99, waterArea(tc.e))
		assert.InDelta(t, tc.rate, float64(len(states))/4000, 0.03, "%d", tc.e)
	}
}

func TestRodsUseFiveSlots(t *testing.T) {
	filter := pokemon.NewFilter()
	for _, tc := range []struct {
		e      pokemon.Encounter
		shares [5]float64
	}{
		{pokemon.OldRod, [5]float64{0.60, 0.30, 0.05, 0.04, 0.01}},
		{pokemon.GoodRod, [5]float64{0.40, 0.40, 0.15, 0.04, 0.01}},
		{pokemon.SuperRod, [5]float64{0.40, 0.40, 0.15, 0.04, 0.01}},
	} {
		for _, method := range []pokemon.Method{pokemon.MethodJ, pokemon.MethodK} {
			opts := pokemon.Options{MaxAdvances: 19999, Lead: pokemon.LeadSuctionCups}
			gen, err := NewWildGenerator(opts, method, profileFor(method), &filter)
			require.NoError(t, err)
			states := gen.Generate(0x1234abcd, waterArea(tc.e))
			require.Len(t, states, 20000, "suction cups always hooks")
			var counts [5]int
			for i := range states {
				counts[states[i].EncounterSlot()]++
			}
			for slot, share := range tc.shares {
				assert.Positive(t, counts[slot], "%v %d slot %d", method, tc.e, slot)
				assert.InDelta(t, share, float64(counts[slot])/20000, 0.02, "%v %d slot %d", method, tc.e, slot)
			}
		}
	}
}

func TestGrassLevelsAreFixed(t *testing.T) {
	filter := pokemon.NewFilter()
	gen, err := NewWildGenerator(pokemon.Options{MaxAdvances: 300}, pokemon.MethodK, heartGold(), &filter)
	require.NoError(t, err)
	area := grassArea()
	for _, s := range gen.Generate(5, area) {
		assert.Equal(t, area.Slot(s.EncounterSlot()).MinLevel, s.Level())
	}
}

func TestWildItems(t *testing.T) {
	filter := pokemon.NewFilter()
	area := grassArea()
	count := func(lead pokemon.Lead) (held, total int) {
		gen, err := NewWildGenerator(pokemon.Options{MaxAdvances: 5999, Lead: lead}, pokemon.MethodJ, platinum(), &filter)
		require.NoError(t, err)
		for _, s := range gen.Generate(1234, area) {
			if s.Specie() != 427 {
				continue
			}
			total++
			if s.Item() == 247 {
				held++
			}
		}
		return held, total
	}
	held, total := count(pokemon.LeadNone)
	assert.InDelta(t, 0.55, float64(held)/float64(total), 0.05)
	held, total = count(pokemon.LeadCompoundEyes)
	assert.InDelta(t, 0.80, float64(held)/float64(total), 0.05)
}

func TestEggHeldPhaseFollowsTwister(t *testing.T) {
	filter := pokemon.NewFilter()
	daycare := Daycare{ParentIVs: [2][6]uint8{{31, 31, 31, 31, 31, 31}, {}}, Info: buneary}
	gen, err := NewEggGenerator(pokemon.Options{InitialAdvances: 3, MaxAdvances: 20}, pokemon.Options{}, platinum(), &filter, daycare)
	require.NoError(t, err)

	mt := rng.NewMT(0xc0ffee)
	mt.Advance(3)
	held := gen.GenerateHeld(0xc0ffee)
	require.Len(t, held, 21)
	for i, h := range held {
		assert.Equal(t, uint32(3+i), h.Advances())
		assert.Equal(t, mt.Next(), h.PID())
	}
}

func TestMasudaRaisesShinyOdds(t *testing.T) {
	filter := pokemon.NewFilter()
	profile := heartGold()
	shinies := func(masuda bool) int {
		gen, err := NewEggGenerator(pokemon.Options{MaxAdvances: 49999}, pokemon.Options{}, profile, &filter,
			Daycare{Masuda: masuda, Info: buneary})
		require.NoError(t, err)
		n := 0
		for _, h := range gen.GenerateHeld(0x1357) {
			if pokemon.IsShiny(h.PID(), profile.TSV()) {
				n++
			}
		}
		return n
	}
	plain, masuda := shinies(false), shinies(true)
	// 1/8192 against roughly 5/8192
	assert.Less(t, plain, 20)
	assert.Greater(t, masuda, 2*plain)
}

func TestEggInheritance(t *testing.T) {
	filter := pokemon.NewFilter()
	daycare := Daycare{ParentIVs: [2][6]uint8{{31, 31, 31, 31, 31, 31}, {30, 30, 30, 30, 30, 30}}, Info: buneary}
	for _, profile := range []*pokemon.Profile{platinum(), heartGold()} {
		gen, err := NewEggGenerator(pokemon.Options{MaxAdvances: 2}, pokemon.Options{MaxAdvances: 99}, profile, &filter, daycare)
		require.NoError(t, err)
		eggs := gen.Generate(1, 2)
		require.Len(t, eggs, 300)
		for _, egg := range eggs {
			inherited := 0
			for stat, from := range egg.Inheritance() {
				switch from {
				case pokemon.InheritParentA:
					inherited++
					assert.Equal(t, uint8(31), egg.IV(stat))
				case pokemon.InheritParentB:
					inherited++
					assert.Equal(t, uint8(30), egg.IV(stat))
				}
			}
			assert.Equal(t, 3, inherited)
			assert.Equal(t, uint8(1), egg.Level())
		}
	}
}

func TestSeedTimeRoundTrip(t *testing.T) {
	when := time.Date(2009, time.May, 14, 13, 22, 41, 0, time.UTC)
	boot := MakeSeed(when, 600)
	assert.Equal(t, uint32(133)<<24|13<<16|609, boot)

	delay, ok := Delay(boot, 2009)
	require.True(t, ok)
	assert.Equal(t, uint32(600), delay)
	assert.Contains(t, DateTimes(boot, 2009), when)

	e := rng.NewPokeRNG(boot)
	e.Advance(50)
	seeds := InitialSeeds(e.Seed(), 100, 2009, 500, 700)
	assert.Contains(t, seeds, SeedTime{Seed: boot, Advances: 50})
	for _, st := range seeds {
		d, ok := Delay(st.Seed, 2009)
		require.True(t, ok)
		assert.GreaterOrEqual(t, d, uint32(500))
		assert.LessOrEqual(t, d, uint32(700))
	}
}

func TestDelayRejectsImpossibleSeeds(t *testing.T) {
	_, ok := Delay(0x00180000, 2009)
	assert.False(t, ok, "hour 24")
	_, ok = Delay(0x00170005, 2009)
	assert.False(t, ok, "delay below the year offset")
	assert.Empty(t, DateTimes(0xffffffff, 2009))
}

// drawLimit caps the draws one encounter may take in these tests. A redraw loop past it
// fails the test instead of hanging it.
const drawLimit = 10000

// requireBoundedStep runs step on a copy of start and fails when it does not return
// within a few seconds or takes more than drawLimit draws.
func requireBoundedStep(t *testing.T, start rng.LCRNG, step func(e *rng.LCRNG)) {
	t.Helper()
	e := start
	done := make(chan struct{})
	go func() {
		defer close(done)
		step(&e)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "redraw loop did not finish", "seed %08x", start.Seed())
	}
	require.LessOrEqual(t, rng.Distance(start, e.Seed()), uint32(drawLimit), "seed %08x", start.Seed())
}

func TestRedrawLoopsAreBounded(t *testing.T) {
	filter := pokemon.NewFilter()
	tpl := &pokemon.StaticTemplate{Specie: 399, Level: 30, Info: bidoof}
	area := grassArea()
	var steps []func(e *rng.LCRNG)
	for _, method := range []pokemon.Method{pokemon.MethodJ, pokemon.MethodK} {
		for _, lead := range []pokemon.Lead{pokemon.LeadNone, pokemon.LeadSynchronize, pokemon.LeadCuteCharmMale, pokemon.LeadCuteCharmFemale} {
			opts := pokemon.Options{Lead: lead, SynchNature: 7}
			static, err := NewStaticGenerator(opts, method, profileFor(method), &filter)
			require.NoError(t, err)
			wild, err := NewWildGenerator(opts, method, profileFor(method), &filter)
			require.NoError(t, err)
			steps = append(steps,
				func(e *rng.LCRNG) { static.step(e, tpl) },
				func(e *rng.LCRNG) { wild.step(e, area) })
		}
	}
	for i := range uint32(500) {
		for _, step := range steps {
			requireBoundedStep(t, rng.NewPokeRNG(i*0x9e3779b9), step)
		}
	}
}
