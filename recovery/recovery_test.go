package recovery

import (
	"testing"

	set3 "github.com/TomTonic/Set3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomTonic/seedfinder/rng"
)

func ivsOf(iv1, iv2 uint16) [6]uint8 {
	return [6]uint8{
		uint8(iv1 & 31), uint8((iv1 >> 5) & 31), uint8((iv1 >> 10) & 31),
		uint8((iv2 >> 5) & 31), uint8((iv2 >> 10) & 31), uint8(iv2 & 31),
	}
}

func drawIVs(e rng.LCRNG, gap uint32) [6]uint8 {
	iv1 := e.NextUint16()
	e.Advance(gap)
	iv2 := e.NextUint16()
	return ivsOf(iv1, iv2)
}

func TestRecoverIVsFindsGeneratingSeed(t *testing.T) {
	cases := []struct {
		name  string
		c     *Recoverer
		proto func(uint32) rng.LCRNG
		gap   uint32
	}{
		{"PokeRNG", PokeRNG(), rng.NewPokeRNG, 0},
		{"PokeRNGSkip", PokeRNGSkip(), rng.NewPokeRNG, 1},
		{"XDRNG", XDRNG(), rng.NewXDRNG, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := rng.NewXorshift(0x1111, 0x2222)
			for range 2000 {
				seed := src.Next()
				ivs := drawIVs(tc.proto(seed), tc.gap)
				got := tc.c.RecoverIVs(ivs, nil)
				assert.Contains(t, got, seed)
				assert.LessOrEqual(t, len(got), tc.c.MaxCandidates())
				for _, s := range got {
					assert.Equal(t, ivs, drawIVs(tc.proto(s), tc.gap), "seed %#08x", s)
				}
			}
		})
	}
}

func TestRecoverIVsHasNoDuplicates(t *testing.T) {
	c := PokeRNG()
	for hp := uint8(0); hp < 32; hp++ {
		got := c.RecoverIVs([6]uint8{hp, 31, 31, 31, 31, 31}, nil)
		seen := set3.EmptyWithCapacity[uint32](uint32(len(got)))
		for _, s := range got {
			seen.Add(s)
		}
		assert.Equal(t, len(got), int(seen.Size()))
	}
}

func TestRecoverIVsAllMaxCount(t *testing.T) {
	// Exhaustive reference counts for the 6x31 spread, obtained by enumerating all 2^32 seeds.
	assert.Len(t, PokeRNG().RecoverIVs([6]uint8{31, 31, 31, 31, 31, 31}, nil), 6)
	assert.Len(t, PokeRNGSkip().RecoverIVs([6]uint8{31, 31, 31, 31, 31, 31}, nil), 4)
	assert.Len(t, XDRNG().RecoverIVs([6]uint8{31, 31, 31, 31, 31, 31}, nil), 6)
}

func TestRecoverIVsAppends(t *testing.T) {
	c := XDRNG()
	dst := []uint32{0xdeadbeef}
	dst = c.RecoverIVs([6]uint8{31, 31, 31, 31, 31, 31}, dst)
	require.NotEmpty(t, dst)
	assert.Equal(t, uint32(0xdeadbeef), dst[0])
}

func TestRecoverPID(t *testing.T) {
	c := PokeRNG()
	src := rng.NewXorshift(5, 6)
	for range 2000 {
		seed := src.Next()
		e := rng.NewPokeRNG(seed)
		hi := e.NextUint16()
		lo := e.NextUint16()
		got := c.RecoverPID(hi, lo, nil)
		assert.Contains(t, got, seed)
		for _, s := range got {
			f := rng.NewPokeRNG(s)
			assert.Equal(t, hi, f.NextUint16())
			assert.Equal(t, lo, f.NextUint16())
		}
	}
}

func TestCalibration(t *testing.T) {
	assert.Equal(t, uint32(26579), PokeRNG().Step())
	assert.Equal(t, uint32(20069), XDRNG().Step())
	assert.Equal(t, 24, PokeRNG().MaxCandidates())
}

// natureLoop draws two prefix words, a nature and (low, high) pairs until the PID has that
// nature, then gap blank words.
func natureLoop(e *rng.LCRNG, gap uint32) {
	e.Advance(2)
	nature := e.NextUint16() % 25
	for {
		low := uint32(e.NextUint16())
		high := uint32(e.NextUint16())
		if uint16((high<<16|low)%25) == nature {
			break
		}
	}
	e.Advance(gap)
}

func TestPIDLoopWindowContainsOrigin(t *testing.T) {
	sameNature := func(accepted, pid uint32) bool { return accepted%25 == pid%25 }
	src := rng.NewXorshift(77, 88)
	for _, gap := range []uint32{0, 1} {
		for range 500 {
			origin := src.Next()
			e := rng.NewPokeRNG(origin)
			natureLoop(&e, gap)
			window := PIDLoopWindow(rng.NewPokeRNGR(e.Seed()), gap, 3, sameNature)
			require.Contains(t, window, origin, "gap %d", gap)
		}
	}
}
