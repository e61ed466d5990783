package rng

import "math/bits"

// xoroshiroConst is the fixed second state word of Sword/Shield's generator.
const xoroshiroConst uint64 = 0x82a2b175229d6a5b

// Xoroshiro is the xoroshiro128+ generator as used by Sword/Shield.
type Xoroshiro struct {
	state [2]uint64
}

// NewXoroshiro seeds the generator the way Sword/Shield does: the second word is fixed.
func NewXoroshiro(seed uint64) Xoroshiro {
	return Xoroshiro{state: [2]uint64{seed, xoroshiroConst}}
}

// Next returns the next 64-bit output.
func (x *Xoroshiro) Next() uint64 {
	s0, s1 := x.state[0], x.state[1]
	result := s0 + s1
	s1 ^= s0
	x.state[0] = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.state[1] = bits.RotateLeft64(s1, 37)
	return result
}

// NextUint32 returns the low half of the next output.
func (x *Xoroshiro) NextUint32() uint32 {
	return uint32(x.Next())
}

// NextBounded draws in [0, max) by masking to the next power of two and rejecting
// values that are too large, as the game does.
func (x *Xoroshiro) NextBounded(max uint32) uint32 {
	mask := bitMask(max - 1)
	for {
		r := uint32(x.Next()) & mask
		if r < max {
			return r
		}
	}
}

// Advance discards n outputs.
func (x *Xoroshiro) Advance(n uint32) {
	for range n {
		x.Next()
	}
}

// bitMask returns the smallest all-ones mask covering v.
func bitMask(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return ^uint32(0) >> bits.LeadingZeros32(v)
}

// XoroshiroBDSP is the xoroshiro128+ variant Brilliant Diamond/Shining Pearl uses to
// generate a Pokémon from a 32-bit seed expanded through splitmix64.
type XoroshiroBDSP struct {
	Xoroshiro
}

// NewXoroshiroBDSP expands seed into the 128-bit state.
func NewXoroshiroBDSP(seed uint32) XoroshiroBDSP {
	s := uint64(seed)
	return XoroshiroBDSP{Xoroshiro{state: [2]uint64{
		splitMix64(s + 0x9e3779b97f4a7c15),
		splitMix64(s + 0x3c6ef372fe94f82a),
	}}}
}

// Next returns the upper half of the next output.
func (x *XoroshiroBDSP) Next() uint32 {
	return uint32(x.Xoroshiro.Next() >> 32)
}

// NextMod returns Next() % max.
func (x *XoroshiroBDSP) NextMod(max uint32) uint32 {
	return x.Next() % max
}
