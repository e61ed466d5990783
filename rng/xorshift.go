package rng

// Xorshift is the 128-bit xorshift generator of Brilliant Diamond/Shining Pearl
// (see https://en.wikipedia.org/wiki/Xorshift).
// This random number generator is deterministic in the sequence of numbers it generates.
// This random number generator has a constant runtime per call.
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe.
// This random number generator has a very small memory footprint (16 bytes).
type Xorshift struct {
	state [4]uint32
}

// NewXorshift builds the state from the two 64-bit halves the games display.
func NewXorshift(seed0, seed1 uint64) Xorshift {
	return Xorshift{state: [4]uint32{
		uint32(seed0 >> 32), uint32(seed0),
		uint32(seed1 >> 32), uint32(seed1),
	}}
}

// State returns the two 64-bit halves in the same layout NewXorshift accepts.
func (x *Xorshift) State() (uint64, uint64) {
	return uint64(x.state[0])<<32 | uint64(x.state[1]), uint64(x.state[2])<<32 | uint64(x.state[3])
}

// Next returns the next pseudo-random number in the sequence.
func (x *Xorshift) Next() uint32 {
	t := x.state[0]
	s := x.state[3]
	t ^= t << 11
	t ^= t >> 8
	t ^= s ^ (s >> 19)
	x.state[0], x.state[1], x.state[2], x.state[3] = x.state[1], x.state[2], x.state[3], t
	return t
}

// NextRange returns a number in [min, max) the way the game reduces it: by modulo.
func (x *Xorshift) NextRange(min, max uint32) uint32 {
	return x.Next()%(max-min) + min
}

// Advance discards n outputs.
func (x *Xorshift) Advance(n uint32) {
	for range n {
		x.Next()
	}
}

// splitMix64 is the mixer XoroshiroBDSP uses to expand a 32-bit seed.
func splitMix64(v uint64) uint64 {
	v = (v ^ (v >> 30)) * 0xbf58476d1ce4e5b9
	v = (v ^ (v >> 27)) * 0x94d049bb133111eb
	return v ^ (v >> 31)
}
