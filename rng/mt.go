package rng

const (
	mtSize      = 624
	mtShift     = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// MT is the 32-bit Mersenne Twister (MT19937). Unlike the other engines it carries 2.5 KB
// of state, so generators that need a window of outputs draw them once into a slice.
type MT struct {
	state [mtSize]uint32
	index int
}

// NewMT seeds the twister the way the reference implementation does.
func NewMT(seed uint32) *MT {
	m := &MT{}
	m.state[0] = seed
	for i := 1; i < mtSize; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtSize
	return m
}

func (m *MT) shuffle() {
	var i int
	for ; i < mtSize-mtShift; i++ {
		y := (m.state[i] & mtUpperMask) | (m.state[i+1] & mtLowerMask)
		m.state[i] = m.state[i+mtShift] ^ (y >> 1) ^ (mtMatrixA * (y & 1))
	}
	for ; i < mtSize-1; i++ {
		y := (m.state[i] & mtUpperMask) | (m.state[i+1] & mtLowerMask)
		m.state[i] = m.state[i+mtShift-mtSize] ^ (y >> 1) ^ (mtMatrixA * (y & 1))
	}
	y := (m.state[mtSize-1] & mtUpperMask) | (m.state[0] & mtLowerMask)
	m.state[mtSize-1] = m.state[mtShift-1] ^ (y >> 1) ^ (mtMatrixA * (y & 1))
	m.index = 0
}

// Next returns the next tempered output.
func (m *MT) Next() uint32 {
	if m.index >= mtSize {
		m.shuffle()
	}
	y := m.state[m.index]
	m.index++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Advance discards n outputs.
func (m *MT) Advance(n uint32) {
	for n > 0 {
		if m.index >= mtSize {
			m.shuffle()
		}
		step := uint32(mtSize - m.index)
		if step > n {
			step = n
		}
		m.index += int(step)
		n -= step
	}
}
