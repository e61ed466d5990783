package rng

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/bits"
)

// Entropy draws starting seeds and trainer IDs from crypto/rand. Generators never read
// from it. An Entropy must not be shared between goroutines.
type Entropy struct {
	r   *bufio.Reader
	buf [8]byte
}

// NewEntropy returns a source that reads ahead n bytes at a time.
func NewEntropy(n int) *Entropy {
	return &Entropy{r: bufio.NewReaderSize(rand.Reader, max(n, 16))}
}

func (e *Entropy) fill(n int) []byte {
	if _, err := io.ReadFull(e.r, e.buf[:n]); err != nil {
		panic(err)
	}
	return e.buf[:n]
}

// Uint64 returns a full 64-bit seed.
func (e *Entropy) Uint64() uint64 {
	return binary.LittleEndian.Uint64(e.fill(8))
}

// Uint32 returns a full 32-bit seed.
func (e *Entropy) Uint32() uint32 {
	return binary.LittleEndian.Uint32(e.fill(4))
}

// Uint32N returns a uniform value below n, or 0 when n is 0. Draws above the largest
// multiple of n are rejected.
func (e *Entropy) Uint32N(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return e.Uint32() & (n - 1)
	}
	mask := uint32(1)<<bits.Len32(n) - 1
	for {
		if v := e.Uint32() & mask; v < n {
			return v
		}
	}
}
