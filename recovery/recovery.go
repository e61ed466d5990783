// Package recovery inverts a 32-bit LCG step: given the visible upper bits of two outputs
// it lists every state that produces them, without enumerating the 2^16 unknown low bits.
//
// The unknown low half L of the first state contributes mult*L (mod 2^32) to the second
// state. A calibration step k with r = mult*k mod 2^32 < 2^16 splits [0, 2^16) into
// cosets L = x0 + j*k along which mult*L grows by r. The bin floor(mult*x0 mod 2^32 * k /
// 2^32) is congruent to q*x0 (mod k) with q = floor(mult*k / 2^32), so the cosets able to
// reach the target window are computed analytically from the window position. Only a
// handful of candidates per call are checked, each against the full step equation.
package recovery

import (
	"fmt"
	"math/bits"

	"github.com/TomTonic/seedfinder/rng"
)

// Recoverer holds a calibration for one LCG and one spacing between the two observed
// outputs. It is built once and shared read-only by every worker of a search.
type Recoverer struct {
	mult, add   uint32 // map from the first observed state to the second
	back        rng.LCRNG
	step        uint32 // coset step k
	inv         uint32 // q^-1 mod k
	r           uint32 // mult*k mod 2^32
	jmax        uint32 // coset members beyond x0 inside [0, 2^16)
	bins        uint32 // bins needed to cover one target window
	maxPerPoint int
}

// NewRecoverer calibrates recovery for the engine prototype e when the second observed
// output is gap+1 steps after the first (gap blank draws in between).
func NewRecoverer(e rng.LCRNG, gap uint32) (*Recoverer, error) {
	mult, add := uint32(1), uint32(0)
	m, a := e.Mult(), e.Add()
	for range gap + 1 {
		mult *= m
		add = add*m + a
	}
	c := &Recoverer{mult: mult, add: add, back: e.Reverse()}
	if err := c.calibrate(); err != nil {
		return nil, err
	}
	return c, nil
}

// PokeRNG recovers consecutive IV words of the handheld generator (Methods 1, 2, H1, H2,
// J, K and the generation 4 statics).
func PokeRNG() *Recoverer { return mustRecoverer(rng.NewPokeRNG(0), 0) }

// PokeRNGSkip recovers IV words separated by one blank draw (Methods 4 and H4).
func PokeRNGSkip() *Recoverer { return mustRecoverer(rng.NewPokeRNG(0), 1) }

// XDRNG recovers consecutive IV words of Colosseum and XD.
func XDRNG() *Recoverer { return mustRecoverer(rng.NewXDRNG(0), 0) }

func mustRecoverer(e rng.LCRNG, gap uint32) *Recoverer {
	c, err := NewRecoverer(e, gap)
	if err != nil {
		panic(err)
	}
	return c
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// calibrate picks the step with the fewest candidate checks per window.
func (c *Recoverer) calibrate() error {
	best := ^uint32(0)
	for k := uint32(2); k < 0x10000; k++ {
		hi, lo := bits.Mul32(c.mult, k)
		if lo >= 0x10000 || uint64(lo)*uint64(k) >= 1<<32 || gcd(hi%k, k) != 1 {
			continue
		}
		jmax := 0xffff / k
		width := uint64(0x10000) + uint64(jmax)*uint64(lo)
		bins := uint32(width*uint64(k)>>32) + 2
		cost := bins * (jmax + 1)
		if cost < best {
			best = cost
			c.step, c.r, c.jmax, c.bins = k, lo, jmax, bins
			c.inv = modInverse(hi%k, k)
		}
	}
	if best == ^uint32(0) {
		return fmt.Errorf("recovery: no calibration for multiplier %#08x", c.mult)
	}
	// two unknown top bits of the first word times two of the second, each window
	// checking at most bins*(jmax+1) low halves
	c.maxPerPoint = int(4 * best)
	return nil
}

func modInverse(a, m uint32) uint32 {
	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(a)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += int64(m)
	}
	return uint32(t)
}

// MaxCandidates is the capacity bound of a single RecoverIVs or RecoverPID call.
func (c *Recoverer) MaxCandidates() int { return c.maxPerPoint }

// Step returns the calibration step, exposed for diagnostics.
func (c *Recoverer) Step() uint32 { return c.step }

// window appends to dst every first state f<<16|L whose successor has upper half t.
func (c *Recoverer) window(f, t uint16, dst []uint32) []uint32 {
	high := uint32(f) << 16
	lo := uint32(t)<<16 - c.mult*high - c.add
	start := lo - c.jmax*c.r
	b0 := uint32(uint64(start) * uint64(c.step) >> 32)
	for i := range c.bins {
		b := (b0 + i) % c.step
		x0 := uint32(uint64(b) * uint64(c.inv) % uint64(c.step))
		for low := x0; low < 0x10000; low += c.step {
			seed := high | low
			if uint16((seed*c.mult+c.add)>>16) == t {
				dst = append(dst, seed)
			}
		}
	}
	return dst
}

// RecoverIVs appends every seed from which the next output holds the HP/Atk/Def word and
// the output after the calibrated gap holds the Spe/SpA/SpD word of ivs (order HP, Atk,
// Def, SpA, SpD, Spe). Bit 15 of both words is free, so each match appears with both
// top-bit twins.
func (c *Recoverer) RecoverIVs(ivs [6]uint8, dst []uint32) []uint32 {
	first := uint16(ivs[0]) | uint16(ivs[1])<<5 | uint16(ivs[2])<<10
	second := uint16(ivs[5]) | uint16(ivs[3])<<5 | uint16(ivs[4])<<10
	n := len(dst)
	for _, f := range [2]uint16{first, first | 0x8000} {
		for _, t := range [2]uint16{second, second | 0x8000} {
			dst = c.window(f, t, dst)
		}
	}
	c.rewind(dst[n:])
	return dst
}

// RecoverPID appends every seed whose next two outputs are first and second in full.
func (c *Recoverer) RecoverPID(first, second uint16, dst []uint32) []uint32 {
	n := len(dst)
	dst = c.window(first, second, dst)
	c.rewind(dst[n:])
	return dst
}

// rewind turns states that produced the first output into the seeds before it.
func (c *Recoverer) rewind(states []uint32) {
	mult, add := c.back.Mult(), c.back.Add()
	for i, s := range states {
		states[i] = s*mult + add
	}
}
