package gen3

import (
	"github.com/TomTonic/seedfinder/pokemon"
	"github.com/TomTonic/seedfinder/rng"
)

// shadowVariant holds the constants that distinguish the lock chain variants.
type shadowVariant struct {
	gap          uint32 // blank words before each member's IVs
	ignoredWords uint32 // words an already known shadow member consumes
	lockShiny    bool   // team PIDs shiny for the trainer are redrawn
	shadowShiny  bool   // the shadow's own PID is redrawn when shiny
}

var shadowVariants = [...]shadowVariant{
	pokemon.SingleLock:           {gap: 2, ignoredWords: 5, lockShiny: true},
	pokemon.FirstShadow:          {gap: 2, ignoredWords: 5, lockShiny: true},
	pokemon.FirstShadowShinySkip: {gap: 2, ignoredWords: 5, lockShiny: true, shadowShiny: true},
	pokemon.SecondShadowSet:      {gap: 2, ignoredWords: 5, lockShiny: true},
	pokemon.SecondShadowUnset:    {gap: 2, ignoredWords: 7, lockShiny: true},
	pokemon.EReader:              {gap: 0, ignoredWords: 5},
}

// ShadowLock replays and inverts the team generation that precedes a shadow Pokémon.
// Every non ignored member draws gap blank words, two IV words and an ability word, then
// redraws (high, low) PID pairs until its lock accepts one.
type ShadowLock struct {
	tpl *pokemon.ShadowTemplate
	v   shadowVariant
	tsv uint16
}

func NewShadowLock(tpl *pokemon.ShadowTemplate, tsv uint16) *ShadowLock {
	return &ShadowLock{tpl: tpl, v: shadowVariants[tpl.Type], tsv: tsv}
}

func (l *ShadowLock) accept(i int, pid uint32) bool {
	if !l.tpl.Lock(i).Compare(pid) {
		return false
	}
	return !l.v.lockShiny || !pokemon.IsShiny(pid, l.tsv)
}

// Forward generates the team from e and leaves e right before the shadow's first IV
// word. It returns that state.
func (l *ShadowLock) Forward(e *rng.LCRNG) uint32 {
	for i := range l.tpl.Count() {
		if l.tpl.Lock(i).Ignore {
			e.Advance(l.v.ignoredWords)
			continue
		}
		e.Advance(l.v.gap + 3)
		for {
			high := uint32(e.NextUint16())
			low := uint32(e.NextUint16())
			if l.accept(i, high<<16|low) {
				break
			}
		}
	}
	e.Advance(l.v.gap)
	return e.Seed()
}

func rewindXD(x, n uint32) uint32 {
	r := rng.NewXDRNGR(x)
	r.Advance(n)
	return r.Seed()
}

// pairBefore reads the PID pair that ends at x and returns it with the state before it.
func pairBefore(x uint32) (uint32, uint32) {
	r := rng.NewXDRNGR(x)
	low := x >> 16
	high := r.Next() >> 16
	return high<<16 | low, r.Next()
}

// walk collects the possible team origins given that member i's block ends at x. The
// last pair of a block is the accepted PID; earlier pairs of the same loop were rejected,
// so the first acceptable pair found walking back bounds where the loop began.
func (l *ShadowLock) walk(i int, x uint32, out []uint32) []uint32 {
	if i < 0 {
		return append(out, x)
	}
	if l.tpl.Lock(i).Ignore {
		return l.walk(i-1, rewindXD(x, l.v.ignoredWords), out)
	}
	pid, cur := pairBefore(x)
	if !l.accept(i, pid) {
		return out
	}
	for {
		out = l.walk(i-1, rewindXD(cur, l.v.gap+3), out)
		pid, before := pairBefore(cur)
		if l.accept(i, pid) {
			return out
		}
		cur = before
	}
}

// Origins lists every seed from which the team generation ends at pivot, the state
// before the shadow's IV words. Each origin found walking backward is confirmed by
// running Forward from it.
func (l *ShadowLock) Origins(pivot uint32) []uint32 {
	candidates := l.walk(l.tpl.Count()-1, rewindXD(pivot, l.v.gap), nil)
	out := candidates[:0]
	for _, origin := range candidates {
		e := rng.NewXDRNG(origin)
		if l.Forward(&e) == pivot {
			out = append(out, origin)
		}
	}
	return out
}

// Verify reports whether any team generation ends at pivot.
func (l *ShadowLock) Verify(pivot uint32) bool {
	return len(l.Origins(pivot)) > 0
}
