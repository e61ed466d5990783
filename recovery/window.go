package recovery

import "github.com/TomTonic/seedfinder/rng"

// PIDLoopWindow lists the states from which a generation could have started when it
// ends with a rejection loop over (low, high) PID pairs, followed by gap words, right
// before the state back is seeded at. back must be a reverse engine.
//
// Walking backwards over earlier pairs, the first pair that stop reports as acceptable
// bounds the loop: the game would have kept that PID instead. Every state between the
// loop's possible starting points and prefix further draws is returned, nearest first.
// Callers confirm each candidate by replaying their forward routine.
func PIDLoopWindow(back rng.LCRNG, gap, prefix uint32, stop func(accepted, pid uint32) bool) []uint32 {
	states := []uint32{back.Seed()}
	at := func(i int) uint32 {
		for len(states) <= i {
			states = append(states, back.Next())
		}
		return states[i]
	}
	pair := func(m int) uint32 {
		g := int(gap) + 2*m
		return at(g)&0xffff0000 | at(g+1)>>16
	}

	accepted := pair(0)
	m := 1
	for !stop(accepted, pair(m)) {
		m++
	}
	first := int(gap) + 2
	last := first + 2*(m-1) + int(prefix)
	at(last)
	return states[first : last+1]
}
