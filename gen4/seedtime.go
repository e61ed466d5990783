package gen4

import (
	"time"

	"github.com/TomTonic/seedfinder/rng"
)

// A boot seed packs the clock and the frame delay the player waits before continuing:
//
//	seed = (month*day + minute + second) << 24 + hour << 16 + delay + (year - 2000)
//
// Delays that carry into the hour byte are not produced by the game and are rejected.

// MakeSeed is the boot seed of the given local time and delay.
func MakeSeed(t time.Time, delay uint32) uint32 {
	ab := uint32(t.Month())*uint32(t.Day()) + uint32(t.Minute()) + uint32(t.Second())
	return ab<<24 + uint32(t.Hour())<<16 + delay + uint32(t.Year()-2000)
}

// Delay returns the delay encoded in seed for year, and false when seed is not a boot
// seed of that year.
func Delay(seed uint32, year int) (uint32, bool) {
	if (seed>>16)&0xff >= 24 || year < 2000 {
		return 0, false
	}
	low, offset := seed&0xffff, uint32(year-2000)
	if low < offset {
		return 0, false
	}
	return low - offset, true
}

// SeedTime is a boot seed together with the number of advances from it to the seed the
// caller started from.
type SeedTime struct {
	Seed     uint32
	Advances uint32
}

// InitialSeeds walks back at most maxAdvances steps from seed and returns every state
// that is a boot seed of year with a delay in [minDelay, maxDelay], nearest first.
func InitialSeeds(seed, maxAdvances uint32, year int, minDelay, maxDelay uint32) []SeedTime {
	var out []SeedTime
	back := rng.NewPokeRNGR(seed)
	s := seed
	for adv := uint32(0); ; adv++ {
		if d, ok := Delay(s, year); ok && d >= minDelay && d <= maxDelay {
			out = append(out, SeedTime{Seed: s, Advances: adv})
		}
		if adv == maxAdvances {
			return out
		}
		s = back.Next()
	}
}

// DateTimes lists every second of year whose clock produces the boot seed, in
// chronological order. Times are in UTC since the console clock has no zone.
func DateTimes(seed uint32, year int) []time.Time {
	if _, ok := Delay(seed, year); !ok {
		return nil
	}
	ab, hour := seed>>24, int((seed>>16)&0xff)
	var out []time.Time
	for month := time.January; month <= time.December; month++ {
		days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
		for day := 1; day <= days; day++ {
			for minute := 0; minute < 60; minute++ {
				for second := 0; second < 60; second++ {
					if (uint32(month)*uint32(day)+uint32(minute)+uint32(second))&0xff == ab {
						out = append(out, time.Date(year, month, day, hour, minute, second, 0, time.UTC))
					}
				}
			}
		}
	}
	return out
}
