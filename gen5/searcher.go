package gen5

import (
	"context"
	"fmt"
	"time"

	"github.com/TomTonic/seedfinder/search"
)

// SeedResult is a generated state together with the boot configuration that seeds it.
type SeedResult[T any] struct {
	State    T
	Seed     uint64
	DateTime time.Time
	Timer0   uint16
	Keypress Keypress
}

// Searcher sweeps dates, times, timer0 values and held keys, hashes each configuration
// and runs a generator on the resulting seed. The work is split per minute.
type Searcher[T any] struct {
	*search.Runner[SeedResult[T]]
	hasher     *SeedHasher
	profile    *Profile5
	keypresses []Keypress
}

// NewSearcher prepares a sweep over keypresses. An empty list means no key is held.
func NewSearcher[T any](profile *Profile5, keypresses []Keypress, config search.Config) (*Searcher[T], error) {
	h, err := NewSeedHasher(profile)
	if err != nil {
		return nil, err
	}
	if profile.Timer0Min > profile.Timer0Max {
		return nil, fmt.Errorf("gen5 profile %q: timer0 range %#x-%#x is empty", profile.Name, profile.Timer0Min, profile.Timer0Max)
	}
	if len(keypresses) == 0 {
		keypresses = []Keypress{0}
	}
	for _, k := range keypresses {
		if !k.Valid() {
			return nil, fmt.Errorf("gen5 keypress %#x cannot be registered", uint16(k))
		}
	}
	return &Searcher[T]{
		Runner:     search.NewRunner[SeedResult[T]](config),
		hasher:     h,
		profile:    profile,
		keypresses: keypresses,
	}, nil
}

// Search hashes every second in [start, end) and collects what generate returns for
// each seed. start is truncated to the minute.
func (s *Searcher[T]) Search(ctx context.Context, start, end time.Time, generate func(seed uint64) []T) error {
	start = start.Truncate(time.Minute)
	if !end.After(start) {
		return nil
	}
	minutes := int((end.Sub(start) + time.Minute - 1) / time.Minute)
	return s.Run(ctx, minutes, func(i int, dst []SeedResult[T]) []SeedResult[T] {
		minute := start.Add(time.Duration(i) * time.Minute)
		for sec := 0; sec < 60; sec++ {
			t := minute.Add(time.Duration(sec) * time.Second)
			if !t.Before(end) {
				break
			}
			for timer0 := uint32(s.profile.Timer0Min); timer0 <= uint32(s.profile.Timer0Max); timer0++ {
				for _, keys := range s.keypresses {
					seed := s.hasher.Seed(t, uint16(timer0), keys)
					for _, st := range generate(seed) {
						dst = append(dst, SeedResult[T]{State: st, Seed: seed, DateTime: t, Timer0: uint16(timer0), Keypress: keys})
					}
				}
			}
		}
		return dst
	})
}
