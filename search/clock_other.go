//go:build !windows

package search

import "time"

// stamp is a point on the monotonic clock.
type stamp time.Time

func now() stamp { return stamp(time.Now()) }

func since(s stamp) time.Duration { return time.Since(time.Time(s)) }
