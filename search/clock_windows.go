//go:build windows

package search

import (
	"time"

	"golang.org/x/sys/windows"
)

// stamp is a performance counter reading. The coarse Windows wall clock cannot time
// slices that finish in microseconds.
type stamp int64

var ticksPerSecond = func() int64 {
	var f int64
	if err := windows.QueryPerformanceFrequency(&f); err != nil {
		panic(err)
	}
	return f
}()

func now() stamp {
	var c int64
	_ = windows.QueryPerformanceCounter(&c)
	return stamp(c)
}

func since(s stamp) time.Duration {
	ticks := int64(now() - s)
	sec, rem := ticks/ticksPerSecond, ticks%ticksPerSecond
	return time.Duration(sec)*time.Second + time.Duration(rem*int64(time.Second)/ticksPerSecond)
}
