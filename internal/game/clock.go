package game

import "time"

// Clock supplies the current time, injected so tests can control the
// game's time-limit checks
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
