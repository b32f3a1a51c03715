// Package gametime keeps the in-game clock.
package gametime

import "fmt"

const (
	minutesPerDay = 1440

	// Minutes added to the clock for each accepted overworld step.
	minutesPerStep = 2
)

// Band is a named segment of the day.
type Band string

const (
	Dawn  Band = "Dawn"
	Day   Band = "Day"
	Dusk  Band = "Dusk"
	Night Band = "Night"
)

// Clock tracks minutes since midnight plus elapsed days.
type Clock struct {
	minutes float64
	day     int
	rate    float64
}

// NewClock starts at the given minute of day one, advancing rate
// game-minutes per real second when ticked.
func NewClock(startMinute int, rate float64) *Clock {
	c := &Clock{rate: rate}
	c.Advance(startMinute)
	return c
}

// Minute returns the whole minute of day, in [0, 1440).
func (c *Clock) Minute() int {
	return int(c.minutes)
}

// Day returns the elapsed day count, starting at 0.
func (c *Clock) Day() int {
	return c.day
}

// Advance moves the clock forward, rolling over as many midnights as
// the amount crosses. Negative amounts are ignored.
func (c *Clock) Advance(minutes int) {
	if minutes < 0 {
		return
	}
	c.minutes += float64(minutes)
	for c.minutes >= minutesPerDay {
		c.minutes -= minutesPerDay
		c.day++
	}
}

// Tick advances the clock by dt real seconds at the configured rate.
func (c *Clock) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	c.minutes += dt * c.rate
	for c.minutes >= minutesPerDay {
		c.minutes -= minutesPerDay
		c.day++
	}
}

// OnPlayerStep advances the clock by the per-step cost.
func (c *Clock) OnPlayerStep() {
	c.Advance(minutesPerStep)
}

// Band returns the segment of day the clock currently falls in.
func (c *Clock) Band() Band {
	m := c.Minute()
	switch {
	case m >= 300 && m < 480:
		return Dawn
	case m >= 480 && m < 1080:
		return Day
	case m >= 1080 && m < 1260:
		return Dusk
	default:
		return Night
	}
}

// HHMM formats the clock as a 24-hour time string.
func (c *Clock) HHMM() string {
	m := c.Minute()
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Restore sets the clock to a saved state.
func (c *Clock) Restore(minute int, day int) {
	c.minutes = float64(minute % minutesPerDay)
	c.day = day
}
