package addressbook

import "time"

// Clock tells the assistant what day it is. Tests pin it to a fixed date.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in local time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
