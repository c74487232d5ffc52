package location

import (
	"sync/atomic"
	"time"
)

// DefaultZone is the union's home time zone.
const DefaultZone = "Africa/Windhoek"

var current atomic.Pointer[time.Location]

// Set loads the named zone and makes it the application location.
func Set(name string) error {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	current.Store(loc)
	return nil
}

// Location returns the configured location, falling back to DefaultZone and then UTC.
func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	loc, err := time.LoadLocation(DefaultZone)
	if err != nil {
		return time.UTC
	}
	current.CompareAndSwap(nil, loc)
	return loc
}
