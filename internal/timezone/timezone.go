package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Resolve returns the viewer's location, then the fallback, then the
// package default.
func Resolve(tz, fallback string) *time.Location {
	for _, name := range []string{tz, fallback, DefaultTimezone} {
		if !IsValid(name) {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

func Location(tz string) *time.Location {
	return Resolve(tz, DefaultTimezone)
}
