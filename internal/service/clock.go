package service

import "time"

// Clock supplies the current time to services that stamp records or compare
// calendar dates.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

func utcDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
