// Package prefill resolves the booking form's initial values from URL query
// parameters, the cached last submission and hard defaults, in that order of
// precedence.
package prefill

import (
	"net/url"
	"time"
)

// DateLayout matches the datetime-local input format of the booking form.
const DateLayout = "2006-01-02T15:04"

// Form holds the booking fields as the strings they travel as in query
// parameters and the client-side cache.
type Form struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Departure  string `json:"departure"`
	Arrival    string `json:"arrival"`
	Stops      string `json:"stops"`
	Date       string `json:"date"`
	Passengers string `json:"passengers"`
	Luggages   string `json:"luggages"`
}

// DefaultDate is now plus one hour, rounded down to the hour.
func DefaultDate(now time.Time) string {
	return now.Add(time.Hour).Truncate(time.Hour).Format(DateLayout)
}

// Resolve merges URL parameters over cached values over defaults. The date is
// special-cased: a cached date in the past is discarded so a stale cache never
// blocks resubmission.
func Resolve(params url.Values, cached Form, now time.Time) Form {
	f := Form{
		Name:       pick(params.Get("name"), cached.Name),
		Phone:      pick(params.Get("phone"), cached.Phone),
		Departure:  pick(params.Get("departure"), cached.Departure),
		Arrival:    pick(params.Get("arrival"), cached.Arrival),
		Stops:      pick(params.Get("stops"), cached.Stops),
		Passengers: pick(params.Get("passengers"), cached.Passengers),
		Luggages:   pick(params.Get("luggages"), cached.Luggages),
	}
	f.Date = resolveDate(params.Get("date"), cached.Date, now)
	return f
}

func pick(fromURL, fromCache string) string {
	if fromURL != "" {
		return fromURL
	}
	return fromCache
}

func resolveDate(fromURL, fromCache string, now time.Time) string {
	if fromURL != "" {
		return fromURL
	}
	if t, err := time.ParseInLocation(DateLayout, fromCache, now.Location()); err == nil && t.After(now) {
		return fromCache
	}
	return DefaultDate(now)
}
