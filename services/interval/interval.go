// Package interval holds the pure time-range arithmetic shared by the
// matching engine and its callers. Every function compares absolute
// instants; a *time.Location is only consulted where day or grid
// boundaries are involved.
package interval

import (
	"errors"
	"fmt"
	"time"

	"propcare/models"
)

// ErrMalformedInterval is returned for any interval with start >= end.
var ErrMalformedInterval = errors.New("malformed interval: start must be before end")

// New builds a validated interval.
func New(start, end time.Time) (models.TimeInterval, error) {
	iv := models.TimeInterval{Start: start, End: end}
	if err := Validate(iv); err != nil {
		return models.TimeInterval{}, err
	}
	return iv, nil
}

// Validate rejects intervals whose start is not strictly before their end.
func Validate(iv models.TimeInterval) error {
	if !iv.Start.Before(iv.End) {
		return fmt.Errorf("%w (start=%s end=%s)", ErrMalformedInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// Overlaps reports whether a and b share any instant. With inclusive set,
// intervals that merely touch (a.End == b.Start) also overlap.
func Overlaps(a, b models.TimeInterval, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains is closed-open: Start is inside, End is not.
func Contains(iv models.TimeInterval, t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// DurationMinutes truncates partial minutes.
func DurationMinutes(iv models.TimeInterval) int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// SnapToGrid rounds t to the nearest multiple of gridMinutes counted from
// local midnight in loc. Ties round up.
func SnapToGrid(t time.Time, gridMinutes int, loc *time.Location) time.Time {
	if gridMinutes <= 0 {
		return t
	}
	local := t.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	grid := time.Duration(gridMinutes) * time.Minute
	offset := local.Sub(midnight)

	lower := offset / grid * grid
	if offset-lower >= grid-(offset-lower) {
		return midnight.Add(lower + grid)
	}
	return midnight.Add(lower)
}

// At returns the instant for a wall-clock time on the given date in loc.
func At(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// Between is a shorthand for a same-day interval in loc; it returns
// ErrMalformedInterval when the end is not after the start.
func Between(date time.Time, startHour, startMinute, endHour, endMinute int, loc *time.Location) (models.TimeInterval, error) {
	d := date.In(loc)
	return New(
		At(d.Year(), d.Month(), d.Day(), startHour, startMinute, loc),
		At(d.Year(), d.Month(), d.Day(), endHour, endMinute, loc),
	)
}

// LoadLocation resolves an IANA zone name, defaulting to UTC for "".
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}
