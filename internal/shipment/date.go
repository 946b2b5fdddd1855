package shipment

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only calendar-date form accepted in shipment exports.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// ErrInvalidDate is returned when a date field cannot be read as YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar day with no time-of-day or zone component.
// Internally it is held at UTC midnight so day differences are exact.
type Date struct {
	t time.Time
}

// ParseDate reads an ISO calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// Today returns the UTC calendar date of the given instant.
func Today(now time.Time) Date {
	u := now.UTC()
	return Date{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// DaysUntil returns the number of whole days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int((other.t.Unix() - d.t.Unix()) / secondsPerDay)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Time returns UTC midnight of d.
func (d Date) Time() time.Time {
	return d.t
}
