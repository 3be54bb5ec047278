package roster

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Breakdown is the seven-unit elapsed-time decomposition of a date of birth
// relative to a given moment. Years is the whole-year (completed-birthday)
// age; the remaining fields are independent floor divisions of the full
// elapsed duration, not a mixed-radix decomposition.
type Breakdown struct {
	Years   int
	Months  int
	Weeks   int64
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Age returns the whole-year age at now: calendar-year difference, minus one
// when now precedes this year's anniversary of the birth month/day.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := time.Date(now.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return years
}

// Elapsed computes the full breakdown of dob relative to now.
//
// The month count is years*12 plus the calendar month difference. It ignores
// the day of month, so it can be off by one near a month boundary; that is
// the long-standing behavior of the original data and is kept as-is.
func Elapsed(dob, now time.Time) Breakdown {
	years := Age(dob, now)
	months := years*12 + int(now.Month()) - int(dob.Month())

	diff := now.Sub(dob)
	days := int64(diff / (24 * time.Hour))

	return Breakdown{
		Years:   years,
		Months:  months,
		Weeks:   days / 7,
		Days:    days,
		Hours:   int64(diff / time.Hour),
		Minutes: int64(diff / time.Minute),
		Seconds: int64(diff / time.Second),
	}
}

// Units renders the breakdown as the seven display strings, largest unit
// first. Hours, minutes, and seconds carry thousands separators for
// readability; the underlying values stay exact integers.
func (b Breakdown) Units() []string {
	return []string{
		fmt.Sprintf("%d -------- years", b.Years),
		fmt.Sprintf("%d ---------- months", b.Months),
		fmt.Sprintf("%d -------- weeks", b.Weeks),
		fmt.Sprintf("%d ----- days", b.Days),
		fmt.Sprintf("%s --- hours", humanize.Comma(b.Hours)),
		fmt.Sprintf("%s --- minutes", humanize.Comma(b.Minutes)),
		fmt.Sprintf("%s - seconds", humanize.Comma(b.Seconds)),
	}
}
