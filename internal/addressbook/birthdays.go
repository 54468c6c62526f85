package addressbook

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-assistant/internal/config"
)

const day = 24 * time.Hour

// Upcoming is a contact to congratulate and the day to do it on.
type Upcoming struct {
	Name string
	// Date is the birthday's next occurrence, moved to Monday when it falls on a weekend.
	Date time.Time
}

func (u Upcoming) String() string {
	return fmt.Sprintf(config.ReplyLineEntry, u.Name, u.Date.Format(config.DateFormatCongratulation))
}

// UpcomingBirthdays lists the contacts whose next birthday is within
// config.UpcomingWindowDays of today (inclusive), in insertion order.
// Birthdays on Saturday or Sunday are congratulated on the following Monday.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []Upcoming {
	start := civilDate(today.Year(), today.Month(), today.Day())

	var upcoming []Upcoming
	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		next := nextOccurrence(start, bday.date)
		if int(next.Sub(start)/day) > config.UpcomingWindowDays {
			continue
		}

		upcoming = append(upcoming, Upcoming{
			Name: r.name.value,
			Date: congratulationDate(next),
		})
	}
	return upcoming
}

// nextOccurrence returns the first anniversary of birth on or after today.
func nextOccurrence(today, birth time.Time) time.Time {
	candidate := civilDate(today.Year(), birth.Month(), birth.Day())
	if candidate.Before(today) {
		candidate = civilDate(today.Year()+1, birth.Month(), birth.Day())
	}
	return candidate
}

// congratulationDate shifts weekend dates to the following Monday.
func congratulationDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// civilDate builds a UTC midnight date. Feb 29 is clamped to Feb 28 in
// non-leap years instead of letting time.Date roll it over to March 1.
func civilDate(year int, month time.Month, d int) time.Time {
	if month == time.February && d == 29 && !isLeap(year) {
		d = 28
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Anniversary returns the birthday's date in year, with the same Feb 29 clamping
// as UpcomingBirthdays.
func Anniversary(b Birthday, year int) time.Time {
	return civilDate(year, b.date.Month(), b.date.Day())
}
