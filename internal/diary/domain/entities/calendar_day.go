package entities

import (
	"fmt"
	"regexp"
	"time"
)

// ReferenceZone зона, в которой моменты времени сводятся к календарному дню.
var ReferenceZone = time.UTC

const dayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CalendarDay календарная дата без времени суток в ReferenceZone.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCalendarDay разбирает строку строго формата YYYY-MM-DD.
// Несуществующие даты (например 2024-02-30) отклоняются.
func ParseCalendarDay(s string) (CalendarDay, error) {
	if !dayPattern.MatchString(s) {
		return CalendarDay{}, fmt.Errorf("%q: %w", s, ErrMalformedDate)
	}
	t, err := time.ParseInLocation(dayLayout, s, ReferenceZone)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("%q: %w", s, ErrMalformedDate)
	}
	return DayOf(t), nil
}

// DayOf возвращает календарный день момента t в ReferenceZone.
func DayOf(t time.Time) CalendarDay {
	y, m, d := t.In(ReferenceZone).Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// Time возвращает полночь дня в ReferenceZone.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, ReferenceZone)
}

// Contains сообщает, попадает ли момент t в этот день.
func (d CalendarDay) Contains(t time.Time) bool {
	return DayOf(t) == d
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
