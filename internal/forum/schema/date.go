package schema

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Date tags are set by the client and only usable for coarse range queries.
const (
	TagDay      = "DD"
	TagMonth    = "MM"
	TagYear     = "YYYY"
	TagHour     = "HH"
	TagMinute   = "mm"
	TagWeek     = "WW"
	TagWeekday  = "WD"
	TagTimezone = "TZ"
)

const (
	utcTimezone   = "Z"
	minutesInHour = 60
)

// ErrMissingDate is returned when an item carries no usable date tags.
var ErrMissingDate = errors.New("missing date tags")

// DateTags returns the date tags for t. Values are UTC; TZ records the
// offset of t's location for information only. MM is zero based.
func DateTags(t time.Time) map[string]string {
	u := t.UTC()
	_, week := u.ISOWeek()
	return map[string]string{
		TagDay:      strconv.Itoa(u.Day()),
		TagMonth:    strconv.Itoa(int(u.Month()) - 1),
		TagYear:     strconv.Itoa(u.Year()),
		TagHour:     strconv.Itoa(u.Hour()),
		TagMinute:   strconv.Itoa(u.Minute()),
		TagWeek:     strconv.Itoa(week),
		TagWeekday:  strconv.Itoa(int(u.Weekday())),
		TagTimezone: timezoneOffset(t),
	}
}

func timezoneOffset(t time.Time) string {
	_, offset := t.Zone()
	if offset == 0 {
		return utcTimezone
	}
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	minutes := offset / 60
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/minutesInHour, minutes%minutesInHour)
}

// DateFromTags rebuilds the UTC minute an item was declared at.
func DateFromTags(tags map[string]string) (time.Time, error) {
	names := []string{TagYear, TagMonth, TagDay, TagHour, TagMinute}
	values := make([]int, len(names))
	for i, name := range names {
		raw, ok := tags[name]
		if !ok {
			return time.Time{}, fmt.Errorf("%w: %s", ErrMissingDate, name)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date tag %s=%q: %w", name, raw, err)
		}
		values[i] = v
	}
	return time.Date(values[0], time.Month(values[1]+1), values[2], values[3], values[4], 0, 0, time.UTC), nil
}
