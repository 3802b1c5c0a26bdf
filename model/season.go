package model

import (
	"errors"
	"fmt"
	"time"
)

// Seasons are calendar months counted from May 2021, the clan's first
// month of play.
const (
	seasonEpochYear  = 2021
	seasonEpochMonth = time.May
)

var ErrBeforeEpoch = errors.New("date is before the first season")

type Season struct {
	Number   int
	Name     string
	Start    time.Time
	Division Division
}

// SeasonOf maps a date to its season number. May 2021 is season 1.
func SeasonOf(d time.Time) (int, error) {
	n := 12*(d.Year()-seasonEpochYear) + int(d.Month()) - int(seasonEpochMonth) + 1
	if n < 1 {
		return 0, ErrBeforeEpoch
	}
	return n, nil
}

// SeasonStart is the first day of season n.
func SeasonStart(n int) (time.Time, error) {
	if n < 1 {
		return time.Time{}, fmt.Errorf("invalid season number %d", n)
	}
	epoch := time.Date(seasonEpochYear, seasonEpochMonth, 1, 0, 0, 0, 0, time.UTC)
	return epoch.AddDate(0, n-1, 0), nil
}

// SeasonName is the month label of season n, "May 22" style.
func SeasonName(n int) (string, error) {
	start, err := SeasonStart(n)
	if err != nil {
		return "", err
	}
	return start.Format("Jan 06"), nil
}

// ISOWeekStart is the Monday of the given ISO week. January 4 is always
// inside week 1, so the week 1 Monday is found from there.
func ISOWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	return week1Monday.AddDate(0, 0, 7*(week-1))
}
