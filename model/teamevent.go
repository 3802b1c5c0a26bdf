package model

import (
	"fmt"
	"time"
)

const (
	DefaultTracks           = 4
	DefaultMaxScorePerTrack = 15000

	MaxMatchScore  = 75000
	MaxMatchPoints = 300
)

type Vehicle struct {
	ID        int32
	Name      string
	Shortname string
}

// TeamEvent is a weekly in-game tournament. Names recur across seasons,
// so an event is only identified together with its ISO week.
type TeamEvent struct {
	ID               int32
	Name             string
	ISOYear          int
	ISOWeek          int
	Tracks           int
	MaxScorePerTrack int
	Vehicles         []Vehicle
}

// WeekStart is the Monday of the event's ISO week.
func (te *TeamEvent) WeekStart() time.Time {
	return ISOWeekStart(te.ISOYear, te.ISOWeek)
}

func (te *TeamEvent) FormattedWeek() string {
	return fmt.Sprintf("%d/%02d", te.ISOYear, te.ISOWeek)
}

type Match struct {
	ID            int32
	TeamEventID   int32
	SeasonNumber  int
	Start         time.Time
	Opponent      string
	ScoreLadys    int
	ScoreOpponent int
}

type MatchScore struct {
	ID       int32
	MatchID  int32
	PlayerID int32
	Score    int
	Points   int
}

func (ms *MatchScore) Validate() error {
	if ms.Score < 0 || ms.Score > MaxMatchScore {
		return fmt.Errorf("score %d out of range 0..%d", ms.Score, MaxMatchScore)
	}
	if ms.Points < 0 || ms.Points > MaxMatchPoints {
		return fmt.Errorf("points %d out of range 0..%d", ms.Points, MaxMatchPoints)
	}
	return nil
}
