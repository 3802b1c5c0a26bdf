package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type Player struct {
	ID                int32
	Name              string
	Alias             string
	GaragePower       int
	Active            bool
	Leader            bool
	Birthday          string // stored as MM-DD, empty if unknown
	Team              Team
	DiscordName       string
	About             string
	PreferredVehicles string
	Playstyle         string
	Language          string
	Emoji             string
	AwayFrom          time.Time
	AwayUntil         time.Time
	Created           time.Time
	Updated           time.Time
	ActiveChanged     time.Time
}

func (p *Player) IsAway() bool {
	return !p.AwayFrom.IsZero() && !p.AwayUntil.IsZero()
}

// IsAwayAt reports whether now falls inside the away window.
func (p *Player) IsAwayAt(now time.Time) bool {
	return p.IsAway() && !now.Before(p.AwayFrom) && now.Before(p.AwayUntil)
}

// ShortName is the alias when one is set, otherwise the full name. Used
// in the compact table views.
func (p *Player) ShortName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

func (p *Player) FormattedBirthday() string {
	if p.Birthday == "" {
		return "unknown"
	}
	t, err := time.Parse("01-02", p.Birthday)
	if err != nil {
		return p.Birthday
	}
	return t.Format("02.01.")
}

func (p *Player) FormattedAwayWindow() string {
	if !p.IsAway() {
		return ""
	}
	return fmt.Sprintf("%s - %s", p.AwayFrom.Format(time.DateTime), p.AwayUntil.Format(time.DateTime))
}

var birthdayRegex = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.?$`)

// ParseBirthday converts the DD.MM. input form, with the trailing dot
// optional, into the stored MM-DD form.
func ParseBirthday(in string) (string, error) {
	m := birthdayRegex.FindStringSubmatch(in)
	if m == nil {
		return "", fmt.Errorf("invalid birthday %q, expected DD.MM.", in)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("invalid birthday %q, expected DD.MM.", in)
	}
	return fmt.Sprintf("%02d-%02d", month, day), nil
}

var awayDurationRegex = regexp.MustCompile(`^([1-4])w?$`)

// ParseAwayWeeks parses the away duration token, "1w" through "4w" with
// the "w" optional. The empty token defaults to one week.
func ParseAwayWeeks(tok string) (int, error) {
	if tok == "" {
		return 1, nil
	}
	m := awayDurationRegex.FindStringSubmatch(tok)
	if m == nil {
		return 0, fmt.Errorf("invalid away duration %q, expected 1w-4w", tok)
	}
	n, _ := strconv.Atoi(m[1])
	return n, nil
}
