package model

import (
	"testing"
	"time"
)

func TestParseBirthday(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"with trailing dot":    {input: "14.03.", want: "03-14"},
		"without trailing dot": {input: "14.03", want: "03-14"},
		"single digits":        {input: "7.5.", want: "05-07"},
		"first of january":     {input: "01.01.", want: "01-01"},
		"end of december":      {input: "31.12.", want: "12-31"},
		"month out of range":   {input: "14.13.", wantErr: true},
		"day out of range":     {input: "32.01.", wantErr: true},
		"zero day":             {input: "0.5.", wantErr: true},
		"iso format":           {input: "2000-03-14", wantErr: true},
		"empty":                {input: "", wantErr: true},
		"garbage":              {input: "soon", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBirthday(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected an error for input '%s', got '%s'", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("birthday incorrect, wanted: '%s', got: '%s'", tc.want, got)
			}
		})
	}
}

func TestParseAwayWeeks(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    int
		wantErr bool
	}{
		"default":         {input: "", want: 1},
		"one week":        {input: "1w", want: 1},
		"two bare":        {input: "2", want: 2},
		"four weeks":      {input: "4w", want: 4},
		"five weeks":      {input: "5w", wantErr: true},
		"zero weeks":      {input: "0w", wantErr: true},
		"spelled out":     {input: "1 week", wantErr: true},
		"double digit":    {input: "11", wantErr: true},
		"trailing letter": {input: "2ww", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseAwayWeeks(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected an error for input '%s'", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("weeks incorrect, wanted: %d, got: %d", tc.want, got)
			}
		})
	}
}

func TestParseTeam(t *testing.T) {
	tests := []struct {
		input string
		want  Team
	}{
		{input: "PLTE", want: TEAM_PLTE},
		{input: "plte", want: TEAM_PLTE},
		{input: "PL1", want: TEAM_PL1},
		{input: "pl9", want: TEAM_PL9},
		{input: " PL3 ", want: TEAM_PL3},
		{input: "PL0", want: TEAM_UNKNOWN},
		{input: "PL10", want: TEAM_UNKNOWN},
		{input: "", want: TEAM_UNKNOWN},
	}

	for _, tc := range tests {
		if got := ParseTeam(tc.input); got != tc.want {
			t.Errorf("input: '%s', expected: '%s', got: '%s'", tc.input, tc.want, got)
		}
	}
}

func TestPlayerShortName(t *testing.T) {
	p := Player{Name: "Dragonfly", Alias: "dra"}
	if got := p.ShortName(); got != "dra" {
		t.Errorf("expected alias, got '%s'", got)
	}
	p.Alias = ""
	if got := p.ShortName(); got != "Dragonfly" {
		t.Errorf("expected full name, got '%s'", got)
	}
}

func TestMatchScoreValidate(t *testing.T) {
	tests := map[string]struct {
		score, points int
		wantErr       bool
	}{
		"zero":            {score: 0, points: 0},
		"max":             {score: 75000, points: 300},
		"typical":         {score: 43210, points: 180},
		"score too big":   {score: 75001, points: 100, wantErr: true},
		"negative score":  {score: -1, points: 100, wantErr: true},
		"points too big":  {score: 10000, points: 301, wantErr: true},
		"negative points": {score: 10000, points: -5, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ms := MatchScore{Score: tc.score, Points: tc.points}
			err := ms.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("expected an error for score=%d points=%d", tc.score, tc.points)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormattedBirthday(t *testing.T) {
	p := Player{Birthday: "03-14"}
	if got := p.FormattedBirthday(); got != "14.03." {
		t.Errorf("expected '14.03.', got '%s'", got)
	}
	p.Birthday = ""
	if got := p.FormattedBirthday(); got != "unknown" {
		t.Errorf("expected 'unknown', got '%s'", got)
	}
}

func TestIsAway(t *testing.T) {
	now := time.Now()
	p := Player{}
	if p.IsAway() {
		t.Error("player without window should not be away")
	}
	p.AwayFrom = now
	p.AwayUntil = now.AddDate(0, 0, 7)
	if !p.IsAway() {
		t.Error("player with window should be away")
	}
}

func TestIsAwayAt(t *testing.T) {
	now := time.Date(2025, time.September, 16, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		from, until time.Time
		want        bool
	}{
		"no window":     {want: false},
		"inside window": {from: now.AddDate(0, 0, -1), until: now.AddDate(0, 0, 6), want: true},
		"expired":       {from: now.AddDate(0, 0, -14), until: now.AddDate(0, 0, -7), want: false},
		"not started":   {from: now.AddDate(0, 0, 1), until: now.AddDate(0, 0, 8), want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := Player{AwayFrom: tc.from, AwayUntil: tc.until}
			if got := p.IsAwayAt(now); got != tc.want {
				t.Errorf("away state incorrect, wanted: %v, got: %v", tc.want, got)
			}
		})
	}
}
