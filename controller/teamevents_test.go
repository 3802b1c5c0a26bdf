package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tkops/hcr2_manager/db/mockdb"
	"github.com/tkops/hcr2_manager/model"
)

func TestParseWeekToken(t *testing.T) {
	tests := map[string]struct {
		input    string
		wantYear int
		wantWeek int
		wantErr  bool
	}{
		"plain":           {input: "2025/37", wantYear: 2025, wantWeek: 37},
		"single digit":    {input: "2025/5", wantYear: 2025, wantWeek: 5},
		"padded spaces":   {input: " 2025/37 ", wantYear: 2025, wantWeek: 37},
		"week zero":       {input: "2025/0", wantErr: true},
		"week too large":  {input: "2025/54", wantErr: true},
		"missing year":    {input: "/37", wantErr: true},
		"two digit year":  {input: "25/37", wantErr: true},
		"garbage":         {input: "next week", wantErr: true},
		"iso date format": {input: "2025-37", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			year, week, err := parseWeekToken(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected an error for '%s'", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if year != tc.wantYear || week != tc.wantWeek {
				t.Errorf("parse incorrect, wanted: %d/%d, got: %d/%d", tc.wantYear, tc.wantWeek, year, week)
			}
		})
	}
}

func TestBindTeamEventByWeekProximity(t *testing.T) {
	events := []model.TeamEvent{
		{ID: 10, Name: "Best Event", ISOYear: 2025, ISOWeek: 37},
		{ID: 11, Name: "Best Event", ISOYear: 2025, ISOWeek: 38},
	}

	mockDB := &mockdb.DB{}
	mockDB.On("FindTeamEventsByName", mock.Anything, "Best Event").Return(events, nil)
	ctrl := newTestController(t, mockDB)

	// 2025-09-16 is one day after the week 38 Monday and eight days
	// after the week 37 Monday.
	matchDate := time.Date(2025, time.September, 16, 0, 0, 0, 0, time.UTC)
	te, err := ctrl.BindTeamEvent(context.Background(), "Best Event", matchDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if te.ID != 11 {
		t.Errorf("bound wrong event, wanted: 11, got: %d", te.ID)
	}
}

func TestBindTeamEventTieBreak(t *testing.T) {
	events := []model.TeamEvent{
		{ID: 20, Name: "Cup", ISOYear: 2025, ISOWeek: 36},
		{ID: 21, Name: "Cup", ISOYear: 2025, ISOWeek: 38},
	}

	mockDB := &mockdb.DB{}
	mockDB.On("FindTeamEventsByName", mock.Anything, "Cup").Return(events, nil)
	ctrl := newTestController(t, mockDB)

	// 2025-09-08 is the week 37 Monday, seven days from both the week
	// 36 and week 38 Mondays. The smaller id must win.
	matchDate := time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC)
	te, err := ctrl.BindTeamEvent(context.Background(), "Cup", matchDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if te.ID != 20 {
		t.Errorf("tie must keep the smallest id, wanted: 20, got: %d", te.ID)
	}
}

func TestBindTeamEventSingleCandidate(t *testing.T) {
	events := []model.TeamEvent{
		{ID: 5, Name: "Solo", ISOYear: 2020, ISOWeek: 1},
	}

	mockDB := &mockdb.DB{}
	mockDB.On("FindTeamEventsByName", mock.Anything, "Solo").Return(events, nil)
	ctrl := newTestController(t, mockDB)

	// Distance does not matter when only one event carries the name.
	te, err := ctrl.BindTeamEvent(context.Background(), "Solo", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if te.ID != 5 {
		t.Errorf("bound wrong event, wanted: 5, got: %d", te.ID)
	}
}

func TestBindTeamEventUnknownName(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("FindTeamEventsByName", mock.Anything, "Nope").Return([]model.TeamEvent{}, nil)
	ctrl := newTestController(t, mockDB)

	if _, err := ctrl.BindTeamEvent(context.Background(), "Nope", time.Now()); err == nil {
		t.Error("expected an error for an unknown event name")
	}
}
