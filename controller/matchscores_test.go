package controller

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/tkops/hcr2_manager/db/mockdb"
	"github.com/tkops/hcr2_manager/model"
)

func TestAddMatchScoreValidatesRange(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("GetPlayer", mock.Anything, int32(1)).Return(&ann, nil)
	mockDB.On("GetMatch", mock.Anything, int32(1)).Return(&model.Match{ID: 1}, nil)
	ctrl := newTestController(t, mockDB)

	if _, err := ctrl.AddMatchScore(context.Background(), 1, "1", model.MaxMatchScore+1, 0); err == nil {
		t.Error("expected an error for a score above the maximum")
	}
	if _, err := ctrl.AddMatchScore(context.Background(), 1, "1", 60000, model.MaxMatchPoints+1); err == nil {
		t.Error("expected an error for points above the maximum")
	}
	mockDB.AssertNotCalled(t, "UpsertMatchScore", mock.Anything, mock.Anything)
}

func TestAutoAddScores(t *testing.T) {
	maxPower := model.Player{ID: 7, Name: "Max Power", Team: model.TEAM_PLTE, Active: true}

	mockDB := &mockdb.DB{}
	mockDB.On("GetMatch", mock.Anything, int32(1)).Return(&model.Match{ID: 1}, nil)
	mockDB.On("GetPlayer", mock.Anything, int32(1)).Return(&ann, nil)
	mockDB.On("FindPlayersExact", mock.Anything, "ann").Return([]model.Player{ann}, nil)
	mockDB.On("FindPlayersExact", mock.Anything, "Max Power").Return([]model.Player{maxPower}, nil)
	mockDB.On("FindPlayersExact", mock.Anything, "ghost").Return([]model.Player{}, nil)
	mockDB.On("FindPlayersFuzzy", mock.Anything, "ghost").Return([]model.Player{}, nil)
	mockDB.On("UpsertMatchScore", mock.Anything, mock.Anything).Return(nil)
	ctrl := newTestController(t, mockDB)

	input := strings.Join([]string{
		"ann 61000 280",
		"Max Power 59000",
		"",
		"1 58000",
		"ghost 57000",
		"ann",
	}, "\n")

	report, err := ctrl.AutoAddScores(context.Background(), 1, strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Added != 3 {
		t.Errorf("added incorrect, wanted: 3, got: %d", report.Added)
	}
	// The unknown player and the line without a score both fail.
	if len(report.Failed) != 2 {
		t.Fatalf("expected 2 failed lines, got %d: %v", len(report.Failed), report.Failed)
	}

	mockDB.AssertCalled(t, "UpsertMatchScore", mock.Anything, &model.MatchScore{MatchID: 1, PlayerID: 1, Score: 61000, Points: 280})
	mockDB.AssertCalled(t, "UpsertMatchScore", mock.Anything, &model.MatchScore{MatchID: 1, PlayerID: 7, Score: 59000})
	mockDB.AssertCalled(t, "UpsertMatchScore", mock.Anything, &model.MatchScore{MatchID: 1, PlayerID: 1, Score: 58000})
}
