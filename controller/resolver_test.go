package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
	"github.com/tkops/hcr2_manager/db/mockdb"
	"github.com/tkops/hcr2_manager/model"
)

var (
	ann  = model.Player{ID: 1, Name: "Ann", Alias: "ann", Team: model.TEAM_PLTE, Active: true}
	anna = model.Player{ID: 2, Name: "Anna", DiscordName: "anna#42", Team: model.TEAM_PL1, Active: true}
)

func newTestController(t *testing.T, mockDB *mockdb.DB) *controller {
	t.Helper()
	ctrl, err := New(clock.NewMock(), mockDB, DefaultDonationQuota)
	if err != nil {
		t.Fatalf("error constructing controller: %v", err)
	}
	return ctrl.(*controller)
}

func TestResolvePlayerByID(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("GetPlayer", mock.Anything, int32(1)).Return(&ann, nil)
	ctrl := newTestController(t, mockDB)

	p, err := ctrl.ResolvePlayer(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("expected player 1, got %d", p.ID)
	}
	mockDB.AssertExpectations(t)
}

func TestResolvePlayerExactTier(t *testing.T) {
	mockDB := &mockdb.DB{}
	// "Ann" matches player Ann exactly, so the fuzzy tier never runs.
	mockDB.On("FindPlayersExact", mock.Anything, "Ann").Return([]model.Player{ann}, nil)
	ctrl := newTestController(t, mockDB)

	p, err := ctrl.ResolvePlayer(context.Background(), "Ann")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Ann" {
		t.Errorf("expected Ann, got %s", p.Name)
	}
	mockDB.AssertNotCalled(t, "FindPlayersFuzzy", mock.Anything, mock.Anything)
}

func TestResolvePlayerFuzzyAmbiguous(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("FindPlayersExact", mock.Anything, "An").Return([]model.Player{}, nil)
	mockDB.On("FindPlayersFuzzy", mock.Anything, "An").Return([]model.Player{ann, anna}, nil)
	ctrl := newTestController(t, mockDB)

	_, err := ctrl.ResolvePlayer(context.Background(), "An")
	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(ambiguous.Candidates))
	}
}

func TestResolvePlayerFuzzyUnique(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("FindPlayersExact", mock.Anything, "nna").Return([]model.Player{}, nil)
	mockDB.On("FindPlayersFuzzy", mock.Anything, "nna").Return([]model.Player{anna}, nil)
	ctrl := newTestController(t, mockDB)

	p, err := ctrl.ResolvePlayer(context.Background(), "nna")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != anna.ID {
		t.Errorf("expected Anna, got %s", p.Name)
	}
}

func TestResolvePlayerNotFound(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("FindPlayersExact", mock.Anything, "ghost").Return([]model.Player{}, nil)
	mockDB.On("FindPlayersFuzzy", mock.Anything, "ghost").Return([]model.Player{}, nil)
	ctrl := newTestController(t, mockDB)

	_, err := ctrl.ResolvePlayer(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected an error for an unknown reference")
	}
}

// Resolving the id of a resolved player must return the same player.
func TestResolvePlayerIdempotent(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockDB.On("FindPlayersExact", mock.Anything, "Ann").Return([]model.Player{ann}, nil)
	mockDB.On("GetPlayer", mock.Anything, int32(1)).Return(&ann, nil)
	ctrl := newTestController(t, mockDB)

	p1, err := ctrl.ResolvePlayer(context.Background(), "Ann")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := ctrl.ResolvePlayer(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1.ID != p2.ID {
		t.Errorf("resolver not idempotent: %d != %d", p1.ID, p2.ID)
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "123", want: true},
		{input: "0", want: true},
		{input: "", want: false},
		{input: "12a", want: false},
		{input: "-1", want: false},
		{input: " 1", want: false},
	}
	for _, tc := range tests {
		if got := isAllDigits(tc.input); got != tc.want {
			t.Errorf("isAllDigits(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
