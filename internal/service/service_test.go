package service

import (
	"context"
	"testing"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed input must surface as a VALIDATION_ERROR AppError, not as a
// bare error the HTTP layer would misread as internal. Validation runs
// before any repository call, so nil dependencies are fine here.

func TestCreateMatch_InvalidInputIsValidationError(t *testing.T) {
	svc := &MatchService{}
	tests := []struct {
		name  string
		input CreateMatchInput
	}{
		{"unknown format", CreateMatchInput{Format: "4v4"}},
		{"negative wager", CreateMatchInput{Format: domain.FormatSingles, WagerAmount: -100}},
		{"handicap out of range", CreateMatchInput{
			Format:  domain.FormatSingles,
			Players: []CreatePlayerInput{{Handicap: 80}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMatch(context.Background(), uuid.New(), tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestUpsertScore_InvalidInputIsValidationError(t *testing.T) {
	svc := &ScoreService{}
	tests := []struct {
		name  string
		input UpsertScoreInput
	}{
		{"gross below one", UpsertScoreInput{HoleNumber: 1, Gross: 0}},
		{"gross above cap", UpsertScoreInput{HoleNumber: 1, Gross: 21}},
		{"hole off the card", UpsertScoreInput{HoleNumber: 19, Gross: 4}},
		{"unknown trash dot", UpsertScoreInput{
			HoleNumber: 1, Gross: 4,
			TrashDots: []domain.TrashTag{"mulligan"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertScore(context.Background(), uuid.New(), tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestOpenPress_InvalidStartHoleIsValidationError(t *testing.T) {
	svc := &ScoreService{}
	_, err := svc.OpenPress(context.Background(), uuid.New(), OpenPressInput{StartHole: 0})
	assertValidationError(t, err)
}

func TestCorrectHandicap_OutOfRangeIsValidationError(t *testing.T) {
	svc := &MatchService{}
	err := svc.CorrectHandicap(context.Background(), uuid.New(), uuid.New(), uuid.New(), 99)
	assertValidationError(t, err)
}

func TestCorrectStrokeIndex_InvalidInputIsValidationError(t *testing.T) {
	svc := &MatchService{}
	tests := []struct {
		name  string
		hole  int
		index int
	}{
		{"hole off the card", 19, 5},
		{"index out of range", 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CorrectStrokeIndex(context.Background(), uuid.New(), tt.hole, tt.index)
			assertValidationError(t, err)
		})
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}
