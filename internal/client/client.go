// Package client is the device-side HTTP client for the scoring API. It
// implements the synchronizer's Store interface so a scoring device can
// open a live session against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	livesync "github.com/dt604/bloodsheet-golf/internal/sync"
	"github.com/google/uuid"
)

var _ livesync.Store = (*Client)(nil)

// Client talks to one API server on behalf of one authenticated user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client. baseURL has no trailing slash; token is the
// bearer JWT for every request.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetMatch fetches one match. A 404 yields a nil match, matching the
// repository contract the synchronizer expects.
func (c *Client) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var m domain.Match
	err := c.do(ctx, "GET", "/matches/"+id.String(), nil, &m)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetCourse fetches a course with its holes.
func (c *Client) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := c.do(ctx, "GET", "/courses/"+id.String(), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListPlayers fetches a match's roster.
func (c *Client) ListPlayers(ctx context.Context, matchID uuid.UUID) ([]domain.PlayerInMatch, error) {
	var players []domain.PlayerInMatch
	if err := c.do(ctx, "GET", "/matches/"+matchID.String()+"/players", nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// ListScores fetches score rows across the given matches. The API is
// per-match, so sibling matches are fetched in turn and concatenated.
func (c *Client) ListScores(ctx context.Context, matchIDs []uuid.UUID) ([]domain.HoleScore, error) {
	var all []domain.HoleScore
	for _, id := range matchIDs {
		var scores []domain.HoleScore
		if err := c.do(ctx, "GET", "/matches/"+id.String()+"/scores", nil, &scores); err != nil {
			return nil, err
		}
		all = append(all, scores...)
	}
	return all, nil
}

// ListPresses fetches a match's presses.
func (c *Client) ListPresses(ctx context.Context, matchID uuid.UUID) ([]domain.Press, error) {
	var presses []domain.Press
	if err := c.do(ctx, "GET", "/matches/"+matchID.String()+"/presses", nil, &presses); err != nil {
		return nil, err
	}
	return presses, nil
}

// ListAttestations fetches a match's attestation rows.
func (c *Client) ListAttestations(ctx context.Context, matchID uuid.UUID) ([]domain.Attestation, error) {
	var atts []domain.Attestation
	if err := c.do(ctx, "GET", "/matches/"+matchID.String()+"/attestations", nil, &atts); err != nil {
		return nil, err
	}
	return atts, nil
}

// UpsertScore writes one score row. The server reallocates net itself,
// so only the raw facts travel.
func (c *Client) UpsertScore(ctx context.Context, score domain.HoleScore) error {
	body := map[string]any{
		"hole_number": score.HoleNumber,
		"player_id":   score.PlayerID,
		"gross":       score.Gross,
		"trash_dots":  score.TrashDots,
	}
	return c.do(ctx, "PUT", "/matches/"+score.MatchID.String()+"/scores", body, nil)
}

// InsertPress opens a press. The server assigns its own press id; the
// local optimistic row is superseded on the next refresh.
func (c *Client) InsertPress(ctx context.Context, press domain.Press) error {
	body := map[string]any{
		"start_hole":      press.StartHole,
		"pressed_by_team": press.PressedByTeam,
	}
	return c.do(ctx, "POST", "/matches/"+press.MatchID.String()+"/presses", body, nil)
}

// do issues one request and decodes the response into out. Non-2xx
// responses decode the error envelope into a domain.AppError so callers
// can branch on the code.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Code == "" {
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, string(raw))
	}
	return &domain.AppError{Code: envelope.Code, Message: envelope.Message, Status: resp.StatusCode}
}

func isNotFound(err error) bool {
	appErr, ok := err.(*domain.AppError)
	return ok && appErr.Status == http.StatusNotFound
}
