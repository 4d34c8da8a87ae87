//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dt604/bloodsheet-golf/internal/domain"
	"github.com/google/uuid"
)

// TokenFor mints a player JWT for the given user.
func (env *TestEnv) TokenFor(userID uuid.UUID, displayName string) string {
	env.t.Helper()
	token, err := env.JWTMgr.GenerateToken(userID, displayName, false)
	if err != nil {
		env.t.Fatalf("TokenFor: %v", err)
	}
	return token
}

// SeedCourse inserts an 18-hole course directly and returns its ID.
// Stroke index equals hole number, par 4 except par 3 on 3/7/12/16 and
// par 5 on 5/9/13/17.
func (env *TestEnv) SeedCourse(name string) uuid.UUID {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	courseID := uuid.New()
	if _, err := env.Pool.Exec(ctx,
		"INSERT INTO courses (id, name) VALUES ($1, $2)", courseID, name); err != nil {
		env.t.Fatalf("SeedCourse: insert course: %v", err)
	}

	par3 := map[int]bool{3: true, 7: true, 12: true, 16: true}
	par5 := map[int]bool{5: true, 9: true, 13: true, 17: true}
	for n := 1; n <= 18; n++ {
		par := 4
		if par3[n] {
			par = 3
		} else if par5[n] {
			par = 5
		}
		if _, err := env.Pool.Exec(ctx, `
			INSERT INTO course_holes (course_id, number, par, stroke_index, yardage)
			VALUES ($1, $2, $3, $4, $5)`,
			courseID, n, par, n, 150+20*par); err != nil {
			env.t.Fatalf("SeedCourse: insert hole %d: %v", n, err)
		}
	}
	return courseID
}

// CreateSinglesMatch creates a 1v1 nassau match between two players and
// returns the decoded match. The first player is the scorekeeper.
func (env *TestEnv) CreateSinglesMatch(courseID uuid.UUID, scorekeeper, opponent uuid.UUID, wagerType domain.WagerType) *domain.Match {
	env.t.Helper()
	body := map[string]interface{}{
		"course_id":    courseID,
		"format":       domain.FormatSingles,
		"wager_amount": 1000,
		"wager_type":   wagerType,
		"players": []map[string]interface{}{
			{"user_id": scorekeeper, "team": "A", "handicap": 5.0, "display_name": "Keeper"},
			{"user_id": opponent, "team": "B", "handicap": 10.0, "display_name": "Opponent"},
		},
	}

	resp := env.POST("/matches", body, env.TokenFor(scorekeeper, "Keeper"))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("CreateSinglesMatch: expected 201, got %d", resp.StatusCode)
	}

	var match domain.Match
	if err := json.NewDecoder(resp.Body).Decode(&match); err != nil {
		env.t.Fatalf("CreateSinglesMatch: decode: %v", err)
	}
	return &match
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("POST", path, body, token, nil)
}

// PUT performs an authenticated PUT request.
func (env *TestEnv) PUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("PUT", path, body, token, nil)
}

// PATCH performs an authenticated PATCH request.
func (env *TestEnv) PATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.request("PATCH", path, body, token, nil)
}

// DELETE performs an authenticated DELETE request.
func (env *TestEnv) DELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.request("DELETE", path, nil, token, nil)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.request("GET", path, nil, token, nil)
}

// POSTWithHeaders performs an authenticated POST with extra headers.
func (env *TestEnv) POSTWithHeaders(path string, body interface{}, token string, headers map[string]string) *http.Response {
	env.t.Helper()
	return env.request("POST", path, body, token, headers)
}

func (env *TestEnv) request(method, path string, body interface{}, token string, headers map[string]string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
