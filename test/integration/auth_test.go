//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/dt604/bloodsheet-golf/test/integration/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_NoAuthRequired(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/health")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_MissingTokenRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/matches/" + uuid.New().String())
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, resp, "UNAUTHORIZED")
}

func TestAuth_GarbageTokenRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.AuthGET("/matches/"+uuid.New().String(), "not-a-jwt")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, resp, "UNAUTHORIZED")
}

func TestAuth_QueryParamTokenAccepted(t *testing.T) {
	env := testutil.NewTestEnv(t)
	courseID := env.SeedCourse("Query Param CC")
	keeper, opp := uuid.New(), uuid.New()
	match := env.CreateSinglesMatch(courseID, keeper, opp, "NASSAU")

	// Browser websocket clients can't set the Authorization header, so
	// the token rides the query string.
	token := env.TokenFor(keeper, "Keeper")
	resp := env.GET("/matches/" + match.ID.String() + "?token=" + token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_ValidTokenAccepted(t *testing.T) {
	env := testutil.NewTestEnv(t)
	courseID := env.SeedCourse("Bearer CC")
	keeper, opp := uuid.New(), uuid.New()
	match := env.CreateSinglesMatch(courseID, keeper, opp, "NASSAU")

	resp := env.AuthGET("/matches/"+match.ID.String(), env.TokenFor(opp, "Opponent"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
