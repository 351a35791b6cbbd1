//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/2beens/liftstats/internal/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) generateInsightRequest(ctx context.Context, owner string) insights.Insight {
	resp := s.doRequest(ctx, "POST", "/owners/"+owner+"/insights", nil)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var insight insights.Insight
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&insight))
	return insight
}

func (s *IntegrationTestSuite) TestInsights_GenerateAndCache() {
	ctx := context.Background()
	s.deleteAllWorkouts(ctx)
	t := s.T()

	s.newWorkoutRequest(ctx, "iva", benchWorkout("2024-02-01", 50))
	callsBefore := s.insightsCalls.Load()

	insight := s.generateInsightRequest(ctx, "iva")
	assert.False(t, insight.Cached)
	assert.Equal(t, "### Progress\n- **Bench Press** is moving up\n- keep going", insight.Raw)
	assert.Contains(t, insight.HTML, "<h3>Progress</h3>")
	assert.Contains(t, insight.HTML, "<li><strong>Bench Press</strong> is moving up</li>")

	cached := s.generateInsightRequest(ctx, "iva")
	assert.True(t, cached.Cached)
	assert.Equal(t, insight.HTML, cached.HTML)
	assert.Equal(t, callsBefore+1, s.insightsCalls.Load())

	resp := s.doRequest(ctx, "POST", "/owners/iva/insights?format=html", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	htmlBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, insight.HTML, string(htmlBytes))
}

func (s *IntegrationTestSuite) TestInsights_NoWorkoutsAndRateLimit() {
	ctx := context.Background()
	t := s.T()

	for i := 0; i < testInsightsRateLimitPerMin; i++ {
		resp := s.doRequest(ctx, "POST", "/owners/ghost/insights", nil)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp := s.doRequest(ctx, "POST", "/owners/ghost/insights", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
