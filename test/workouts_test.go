//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllWorkouts(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM workout")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any) *http.Response {
	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) newWorkoutRequest(ctx context.Context, owner string, workout workouts.NewWorkoutRequest) analytics.WorkoutRecord {
	resp := s.doRequest(ctx, "POST", fmt.Sprintf("/owners/%s/workouts", owner), workout)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)

	var added analytics.WorkoutRecord
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&added))
	return added
}

func (s *IntegrationTestSuite) listWorkoutsRequest(ctx context.Context, owner string) workouts.ListResponse {
	resp := s.doRequest(ctx, "GET", fmt.Sprintf("/owners/%s/workouts", owner), nil)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var listResp workouts.ListResponse
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&listResp))
	return listResp
}

func (s *IntegrationTestSuite) analyticsRequest(ctx context.Context, owner string) analytics.AnalyticsResult {
	resp := s.doRequest(ctx, "GET", fmt.Sprintf("/owners/%s/analytics", owner), nil)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var result analytics.AnalyticsResult
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func kg(weight float64) *float64 {
	return &weight
}

func benchWorkout(date string, weight float64) workouts.NewWorkoutRequest {
	return workouts.NewWorkoutRequest{
		Name: "Push day",
		Date: date,
		Exercises: []workouts.NewExerciseRequest{
			{MuscleGroup: "Chest", ExerciseName: "Bench Press", Sets: 3, Reps: 10, Weight: kg(weight)},
		},
	}
}

func (s *IntegrationTestSuite) TestWorkouts_AddListGetDelete() {
	ctx := context.Background()
	s.deleteAllWorkouts(ctx)
	t := s.T()

	first := s.newWorkoutRequest(ctx, "ana", benchWorkout("2024-01-01", 60))
	second := s.newWorkoutRequest(ctx, "ana", benchWorkout("2024-01-08", 65))
	s.newWorkoutRequest(ctx, "marko", benchWorkout("2024-01-02", 100))

	assert.Equal(t, "ana", first.OwnerID)
	assert.Greater(t, second.ID, first.ID)

	listResp := s.listWorkoutsRequest(ctx, "ana")
	require.Equal(t, 2, listResp.Total)
	assert.Equal(t, first.ID, listResp.Workouts[0].ID)
	assert.Equal(t, second.ID, listResp.Workouts[1].ID)

	resp := s.doRequest(ctx, "GET", fmt.Sprintf("/owners/marko/workouts/%d", first.ID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.doRequest(ctx, "GET", fmt.Sprintf("/owners/ana/workouts/%d", first.ID), nil)
	var got analytics.WorkoutRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, first, got)

	resp = s.doRequest(ctx, "DELETE", fmt.Sprintf("/owners/ana/workouts/%d", first.ID), nil)
	var deleteResp workouts.DeleteWorkoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleteResp))
	resp.Body.Close()
	assert.Equal(t, first.ID, deleteResp.DeletedID)

	resp = s.doRequest(ctx, "DELETE", fmt.Sprintf("/owners/ana/workouts/%d", first.ID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1, s.listWorkoutsRequest(ctx, "ana").Total)
}

func (s *IntegrationTestSuite) TestWorkouts_InvalidRequests() {
	ctx := context.Background()
	s.deleteAllWorkouts(ctx)
	t := s.T()

	resp := s.doRequest(ctx, "POST", "/owners/ana/workouts", workouts.NewWorkoutRequest{Name: "empty"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.doRequest(ctx, "POST", "/owners/ana/workouts", benchWorkout("not-a-date", 60))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	noWeight := benchWorkout("2024-01-01", 60)
	noWeight.Exercises[0].Weight = nil
	resp = s.doRequest(ctx, "POST", "/owners/ana/workouts", noWeight)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, 0, s.listWorkoutsRequest(ctx, "ana").Total)
}

func (s *IntegrationTestSuite) TestWorkouts_Analytics() {
	ctx := context.Background()
	s.deleteAllWorkouts(ctx)
	t := s.T()

	s.newWorkoutRequest(ctx, "ana", benchWorkout("2024-01-08", 110))
	s.newWorkoutRequest(ctx, "ana", benchWorkout("2024-01-01", 100))
	s.newWorkoutRequest(ctx, "ana", workouts.NewWorkoutRequest{
		Name: "Pull day",
		Date: "2024-01-01",
		Exercises: []workouts.NewExerciseRequest{
			{MuscleGroup: "Back", ExerciseName: "Chin Ups", Sets: 3, Reps: 8, Weight: kg(0)},
			{MuscleGroup: "Back", ExerciseName: "Assisted Pull Ups", Sets: 2, Reps: 6, Weight: kg(-20), IsAssisted: true},
		},
	})

	result := s.analyticsRequest(ctx, "ana")
	assert.Equal(t, "You completed 3 workout(s) on 2 unique day(s).", result.WorkoutFrequency)

	bench, ok := result.ByMuscleGroup["Chest"]["Bench Press"]
	require.True(t, ok)
	require.Len(t, bench.Progression, 2)
	assert.Equal(t, 3000.0, bench.Progression[0].TotalVolume)
	assert.Equal(t, 3300.0, bench.Progression[1].TotalVolume)
	assert.Contains(t, bench.Summary, "Workouts logged: 2")

	pulls, ok := result.ByMuscleGroup["Back"]["Pull Up + Chin-Up"]
	require.True(t, ok)
	require.Len(t, pulls.Progression, 1)

	empty := s.analyticsRequest(ctx, "nobody")
	assert.Equal(t, "You completed 0 workout(s) on 0 unique day(s).", empty.WorkoutFrequency)
	assert.Empty(t, empty.ByMuscleGroup)
}
