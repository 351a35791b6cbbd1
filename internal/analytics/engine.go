package analytics

import (
	"golang.org/x/sync/errgroup"
)

// Engine computes workout analytics. The zero value computes everything sequentially,
// Workers > 1 summarizes exercise groups concurrently.
type Engine struct {
	Workers int
}

// Recompute runs the whole analytics pipeline with the default engine.
func Recompute(records []WorkoutRecord) (*AnalyticsResult, error) {
	return Engine{}.Recompute(records)
}

// Recompute builds the analytics for the given records from scratch.
// On a validation error no partial result is returned.
func (e Engine) Recompute(records []WorkoutRecord) (*AnalyticsResult, error) {
	progressions, err := BuildProgressions(records)
	if err != nil {
		return nil, err
	}

	keys := progressions.Keys()
	summaries := make([][]string, len(keys))
	if e.Workers > 1 && len(keys) > 1 {
		var g errgroup.Group
		g.SetLimit(e.Workers)
		for i, key := range keys {
			g.Go(func() error {
				summaries[i] = Summarize(key.Exercise, progressions.Points(key))
				return nil
			})
		}
		// summaries never fail
		_ = g.Wait()
	} else {
		for i, key := range keys {
			summaries[i] = Summarize(key.Exercise, progressions.Points(key))
		}
	}

	result := &AnalyticsResult{
		WorkoutFrequency: WorkoutFrequency(records),
		ByMuscleGroup:    make(map[string]map[string]ExerciseAnalytics),
	}
	for i, key := range keys {
		exercises, ok := result.ByMuscleGroup[key.MuscleGroup]
		if !ok {
			exercises = make(map[string]ExerciseAnalytics)
			result.ByMuscleGroup[key.MuscleGroup] = exercises
		}
		exercises[key.Exercise] = ExerciseAnalytics{
			Progression: progressions.Points(key),
			Summary:     summaries[i],
		}
	}

	return result, nil
}
