package analytics

import "time"

// WorkoutRecord is a single logged workout, as delivered by the workouts store.
// Date is kept in the form the caller provided it and parsed only when
// the progression is built.
type WorkoutRecord struct {
	ID        int             `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// ExerciseEntry is one exercise logged within a workout.
// A negative Weight means the exercise was assisted (the weight helped instead of resisted).
// The sign is authoritative, IsAssisted is informational only.
type ExerciseEntry struct {
	MuscleGroup  string  `json:"muscleGroup"`
	ExerciseName string  `json:"exercise"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	IsAssisted   bool    `json:"isAssisted"`
}

type WorkoutAggregate struct {
	TotalVolume float64 `json:"totalVolume"`
	TotalSets   int     `json:"totalSets"`
	MaxWeight   float64 `json:"maxWeight"`
}

// ProgressionPoint is the aggregate of one workout for one exercise group.
type ProgressionPoint struct {
	Date            time.Time `json:"date"`
	TotalVolume     float64   `json:"totalVolume"`
	AvgVolumePerSet float64   `json:"avgVolumePerSet"`
	MaxWeight       float64   `json:"maxWeight"`
}

type ExerciseAnalytics struct {
	Progression []ProgressionPoint `json:"progression"`
	Summary     []string           `json:"summary"`
}

// AnalyticsResult maps muscle group -> exercise name -> analytics.
type AnalyticsResult struct {
	WorkoutFrequency string                                  `json:"workoutFrequency"`
	ByMuscleGroup    map[string]map[string]ExerciseAnalytics `json:"byMuscleGroup"`
}
