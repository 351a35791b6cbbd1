package insights

import "github.com/2beens/liftstats/internal/analytics"

// ProjectedWorkout is the minimized form of a workout sent to the summarization collaborator.
type ProjectedWorkout struct {
	Name      string              `json:"name"`
	Date      string              `json:"date"`
	Exercises []ProjectedExercise `json:"exercises"`
}

type ProjectedExercise struct {
	Exercise     string  `json:"exercise"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	IsAssistance bool    `json:"isAssistance"`
}

// Project drops ids, owner and muscle groups, keeping record and exercise order.
func Project(records []analytics.WorkoutRecord) []ProjectedWorkout {
	projected := make([]ProjectedWorkout, 0, len(records))
	for _, r := range records {
		exercises := make([]ProjectedExercise, 0, len(r.Exercises))
		for _, e := range r.Exercises {
			exercises = append(exercises, ProjectedExercise{
				Exercise:     e.ExerciseName,
				Sets:         e.Sets,
				Reps:         e.Reps,
				Weight:       e.Weight,
				IsAssistance: e.IsAssisted,
			})
		}
		projected = append(projected, ProjectedWorkout{
			Name:      r.Name,
			Date:      r.Date,
			Exercises: exercises,
		})
	}
	return projected
}
