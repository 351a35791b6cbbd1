package analytics

import (
	"fmt"
	"math"
)

// WorkoutAggregates holds the per-group totals of a single workout,
// keys are kept in the order they first appear in the workout.
type WorkoutAggregates struct {
	keys  []GroupKey
	byKey map[GroupKey]*WorkoutAggregate
}

func (a *WorkoutAggregates) Keys() []GroupKey {
	keys := make([]GroupKey, len(a.keys))
	copy(keys, a.keys)
	return keys
}

func (a *WorkoutAggregates) Get(key GroupKey) (WorkoutAggregate, bool) {
	agg, ok := a.byKey[key]
	if !ok {
		return WorkoutAggregate{}, false
	}
	return *agg, true
}

func (a *WorkoutAggregates) Len() int {
	return len(a.keys)
}

// AggregateWorkout reduces the exercise entries of one workout into per-group totals.
// Max weight is the max of the signed weights, so an assisted set never beats an unassisted one.
func AggregateWorkout(record WorkoutRecord) (*WorkoutAggregates, error) {
	aggregates := &WorkoutAggregates{
		byKey: make(map[GroupKey]*WorkoutAggregate),
	}

	for i, entry := range record.Exercises {
		if err := validateEntry(record.ID, i, entry); err != nil {
			return nil, err
		}

		key := ResolveKey(entry.MuscleGroup, entry.ExerciseName)
		volume := float64(entry.Sets) * float64(entry.Reps) * math.Abs(entry.Weight)

		agg, ok := aggregates.byKey[key]
		if !ok {
			aggregates.keys = append(aggregates.keys, key)
			aggregates.byKey[key] = &WorkoutAggregate{
				TotalVolume: volume,
				TotalSets:   entry.Sets,
				MaxWeight:   entry.Weight,
			}
			continue
		}

		agg.TotalVolume += volume
		agg.TotalSets += entry.Sets
		agg.MaxWeight = math.Max(agg.MaxWeight, entry.Weight)
	}

	return aggregates, nil
}

func validateEntry(recordID, index int, entry ExerciseEntry) error {
	field := func(name string) string {
		return fmt.Sprintf("exercises[%d].%s", index, name)
	}

	if entry.Sets <= 0 {
		return &ValidationError{
			RecordID: recordID,
			Field:    field("sets"),
			Reason:   fmt.Sprintf("must be positive, got %d", entry.Sets),
		}
	}
	if entry.Reps <= 0 {
		return &ValidationError{
			RecordID: recordID,
			Field:    field("reps"),
			Reason:   fmt.Sprintf("must be positive, got %d", entry.Reps),
		}
	}
	if math.IsNaN(entry.Weight) || math.IsInf(entry.Weight, 0) {
		return &ValidationError{
			RecordID: recordID,
			Field:    field("weight"),
			Reason:   "not a number",
		}
	}

	return nil
}
