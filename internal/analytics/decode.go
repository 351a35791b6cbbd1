package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// recordJSON mirrors WorkoutRecord on the wire, with Weight kept as a pointer
// so that a null or absent weight can be told apart from zero.
type recordJSON struct {
	ID        int         `json:"id"`
	OwnerID   string      `json:"ownerId"`
	Name      string      `json:"name"`
	Date      string      `json:"date"`
	Exercises []entryJSON `json:"exercises"`
}

type entryJSON struct {
	MuscleGroup  string   `json:"muscleGroup"`
	ExerciseName string   `json:"exercise"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
	Weight       *float64 `json:"weight"`
	IsAssisted   bool     `json:"isAssisted"`
}

// DecodeRecords reads a JSON array of workout records.
// Non-numeric sets, reps or weights, a missing weight and a non-string date
// are reported as a ValidationError.
func DecodeRecords(r io.Reader) ([]WorkoutRecord, error) {
	var raw []recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && (typeErr.Struct == "entryJSON" || typeErr.Struct == "recordJSON") {
			return nil, &ValidationError{
				RecordID: -1,
				Field:    typeErr.Field,
				Reason:   fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return nil, fmt.Errorf("decode workout records: %w", err)
	}

	records := make([]WorkoutRecord, 0, len(raw))
	for _, rec := range raw {
		record := WorkoutRecord{
			ID:        rec.ID,
			OwnerID:   rec.OwnerID,
			Name:      rec.Name,
			Date:      rec.Date,
			Exercises: make([]ExerciseEntry, 0, len(rec.Exercises)),
		}
		for i, e := range rec.Exercises {
			if e.Weight == nil {
				return nil, &ValidationError{
					RecordID: rec.ID,
					Field:    fmt.Sprintf("exercises[%d].weight", i),
					Reason:   "missing",
				}
			}
			record.Exercises = append(record.Exercises, ExerciseEntry{
				MuscleGroup:  e.MuscleGroup,
				ExerciseName: e.ExerciseName,
				Sets:         e.Sets,
				Reps:         e.Reps,
				Weight:       *e.Weight,
				IsAssisted:   e.IsAssisted,
			})
		}
		records = append(records, record)
	}

	return records, nil
}
