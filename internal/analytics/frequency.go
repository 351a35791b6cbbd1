package analytics

import "fmt"

// WorkoutFrequency counts all workouts and the distinct workout dates among them.
// Dates are compared as given, without parsing.
func WorkoutFrequency(records []WorkoutRecord) string {
	uniqueDays := make(map[string]struct{}, len(records))
	for _, r := range records {
		uniqueDays[r.Date] = struct{}{}
	}
	return fmt.Sprintf(
		"You completed %d workout(s) on %d unique day(s).",
		len(records), len(uniqueDays),
	)
}
