package analytics

import (
	"fmt"
	"sort"
	"time"
)

var workoutDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseWorkoutDate parses the date formats accepted from the workouts store.
func ParseWorkoutDate(raw string) (time.Time, error) {
	for _, layout := range workoutDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// Progressions is the per-group time series built from a full workout history.
type Progressions struct {
	keys   []GroupKey
	points map[GroupKey][]ProgressionPoint
}

func newProgressions() *Progressions {
	return &Progressions{
		points: make(map[GroupKey][]ProgressionPoint),
	}
}

func (p *Progressions) add(key GroupKey, point ProgressionPoint) {
	if _, ok := p.points[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.points[key] = append(p.points[key], point)
}

// Keys returns the group keys in the order they were first seen chronologically.
func (p *Progressions) Keys() []GroupKey {
	keys := make([]GroupKey, len(p.keys))
	copy(keys, p.keys)
	return keys
}

func (p *Progressions) Points(key GroupKey) []ProgressionPoint {
	return p.points[key]
}

func (p *Progressions) Len() int {
	return len(p.keys)
}

type datedRecord struct {
	date   time.Time
	record WorkoutRecord
}

// BuildProgressions sorts the records by date (stable, the input slice is left untouched)
// and turns every (workout, group) aggregate into one progression point.
// Workouts on the same day are not merged.
func BuildProgressions(records []WorkoutRecord) (*Progressions, error) {
	dated := make([]datedRecord, 0, len(records))
	for _, r := range records {
		date, err := ParseWorkoutDate(r.Date)
		if err != nil {
			return nil, &ValidationError{
				RecordID: r.ID,
				Field:    "date",
				Reason:   err.Error(),
			}
		}
		dated = append(dated, datedRecord{date: date, record: r})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})

	progressions := newProgressions()
	for _, dr := range dated {
		aggregates, err := AggregateWorkout(dr.record)
		if err != nil {
			return nil, err
		}

		for _, key := range aggregates.keys {
			agg := aggregates.byKey[key]
			progressions.add(key, ProgressionPoint{
				Date:            dr.date,
				TotalVolume:     agg.TotalVolume,
				AvgVolumePerSet: avgVolumePerSet(agg.TotalVolume, agg.TotalSets),
				MaxWeight:       agg.MaxWeight,
			})
		}
	}

	return progressions, nil
}

func avgVolumePerSet(totalVolume float64, totalSets int) float64 {
	if totalSets == 0 {
		return 0
	}
	return totalVolume / float64(totalSets)
}
