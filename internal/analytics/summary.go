package analytics

import (
	"fmt"
	"math"
	"strconv"
)

type summaryMetric struct {
	name   string
	value  func(ProgressionPoint) float64
	format func(float64) string
}

var summaryMetrics = []summaryMetric{
	{
		name:   "Total Volume",
		value:  func(p ProgressionPoint) float64 { return p.TotalVolume },
		format: formatValue,
	},
	{
		name:   "Avg Volume/Set",
		value:  func(p ProgressionPoint) float64 { return p.AvgVolumePerSet },
		format: formatValue,
	},
	{
		name:   "Max Weight",
		value:  func(p ProgressionPoint) float64 { return p.MaxWeight },
		format: weightLabel,
	},
}

// Summarize renders the human readable trend lines for one exercise group.
// Points must be sorted by date.
func Summarize(exerciseName string, points []ProgressionPoint) []string {
	if len(points) == 0 {
		return []string{fmt.Sprintf("No data recorded for %s.", exerciseName)}
	}

	summary := []string{fmt.Sprintf("Workouts logged: %d", len(points))}
	if len(points) < 2 {
		return append(summary, fmt.Sprintf(
			"Insufficient data for %s: at least 2 workouts are needed to compute trends.",
			exerciseName,
		))
	}

	first := points[0]
	previous := points[len(points)-2]
	latest := points[len(points)-1]

	for _, m := range summaryMetrics {
		summary = append(summary,
			fmt.Sprintf("%s vs Previous: %s (%s -> %s)",
				m.name,
				formatPercent(PercentChange(m.value(previous), m.value(latest))),
				m.format(m.value(previous)),
				m.format(m.value(latest)),
			),
			fmt.Sprintf("%s vs First: %s (%s -> %s)",
				m.name,
				formatPercent(PercentChange(m.value(first), m.value(latest))),
				m.format(m.value(first)),
				m.format(m.value(latest)),
			),
		)
	}

	if len(points) > 2 {
		summary = append(summary, fmt.Sprintf(
			"Avg Volume Change per Workout: %s",
			formatPercent(avgConsecutiveChange(points)),
		))
	}

	allTimeMax := points[0].MaxWeight
	for _, p := range points[1:] {
		allTimeMax = math.Max(allTimeMax, p.MaxWeight)
	}
	summary = append(summary, fmt.Sprintf("All-time Max Weight: %s", weightLabel(allTimeMax)))

	return summary
}

// avgConsecutiveChange is the mean volume change between consecutive workouts.
func avgConsecutiveChange(points []ProgressionPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += PercentChange(points[i-1].TotalVolume, points[i].TotalVolume)
	}
	return total / float64(len(points)-1)
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}

// formatValue keeps at most 2 decimals and drops trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func weightLabel(w float64) string {
	if w < 0 {
		return formatValue(math.Abs(w)) + " kg (assisted)"
	}
	return formatValue(w) + " kg"
}
