package analytics

const (
	backMuscleGroup  = "Back"
	pullChinExercise = "Pull Up + Chin-Up"
)

// pullChinAliases are the back exercise variants tracked as one progression.
var pullChinAliases = map[string]bool{
	"Pull Ups":          true,
	"Assisted Pull Ups": true,
	"Chin Ups":          true,
	"Assisted Chin-Ups": true,
}

// GroupKey identifies the exercise group volumes and weights are merged under.
type GroupKey struct {
	MuscleGroup string
	Exercise    string
}

func (k GroupKey) String() string {
	return k.MuscleGroup + "-" + k.Exercise
}

// ResolveKey canonicalizes the muscle group / exercise name pair.
// Unknown names map to themselves.
func ResolveKey(muscleGroup, exerciseName string) GroupKey {
	if muscleGroup == backMuscleGroup && pullChinAliases[exerciseName] {
		return GroupKey{
			MuscleGroup: backMuscleGroup,
			Exercise:    pullChinExercise,
		}
	}
	return GroupKey{
		MuscleGroup: muscleGroup,
		Exercise:    exerciseName,
	}
}
