package challengegen

import (
	"fmt"

	"github.com/abhisek/goalify/internal/challenge"
)

// Fallback returns the offline plan for in. ID and CreatedAt are left for
// the generator to stamp.
func Fallback(in Input) challenge.Challenge {
	in = in.normalize()
	return challenge.Challenge{
		Title:       fmt.Sprintf("%s Challenge", in.Goal),
		Description: fmt.Sprintf("A %s challenge to help you achieve your goal: %s", in.Difficulty, in.Goal),
		Goal:        in.Goal,
		Difficulty:  in.Difficulty,
		Duration:    in.Duration,
		DailyTasks: []string{
			"Set aside time each day to work on your goal",
			"Track your progress daily",
			"Reflect on your achievements",
		},
		Milestones: []string{
			fmt.Sprintf("Complete first week of %s", in.Goal),
			"Reach halfway point",
		},
		Tips: []string{
			"Stay consistent",
			"Celebrate small wins",
			"Don't be too hard on yourself",
		},
		Fallback: true,
	}
}
