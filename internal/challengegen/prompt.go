package challengegen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a supportive habit coach who designs personalized challenges for goal achievement.

Rules:
- Design one challenge for the goal, difficulty and duration given.
- Easy challenges take 10-15 minutes a day, medium 20-40 minutes, hard an hour or more.
- Give 3 to 5 daily tasks that are concrete and can be done every day of the challenge.
- Give 2 to 4 milestones spread across the duration.
- Give 3 short tips.
- Keep the title under 60 characters.
- Respond with JSON only.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %s\n", in.Goal)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Duration: %d days\n", in.Duration)
	if in.UserContext != "" {
		fmt.Fprintf(&b, "\nAbout the user:\n%s\n", in.UserContext)
	}

	return strings.TrimRight(b.String(), "\n")
}
