// Package challengegen turns a goal into a challenge plan. Plans come from
// an LLM when one is configured; any failure yields a fixed offline plan, so
// generation never fails.
package challengegen

import (
	"context"
	"strings"
	"sync"

	"github.com/abhisek/goalify/internal/challenge"
)

// Input describes the challenge to generate.
type Input struct {
	Goal        string
	Difficulty  challenge.Difficulty
	Duration    int
	UserContext string
}

// normalize fills defaults: medium difficulty and a 7 day duration.
func (in Input) normalize() Input {
	in.Goal = strings.TrimSpace(in.Goal)
	in.UserContext = strings.TrimSpace(in.UserContext)
	if !in.Difficulty.Valid() {
		in.Difficulty = challenge.Medium
	}
	if in.Duration < 1 {
		in.Duration = 7
	}
	return in
}

// Generator produces a new active challenge with a fresh ID and CreatedAt.
// It never fails: the Fallback field of the result reports whether the
// offline plan was used.
type Generator interface {
	Generate(ctx context.Context, in Input) challenge.Challenge
}

// GenerateOptions produces one variant per difficulty, concurrently, in
// easy, medium, hard order.
func GenerateOptions(ctx context.Context, g Generator, in Input) []challenge.Challenge {
	out := make([]challenge.Challenge, len(challenge.Difficulties))

	var wg sync.WaitGroup
	for i, d := range challenge.Difficulties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			variant := in
			variant.Difficulty = d
			out[i] = g.Generate(ctx, variant)
		}()
	}
	wg.Wait()

	return out
}

// Pick returns the option with difficulty d, or the first option when none
// matches. It reports false only when options is empty.
func Pick(options []challenge.Challenge, d challenge.Difficulty) (challenge.Challenge, bool) {
	if len(options) == 0 {
		return challenge.Challenge{}, false
	}
	for _, c := range options {
		if c.Difficulty == d {
			return c, true
		}
	}
	return options[0], true
}
