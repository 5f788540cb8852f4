package challengegen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/clock"
	"github.com/abhisek/goalify/internal/llm"
)

// LLMGenerator implements Generator with an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	clock    clock.Clock
	purpose  string
}

// New creates an LLMGenerator. provider may be nil, in which case every
// challenge is the fallback plan. clk stamps CreatedAt; nil means the
// system clock.
func New(provider llm.Provider, cfg Config, clk clock.Clock) *LLMGenerator {
	if clk == nil {
		clk = clock.System{}
	}
	return &LLMGenerator{provider: provider, config: cfg, clock: clk, purpose: llm.PurposeChallengeGen}
}

// ForOptions returns a copy of g whose requests are logged as option
// generation.
func (g *LLMGenerator) ForOptions() *LLMGenerator {
	cp := *g
	cp.purpose = llm.PurposeChallengeOptions
	return &cp
}

// planOutput is the model response before validation.
type planOutput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	DailyTasks  []string `json:"dailyTasks"`
	Milestones  []string `json:"milestones"`
	Tips        []string `json:"tips"`
}

// Generate returns a generated plan, or the fallback plan when the provider
// is missing, fails, times out or returns something unusable.
func (g *LLMGenerator) Generate(ctx context.Context, in Input) challenge.Challenge {
	in = in.normalize()

	c, err := g.generate(ctx, in)
	if err != nil {
		slog.Warn("challenge generation failed, using fallback plan", "goal", in.Goal, "difficulty", in.Difficulty, "error", err)
		c = Fallback(in)
	}
	return g.stamp(c)
}

func (g *LLMGenerator) generate(ctx context.Context, in Input) (challenge.Challenge, error) {
	if g.provider == nil {
		return challenge.Challenge{}, fmt.Errorf("no LLM provider configured")
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, g.purpose)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      PlanSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return challenge.Challenge{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw planOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return challenge.Challenge{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if err := validatePlan(&raw); err != nil {
		return challenge.Challenge{}, err
	}
	if raw.Duration != in.Duration || raw.Difficulty != string(in.Difficulty) {
		slog.Debug("model changed plan parameters, keeping requested ones",
			"duration", raw.Duration, "difficulty", raw.Difficulty)
	}

	// The requested duration and difficulty win over what the model echoed.
	return challenge.Challenge{
		Title:       raw.Title,
		Description: raw.Description,
		Goal:        in.Goal,
		Difficulty:  in.Difficulty,
		Duration:    in.Duration,
		DailyTasks:  raw.DailyTasks,
		Milestones:  raw.Milestones,
		Tips:        raw.Tips,
	}, nil
}

// stamp makes c a new active challenge.
func (g *LLMGenerator) stamp(c challenge.Challenge) challenge.Challenge {
	c.ID = uuid.NewString()
	c.CreatedAt = g.clock.Now()
	c.Status = challenge.Active
	c.Progress = 0
	c.DaysRemaining = max(c.Duration, 1)
	c.CompletedAt = nil
	return c
}
