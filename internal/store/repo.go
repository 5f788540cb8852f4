package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotVersion is the layout version written by this build.
const SnapshotVersion = 1

// SnapshotData is the serialized tracker state. Every section is optional:
// a snapshot written by an older build, or one that was partially corrupted,
// may lack any of them and the reader fills in defaults per section.
// Timestamps are RFC3339 strings so that a malformed value can be detected
// and dropped on its own instead of failing the whole document.
type SnapshotData struct {
	Version    int                     `json:"version"`
	Revision   int64                   `json:"revision,omitempty"`
	Profile    *ProfileSnapshotData    `json:"profile,omitempty"`
	Streak     *StreakSnapshotData     `json:"streak,omitempty"`
	Challenges *ChallengesSnapshotData `json:"challenges,omitempty"`
	Settings   *SettingsSnapshotData   `json:"settings,omitempty"`
}

// ProfileSnapshotData is the onboarding profile.
type ProfileSnapshotData struct {
	Name                 string   `json:"name,omitempty"`
	Age                  int      `json:"age,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	LifeSituation        string   `json:"life_situation,omitempty"`
	MainGoals            []string `json:"main_goals,omitempty"`
	DifficultyPreference string   `json:"difficulty_preference,omitempty"`
	OnboardingCompleted  bool     `json:"onboarding_completed"`
	CreatedAt            *string  `json:"created_at,omitempty"`
}

// StreakSnapshotData is the streak counter.
type StreakSnapshotData struct {
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	LastActivityDate *string `json:"last_activity_date,omitempty"`
}

// ChallengesSnapshotData holds the open set, the active reference and the
// completed archive.
type ChallengesSnapshotData struct {
	Open     []ChallengeData `json:"open,omitempty"`
	ActiveID *string         `json:"active_id,omitempty"`
	Archive  []ChallengeData `json:"archive,omitempty"`
}

// ChallengeData is one serialized challenge.
type ChallengeData struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Goal          string   `json:"goal,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Duration      int      `json:"duration"`
	CreatedAt     string   `json:"created_at,omitempty"`
	Progress      int      `json:"progress"`
	DaysRemaining int      `json:"days_remaining"`
	Status        string   `json:"status,omitempty"`
	CompletedAt   *string  `json:"completed_at,omitempty"`
	DailyTasks    []string `json:"daily_tasks,omitempty"`
	Milestones    []string `json:"milestones,omitempty"`
	Tips          []string `json:"tips,omitempty"`
	Fallback      bool     `json:"fallback,omitempty"`
}

// SettingsSnapshotData holds user preferences. Pointer fields distinguish
// "not stored" from a stored zero value.
type SettingsSnapshotData struct {
	Theme             *string `json:"theme,omitempty"`
	Notifications     *bool   `json:"notifications,omitempty"`
	Language          *string `json:"language,omitempty"`
	DefaultDifficulty *string `json:"default_difficulty,omitempty"`
	DefaultDuration   *int    `json:"default_duration,omitempty"`
}

// Snapshot represents a point-in-time capture of tracker state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages tracker state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ActivityEventData records a tracker transition worth keeping in history:
// streak changes, completions, milestones.
type ActivityEventData struct {
	Kind          string
	ChallengeID   string
	Title         string
	StreakCurrent int
	StreakLongest int
	Milestone     int
	OccurredAt    time.Time
}

// ActivityEventRecord is a stored activity event.
type ActivityEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ActivityEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendActivityEvent records a tracker transition.
	AppendActivityEvent(ctx context.Context, data ActivityEventData) error

	// QueryActivityEvents returns activity events, newest first.
	QueryActivityEvents(ctx context.Context, opts QueryOpts) ([]ActivityEventRecord, error)
}
