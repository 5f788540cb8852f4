package tracker

import (
	"time"

	"github.com/abhisek/goalify/internal/challenge"
	"github.com/abhisek/goalify/internal/store"
	"github.com/abhisek/goalify/internal/streak"
)

// ToSnapshotData serializes s.
func ToSnapshotData(s State) store.SnapshotData {
	data := store.SnapshotData{
		Version:  store.SnapshotVersion,
		Revision: s.Revision,
		Profile: &store.ProfileSnapshotData{
			Name:                 s.Profile.Name,
			Age:                  s.Profile.Age,
			Gender:               s.Profile.Gender,
			LifeSituation:        s.Profile.LifeSituation,
			MainGoals:            s.Profile.MainGoals,
			DifficultyPreference: string(s.Profile.DifficultyPreference),
			OnboardingCompleted:  s.Profile.OnboardingCompleted,
			CreatedAt:            formatTime(s.Profile.CreatedAt),
		},
		Streak: &store.StreakSnapshotData{
			CurrentStreak:    s.Streak.Current,
			LongestStreak:    s.Streak.Longest,
			LastActivityDate: formatTime(s.Streak.LastActivity),
		},
		Challenges: &store.ChallengesSnapshotData{
			Open:    challengesToData(s.Open),
			Archive: challengesToData(s.Archive),
		},
		Settings: &store.SettingsSnapshotData{
			Theme:             ptr(string(s.Settings.Theme)),
			Notifications:     ptr(s.Settings.Notifications),
			Language:          ptr(s.Settings.Language),
			DefaultDifficulty: ptr(string(s.Settings.DefaultDifficulty)),
			DefaultDuration:   ptr(s.Settings.DefaultDuration),
		},
	}
	if s.ActiveID != "" {
		data.Challenges.ActiveID = ptr(s.ActiveID)
	}
	return data
}

func challengesToData(in []challenge.Challenge) []store.ChallengeData {
	if len(in) == 0 {
		return nil
	}
	out := make([]store.ChallengeData, len(in))
	for i, c := range in {
		out[i] = store.ChallengeData{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			Goal:          c.Goal,
			Difficulty:    string(c.Difficulty),
			Duration:      c.Duration,
			CreatedAt:     c.CreatedAt.Format(time.RFC3339Nano),
			Progress:      c.Progress,
			DaysRemaining: c.DaysRemaining,
			Status:        string(c.Status),
			CompletedAt:   formatTime(c.CompletedAt),
			DailyTasks:    c.DailyTasks,
			Milestones:    c.Milestones,
			Tips:          c.Tips,
			Fallback:      c.Fallback,
		}
		if c.CreatedAt.IsZero() {
			out[i].CreatedAt = ""
		}
	}
	return out
}

// FromSnapshotData rebuilds a state from a stored snapshot. Each missing
// section falls back to its default, malformed timestamps are dropped, and
// the collections are repaired so that the result always passes Validate.
// now stands in for a completion time that was lost.
func FromSnapshotData(data store.SnapshotData, now time.Time) State {
	s := DefaultState()
	s.Revision = data.Revision

	if p := data.Profile; p != nil {
		s.Profile = Profile{
			Name:                 p.Name,
			Age:                  p.Age,
			Gender:               p.Gender,
			LifeSituation:        p.LifeSituation,
			MainGoals:            append([]string(nil), p.MainGoals...),
			DifficultyPreference: parseDifficulty(p.DifficultyPreference, ""),
			OnboardingCompleted:  p.OnboardingCompleted,
			CreatedAt:            parseTime(p.CreatedAt),
		}
		if len(s.Profile.MainGoals) == 0 {
			s.Profile.MainGoals = nil
		}
	}

	if st := data.Streak; st != nil {
		current := max(st.CurrentStreak, 0)
		s.Streak = streak.State{
			Current:      current,
			Longest:      max(st.LongestStreak, current),
			LastActivity: parseTime(st.LastActivityDate),
		}
	}

	if cs := data.Challenges; cs != nil {
		s.Open, s.Archive = repairCollections(
			challengesFromData(cs.Open, s.Settings.DefaultDifficulty),
			challengesFromData(cs.Archive, s.Settings.DefaultDifficulty),
			now,
		)
		if cs.ActiveID != nil && indexOf(s.Open, *cs.ActiveID) >= 0 {
			s.ActiveID = *cs.ActiveID
		}
	}

	if st := data.Settings; st != nil {
		if st.Theme != nil {
			if t, err := ParseTheme(*st.Theme); err == nil {
				s.Settings.Theme = t
			}
		}
		if st.Notifications != nil {
			s.Settings.Notifications = *st.Notifications
		}
		if st.Language != nil && *st.Language != "" {
			s.Settings.Language = *st.Language
		}
		if st.DefaultDifficulty != nil {
			s.Settings.DefaultDifficulty = parseDifficulty(*st.DefaultDifficulty, s.Settings.DefaultDifficulty)
		}
		if st.DefaultDuration != nil && challenge.ValidDuration(*st.DefaultDuration) {
			s.Settings.DefaultDuration = *st.DefaultDuration
		}
	}

	return s
}

func challengesFromData(in []store.ChallengeData, fallback challenge.Difficulty) []challenge.Challenge {
	var out []challenge.Challenge
	for _, d := range in {
		if d.ID == "" {
			continue
		}
		c := challenge.Challenge{
			ID:            d.ID,
			Title:         d.Title,
			Description:   d.Description,
			Goal:          d.Goal,
			Difficulty:    parseDifficulty(d.Difficulty, fallback),
			Duration:      d.Duration,
			Progress:      min(max(d.Progress, 0), 100),
			DaysRemaining: max(d.DaysRemaining, 0),
			Status:        challenge.Active,
			CompletedAt:   parseTime(d.CompletedAt),
			DailyTasks:    d.DailyTasks,
			Milestones:    d.Milestones,
			Tips:          d.Tips,
			Fallback:      d.Fallback,
		}
		if t := parseTime(&d.CreatedAt); t != nil {
			c.CreatedAt = *t
		}
		if challenge.Status(d.Status) == challenge.Completed {
			c.Status = challenge.Completed
		}
		out = append(out, c)
	}
	return out
}

// repairCollections enforces the open/archive invariants on loaded data:
// IDs are unique across both sets with the archive winning, completed
// challenges leave the open set, and every archived challenge is completed
// with a completion time.
func repairCollections(open, archived []challenge.Challenge, now time.Time) ([]challenge.Challenge, []challenge.Challenge) {
	var (
		outOpen, outArchive []challenge.Challenge
		seen                = map[string]bool{}
	)

	settle := func(c challenge.Challenge) {
		seen[c.ID] = true
		outArchive = append(outArchive, challenge.MarkCompleted(c, now))
	}

	for _, c := range archived {
		if !seen[c.ID] {
			settle(c)
		}
	}
	for _, c := range open {
		switch {
		case seen[c.ID]:
		case c.IsCompleted():
			settle(c)
		default:
			seen[c.ID] = true
			outOpen = append(outOpen, c)
		}
	}
	return outOpen, outArchive
}

func parseDifficulty(s string, fallback challenge.Difficulty) challenge.Difficulty {
	if d, err := challenge.ParseDifficulty(s); err == nil {
		return d
	}
	return fallback
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return ptr(t.Format(time.RFC3339Nano))
}

// parseTime reads an RFC3339 timestamp into local time. Empty and malformed
// values are absent.
func parseTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil
	}
	t = t.Local()
	return &t
}

func ptr[T any](v T) *T { return &v }
