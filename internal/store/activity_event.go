package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var activityEventColumns = []string{
	"id", "sequence", "timestamp", "kind", "challenge_id", "title",
	"streak_current", "streak_longest", "milestone", "occurred_at",
}

func (r *eventRepo) AppendActivityEvent(ctx context.Context, data ActivityEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	occurred := data.OccurredAt
	if occurred.IsZero() {
		occurred = now()
	}

	query, args := builder().Insert(ActivityEventsTable.Name).
		Columns(activityEventColumns[1:]...).
		Values(
			seqNum, now(), data.Kind, data.ChallengeID, data.Title,
			data.StreakCurrent, data.StreakLongest, data.Milestone, occurred.UTC(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save activity event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryActivityEvents(ctx context.Context, opts QueryOpts) ([]ActivityEventRecord, error) {
	sel := builder().Select(activityEventColumns...).From(builder().Table(ActivityEventsTable.Name))
	return r.queryActivity(ctx, applyQueryOpts(sel, opts))
}

func (r *eventRepo) queryActivity(ctx context.Context, sel *entsql.Selector) ([]ActivityEventRecord, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var records []ActivityEventRecord
	for rows.Next() {
		var rec ActivityEventRecord
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.Kind, &rec.ChallengeID, &rec.Title,
			&rec.StreakCurrent, &rec.StreakLongest, &rec.Milestone, &rec.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return records, nil
}
