package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ActivityEvent is one entry of the user's history: a streak change, a
// created or completed challenge, or a milestone.
type ActivityEvent struct {
	ent.Schema
}

func (ActivityEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ActivityEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").
			Comment("streak_reset, streak_extended, challenge_created, challenge_completed or milestone_reached"),
		field.String("challenge_id").Default(""),
		field.String("title").Default(""),
		field.Int("streak_current").Default(0),
		field.Int("streak_longest").Default(0),
		field.Int("milestone").Default(0),
		field.Time("occurred_at").
			Comment("Clock time of the transition, which may differ from timestamp"),
	}
}

func (ActivityEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
	}
}
