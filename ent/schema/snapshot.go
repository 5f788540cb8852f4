package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot holds one persisted tracker state. The row with the highest id
// is the one loaded on startup.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Tracker revision when the snapshot was written"),
		field.Time("timestamp").
			Default(time.Now),
		field.JSON("data", map[string]any{}).
			Comment("Profile, streak, challenges and settings"),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}
