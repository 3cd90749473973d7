package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MissionTemplate is a saved "quick start" draft a user can reuse to
// pre-populate a new wizard session. Draft is an opaque JSON blob holding a
// MissionDraft subset.
type MissionTemplate struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Name      string          `db:"name" json:"name"`
	Draft     json.RawMessage `db:"draft" json:"draft"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
