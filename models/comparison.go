package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Comparison stores a dual-provider generation joined into one record. The
// Results column is keyed by provider name; each value is a full generation
// result including its success flag and, when saved, the project id the
// individual result was persisted under.
type Comparison struct {
	ID             uuid.UUID         `json:"comparison_id" gorm:"type:uuid;primaryKey;not null"`
	OriginalPrompt string            `json:"original_prompt" gorm:"type:text;not null"`
	WebsiteType    string            `json:"website_type" gorm:"type:text;not null"`
	Results        datatypes.JSONMap `json:"results" gorm:"type:jsonb"`
	CreatedAt      time.Time         `json:"generated_at"`
}

func (c *Comparison) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}
