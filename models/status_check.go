package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusCheck is a client-reported health probe, kept for compatibility with
// the original frontend's status endpoint.
type StatusCheck struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	ClientName string    `json:"client_name" gorm:"type:text;not null"`
	Timestamp  time.Time `json:"timestamp"`
}

func (s *StatusCheck) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now().UTC()
	}
}
