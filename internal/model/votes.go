package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportVote records a single irrevocable vote. The store enforces
// one row per (report, user) pair.
type ReportVote struct {
	ID        uuid.UUID `json:"id"`
	ReportID  uuid.UUID `json:"reportId"`
	UserID    uuid.UUID `json:"userId"`
	Direction string    `json:"direction" validate:"votedirection"`
	CreatedAt time.Time `json:"createdAt"`
}
