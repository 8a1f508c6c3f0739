package model

import (
	"time"

	"github.com/google/uuid"
)

// CivicReport is a citizen-submitted issue record. Support and
// opposition counts are maintained in the same transaction as the
// vote rows they summarize.
type CivicReport struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Type            string        `json:"type"` // ILLEGAL_DUMPING, BROKEN_TOILET, OVERFLOWING_BIN, OTHER
	ImageURL        *string       `json:"imageUrl"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	Address         *string       `json:"address,omitempty"`
	SupportCount    int           `json:"supportCount"`
	OppositionCount int           `json:"oppositionCount"`
	Status          string        `json:"status"` // pending, escalated, resolved
	CreatedAt       time.Time     `json:"createdAt"`
	CreatedByID     uuid.UUID     `json:"createdById"`
	CreatedBy       *ReportAuthor `json:"createdBy,omitempty"`
}

// ReportAuthor is the subset of the creating user embedded in
// report responses.
type ReportAuthor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

// AnnotatedReport is a report decorated relative to the viewer.
type AnnotatedReport struct {
	CivicReport
	IsOwnReport bool    `json:"isOwnReport"`
	UserVote    *string `json:"userVote"` // support, oppose or null
	HasVoted    bool    `json:"hasVoted"`
	CanVote     bool    `json:"canVote"`
}

type CreateReportRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type" validate:"required"`
	Latitude    float64   `json:"latitude" validate:"latitude"`
	Longitude   float64   `json:"longitude" validate:"longitude"`
	ImageURL    *string   `json:"imageUrl"`
	Address     *string   `json:"address"`
	CreatedByID uuid.UUID `json:"-"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,reportstatus"`
}
