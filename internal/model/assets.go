package model

import (
	"time"

	"github.com/google/uuid"
)

// PublicFacility is a fixed municipal asset rendered on the map
// (public toilet, collection point, recycling centre).
type PublicFacility struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// WorkerLocation is the latest position fix for a waste-collection
// worker or vehicle.
type WorkerLocation struct {
	ID         uuid.UUID `json:"id"`
	WorkerID   uuid.UUID `json:"workerId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recordedAt"`
}

type ReportLocationRequest struct {
	WorkerID  uuid.UUID `json:"workerId" validate:"required"`
	Latitude  float64   `json:"latitude" validate:"latitude"`
	Longitude float64   `json:"longitude" validate:"longitude"`
}

// WorkerTrack is a worker's recent path encoded as a polyline.
type WorkerTrack struct {
	WorkerID uuid.UUID `json:"workerId"`
	Polyline string    `json:"polyline"`
	Points   int       `json:"points"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}
