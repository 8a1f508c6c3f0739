package rest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util"
)

var ErrWorkerNotFound = errors.New("worker has no recorded positions")

func (api *API) ListFacilitiesRepo(ctx context.Context) ([]model.PublicFacility, error) {
	query := `
        SELECT id, type, name, latitude, longitude
        FROM public_facilities
        ORDER BY name
    `
	rows, err := api.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying facilities: %w", err)
	}
	defer rows.Close()

	var facilities []model.PublicFacility
	for rows.Next() {
		var f model.PublicFacility
		if err := rows.Scan(&f.ID, &f.Type, &f.Name, &f.Latitude, &f.Longitude); err != nil {
			return nil, fmt.Errorf("scanning facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

// LatestWorkerLocationsRepo returns the most recent position fix per worker.
func (api *API) LatestWorkerLocationsRepo(ctx context.Context) ([]model.WorkerLocation, error) {
	query := `
        SELECT DISTINCT ON (worker_id)
            id, worker_id, latitude, longitude, recorded_at
        FROM worker_locations
        ORDER BY worker_id, recorded_at DESC
    `
	rows, err := api.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying worker locations: %w", err)
	}
	defer rows.Close()

	var locations []model.WorkerLocation
	for rows.Next() {
		var loc model.WorkerLocation
		if err := rows.Scan(&loc.ID, &loc.WorkerID, &loc.Latitude, &loc.Longitude, &loc.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning worker location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (api *API) InsertWorkerLocationRepo(ctx context.Context, req model.ReportLocationRequest) (model.WorkerLocation, error) {
	query := `
        INSERT INTO worker_locations (worker_id, latitude, longitude)
        VALUES ($1, $2, $3)
        RETURNING id, worker_id, latitude, longitude, recorded_at
    `
	var loc model.WorkerLocation
	err := api.DB.QueryRow(ctx, query, req.WorkerID, req.Latitude, req.Longitude).Scan(
		&loc.ID, &loc.WorkerID, &loc.Latitude, &loc.Longitude, &loc.RecordedAt,
	)
	if err != nil {
		return model.WorkerLocation{}, fmt.Errorf("inserting worker location: %w", err)
	}
	return loc, nil
}

// WorkerTrackRepo returns a worker's positions over the window,
// oldest first, ready for polyline encoding.
func (api *API) WorkerTrackRepo(ctx context.Context, workerID uuid.UUID, window time.Duration) ([]util.Coordinate, time.Time, time.Time, error) {
	query := `
        SELECT latitude, longitude, recorded_at
        FROM worker_locations
        WHERE worker_id = $1 AND recorded_at > NOW() - $2::interval
        ORDER BY recorded_at ASC
    `
	rows, err := api.DB.Query(ctx, query, workerID, window.String())
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("querying worker track: %w", err)
	}
	defer rows.Close()

	var coords []util.Coordinate
	var from, to time.Time
	for rows.Next() {
		var c util.Coordinate
		var at time.Time
		if err := rows.Scan(&c.Lat, &c.Lon, &at); err != nil {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("scanning track point: %w", err)
		}
		if from.IsZero() {
			from = at
		}
		to = at
		coords = append(coords, c)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if len(coords) == 0 {
		return nil, time.Time{}, time.Time{}, ErrWorkerNotFound
	}
	return coords, from, to, nil
}
