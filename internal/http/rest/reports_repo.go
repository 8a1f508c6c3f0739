package rest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util/values"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrOwnReportVote  = errors.New("cannot vote on own report")
	ErrAlreadyVoted   = errors.New("already voted on report")
	ErrNotReportOwner = errors.New("not the report owner")
)

// reportWithVote pairs a report row with the viewer's vote, if any,
// fetched in the same query.
type reportWithVote struct {
	Report   model.CivicReport
	UserVote *string
}

const reportColumns = `
        r.id, r.title, r.description, r.type, r.image_url, r.address,
        r.latitude, r.longitude, r.support_count, r.opposition_count,
        r.status, r.created_at, r.created_by,
        u.name, u.role,
        v.direction
`

func scanReportWithVote(row pgx.Row) (reportWithVote, error) {
	var rv reportWithVote
	var author model.ReportAuthor

	err := row.Scan(
		&rv.Report.ID, &rv.Report.Title, &rv.Report.Description, &rv.Report.Type,
		&rv.Report.ImageURL, &rv.Report.Address, &rv.Report.Latitude, &rv.Report.Longitude,
		&rv.Report.SupportCount, &rv.Report.OppositionCount, &rv.Report.Status,
		&rv.Report.CreatedAt, &rv.Report.CreatedByID,
		&author.Name, &author.Role,
		&rv.UserVote,
	)
	if err != nil {
		return reportWithVote{}, err
	}

	author.ID = rv.Report.CreatedByID
	rv.Report.CreatedBy = &author
	return rv, nil
}

// CreateReportRepo inserts a new report with status pending and zero counts.
func (api *API) CreateReportRepo(ctx context.Context, req model.CreateReportRequest) (model.CivicReport, error) {
	query := `
        INSERT INTO civic_reports (
            title, description, type, image_url, address, latitude, longitude, created_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, title, description, type, image_url, address, latitude, longitude,
            support_count, opposition_count, status, created_at, created_by
    `
	var report model.CivicReport
	err := api.DB.QueryRow(ctx, query,
		req.Title, req.Description, req.Type, req.ImageURL, req.Address,
		req.Latitude, req.Longitude, req.CreatedByID,
	).Scan(
		&report.ID, &report.Title, &report.Description, &report.Type,
		&report.ImageURL, &report.Address, &report.Latitude, &report.Longitude,
		&report.SupportCount, &report.OppositionCount, &report.Status,
		&report.CreatedAt, &report.CreatedByID,
	)
	if err != nil {
		log.Println("error creating report", err)
		return model.CivicReport{}, err
	}
	return report, nil
}

// GetReportByIDRepo retrieves a single report with the viewer's vote.
func (api *API) GetReportByIDRepo(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (reportWithVote, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM civic_reports r
        JOIN users u ON u.id = r.created_by
        LEFT JOIN report_votes v ON v.report_id = r.id AND v.user_id = $2
        WHERE r.id = $1
    `, reportColumns)

	rv, err := scanReportWithVote(api.DB.QueryRow(ctx, query, id, viewerID))
	if err == pgx.ErrNoRows {
		return reportWithVote{}, ErrReportNotFound
	}
	return rv, err
}

type reportFilter string

const (
	filterAll    reportFilter = "all"
	filterMine   reportFilter = "mine"
	filterOthers reportFilter = "others"
)

// ListReportsRepo retrieves reports with the viewer's votes, optionally
// restricted to the viewer's own or other users' reports.
func (api *API) ListReportsRepo(ctx context.Context, viewerID uuid.UUID, filter reportFilter) ([]reportWithVote, error) {
	where := ""
	switch filter {
	case filterMine:
		where = "WHERE r.created_by = $1"
	case filterOthers:
		where = "WHERE r.created_by <> $1"
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM civic_reports r
        JOIN users u ON u.id = r.created_by
        LEFT JOIN report_votes v ON v.report_id = r.id AND v.user_id = $1
        %s
        ORDER BY r.created_at DESC
    `, reportColumns, where)

	rows, err := api.DB.Query(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []reportWithVote
	for rows.Next() {
		rv, err := scanReportWithVote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, rv)
	}
	return reports, rows.Err()
}

// CastVoteRepo records a vote in a single transaction: the ownership
// check, the unique vote insert and the counter increment commit or
// fail together, so concurrent casts can neither double-count nor let
// the same user vote twice. Returns the inserted vote row.
func (api *API) CastVoteRepo(ctx context.Context, reportID uuid.UUID, userID uuid.UUID, direction string) (model.ReportVote, error) {
	var vote model.ReportVote
	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		var createdBy uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT created_by FROM civic_reports WHERE id = $1 FOR UPDATE`,
			reportID,
		).Scan(&createdBy)
		if err == pgx.ErrNoRows {
			return ErrReportNotFound
		}
		if err != nil {
			return err
		}

		if createdBy == userID {
			return ErrOwnReportVote
		}

		err = tx.QueryRow(ctx, `
            INSERT INTO report_votes (report_id, user_id, direction)
            VALUES ($1, $2, $3)
            ON CONFLICT (report_id, user_id) DO NOTHING
            RETURNING id, report_id, user_id, direction, created_at
        `, reportID, userID, direction).Scan(
			&vote.ID, &vote.ReportID, &vote.UserID, &vote.Direction, &vote.CreatedAt,
		)
		if err == pgx.ErrNoRows {
			return ErrAlreadyVoted
		}
		if err != nil {
			return err
		}

		counter := "support_count"
		if direction == values.VoteOppose {
			counter = "opposition_count"
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(`
            UPDATE civic_reports
            SET %s = %s + 1, updated_at = NOW()
            WHERE id = $1
        `, counter, counter), reportID)
		return err
	})
	if err != nil {
		return model.ReportVote{}, err
	}
	return vote, nil
}

// DeleteReportRepo removes a report and its votes, owner only.
func (api *API) DeleteReportRepo(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		var createdBy uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT created_by FROM civic_reports WHERE id = $1 FOR UPDATE`,
			id,
		).Scan(&createdBy)
		if err == pgx.ErrNoRows {
			return ErrReportNotFound
		}
		if err != nil {
			return err
		}

		if createdBy != userID {
			return ErrNotReportOwner
		}

		// Vote rows go with the report.
		if _, err := tx.Exec(ctx, `DELETE FROM report_votes WHERE report_id = $1`, id); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM civic_reports WHERE id = $1`, id)
		return err
	})
}

// UpdateReportStatusRepo moves a report to a new status.
func (api *API) UpdateReportStatusRepo(ctx context.Context, id uuid.UUID, status string) error {
	ct, err := api.DB.Exec(ctx, `
        UPDATE civic_reports
        SET status = $2, updated_at = NOW()
        WHERE id = $1
    `, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}
