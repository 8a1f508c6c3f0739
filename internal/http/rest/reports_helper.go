package rest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util"
	"github.com/opencivic/civic-api/util/values"
)

const geocodeTimeout = 5 * time.Second

// reportStore is the slice of the report repo the outcome-mapping
// helpers depend on, so their decisions can be tested without a
// database. *API satisfies it with its own repo methods.
type reportStore interface {
	CastVoteRepo(ctx context.Context, reportID uuid.UUID, userID uuid.UUID, direction string) (model.ReportVote, error)
	GetReportByIDRepo(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (reportWithVote, error)
	DeleteReportRepo(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	UpdateReportStatusRepo(ctx context.Context, id uuid.UUID, status string) error
}

func (api *API) reports() reportStore {
	if api.store != nil {
		return api.store
	}
	return api
}

// AnnotateReport derives the viewer-relative fields of a report from
// the report, the viewer's vote on it (nil when none) and the viewer's
// id. Pure so the eligibility rules are testable without a store.
func AnnotateReport(report model.CivicReport, userVote *string, viewerID uuid.UUID) model.AnnotatedReport {
	isOwn := report.CreatedByID == viewerID
	hasVoted := userVote != nil

	return model.AnnotatedReport{
		CivicReport: report,
		IsOwnReport: isOwn,
		UserVote:    userVote,
		HasVoted:    hasVoted,
		CanVote:     !isOwn && !hasVoted,
	}
}

func annotateAll(rows []reportWithVote, viewerID uuid.UUID) []model.AnnotatedReport {
	annotated := make([]model.AnnotatedReport, 0, len(rows))
	for _, rv := range rows {
		annotated = append(annotated, AnnotateReport(rv.Report, rv.UserVote, viewerID))
	}
	return annotated
}

func (api *API) CreateReportHelper(ctx context.Context, req model.CreateReportRequest) (model.AnnotatedReport, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.AnnotatedReport{}, values.BadRequestBody, "Missing required fields", err
	}

	// Best-effort address lookup; the report goes in either way.
	geoCtx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()
	if address, err := api.Deps.Geocoder.Reverse(geoCtx, req.Latitude, req.Longitude); err != nil {
		log.Println("reverse geocode failed", err)
	} else {
		req.Address = &address
	}

	report, err := api.CreateReportRepo(ctx, req)
	if err != nil {
		return model.AnnotatedReport{}, values.Error, "Failed to create report", err
	}

	return AnnotateReport(report, nil, req.CreatedByID), values.Created, "Report created successfully", nil
}

func (api *API) listReportsHelper(ctx context.Context, viewerID uuid.UUID, filter reportFilter) ([]model.AnnotatedReport, string, string, error) {
	rows, err := api.ListReportsRepo(ctx, viewerID, filter)
	if err != nil {
		return nil, values.Error, "Failed to fetch reports", err
	}
	return annotateAll(rows, viewerID), values.Success, "Reports fetched successfully", nil
}

func (api *API) GetReportByIDHelper(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (model.AnnotatedReport, string, string, error) {
	rv, err := api.reports().GetReportByIDRepo(ctx, id, viewerID)
	if err == ErrReportNotFound {
		return model.AnnotatedReport{}, values.NotFound, "Report not found", err
	}
	if err != nil {
		return model.AnnotatedReport{}, values.Error, "Failed to fetch report", err
	}
	return AnnotateReport(rv.Report, rv.UserVote, viewerID), values.Success, "Report fetched successfully", nil
}

// CastVoteHelper maps the vote-cast outcomes onto the response
// statuses: owner 403, duplicate 409, unknown report 404.
func (api *API) CastVoteHelper(ctx context.Context, reportID uuid.UUID, userID uuid.UUID, direction string) (model.AnnotatedReport, string, string, error) {
	vote, err := api.reports().CastVoteRepo(ctx, reportID, userID, direction)
	switch err {
	case nil:
	case ErrReportNotFound:
		return model.AnnotatedReport{}, values.NotFound, "Report not found", err
	case ErrOwnReportVote:
		return model.AnnotatedReport{}, values.NotAllowed, "You cannot vote on your own report", err
	case ErrAlreadyVoted:
		return model.AnnotatedReport{}, values.Conflict, "You have already voted on this report", err
	default:
		return model.AnnotatedReport{}, values.Error, "Failed to cast vote", err
	}

	rv, err := api.reports().GetReportByIDRepo(ctx, reportID, userID)
	if err != nil {
		return model.AnnotatedReport{}, values.Error, "Failed to fetch report after vote", err
	}

	go api.broadcastReportUpdate(rv.Report)

	return AnnotateReport(rv.Report, &vote.Direction, userID), values.Success, "Vote recorded successfully", nil
}

func (api *API) WithdrawReportHelper(ctx context.Context, id uuid.UUID, userID uuid.UUID) (string, string, error) {
	err := api.reports().DeleteReportRepo(ctx, id, userID)
	switch err {
	case nil:
		return values.Success, "Report withdrawn successfully", nil
	case ErrReportNotFound:
		return values.NotFound, "Report not found", err
	case ErrNotReportOwner:
		return values.NotAllowed, "Only the report creator can withdraw it", err
	default:
		return values.Error, "Failed to withdraw report", err
	}
}

func (api *API) UpdateReportStatusHelper(ctx context.Context, id uuid.UUID, status string) (string, string, error) {
	err := api.reports().UpdateReportStatusRepo(ctx, id, status)
	switch err {
	case nil:
		return values.Success, "Report status updated", nil
	case ErrReportNotFound:
		return values.NotFound, "Report not found", err
	default:
		return values.Error, "Failed to update report status", err
	}
}
