package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util"
	"github.com/opencivic/civic-api/util/tracing"
	"github.com/opencivic/civic-api/util/values"
)

const maxUploadSize = 10 << 20 // 10 MiB

func (api *API) ReportRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/", Handler(api.GetAllReports))
		r.Method(http.MethodGet, "/{reportID}", Handler(api.GetReportByID))
	})

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Use(api.RequireRole(values.RoleCitizen))
		r.Method(http.MethodPost, "/", Handler(api.CreateReport))
		r.Method(http.MethodGet, "/my-reports", Handler(api.GetMyReports))
		r.Method(http.MethodGet, "/other-reports", Handler(api.GetOtherReports))
		r.Method(http.MethodPost, "/{reportID}/support", Handler(api.SupportReport))
		r.Method(http.MethodPost, "/{reportID}/oppose", Handler(api.OpposeReport))
		r.Method(http.MethodDelete, "/{reportID}", Handler(api.WithdrawReport))
	})

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Use(api.RequireRole(values.RoleAdmin))
		r.Method(http.MethodPatch, "/{reportID}/status", Handler(api.UpdateReportStatus))
	})

	return mux
}

// CreateReport accepts the multipart submission form: title, type,
// latitude and longitude are required, description defaults to empty
// and the photo is optional.
func (api *API) CreateReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return respondWithError(err, "unable to parse multipart form", values.BadRequestBody, &tc)
	}

	title := r.FormValue("title")
	reportType := r.FormValue("type")
	if !util.NotBlank(title) || !util.NotBlank(reportType) {
		return respondWithError(nil, "Missing required fields", values.BadRequestBody, &tc)
	}

	latitude, err := util.ParseCoordinate(r.FormValue("latitude"))
	if err != nil {
		return respondWithError(err, "Missing required fields", values.BadRequestBody, &tc)
	}
	longitude, err := util.ParseCoordinate(r.FormValue("longitude"))
	if err != nil {
		return respondWithError(err, "Missing required fields", values.BadRequestBody, &tc)
	}

	req := model.CreateReportRequest{
		Title:       title,
		Description: r.FormValue("description"),
		Type:        reportType,
		Latitude:    latitude,
		Longitude:   longitude,
		CreatedByID: userID,
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		imageURL, saveErr := api.Deps.Photos.Save(r.Context(), file, header.Filename)
		if saveErr != nil {
			return respondWithError(saveErr, "failed to store photo", values.Error, &tc)
		}
		req.ImageURL = &imageURL
	} else if err != http.ErrMissingFile {
		return respondWithError(err, "unable to read photo upload", values.BadRequestBody, &tc)
	}

	report, status, message, err := api.CreateReportHelper(r.Context(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       report,
	}
}

func (api *API) GetAllReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.listReports(r, filterAll)
}

func (api *API) GetMyReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.listReports(r, filterMine)
}

func (api *API) GetOtherReports(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.listReports(r, filterOthers)
}

func (api *API) listReports(r *http.Request, filter reportFilter) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	reports, status, message, err := api.listReportsHelper(r.Context(), userID, filter)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if reports == nil {
		reports = []model.AnnotatedReport{}
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       reports,
	}
}

func (api *API) GetReportByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	reportID, err := util.StringToUUID(chi.URLParam(r, "reportID"))
	if err != nil {
		return respondWithError(err, "Report not found", values.NotFound, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	report, status, message, err := api.GetReportByIDHelper(r.Context(), reportID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       report,
	}
}

func (api *API) SupportReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.castVote(r, values.VoteSupport)
}

func (api *API) OpposeReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	return api.castVote(r, values.VoteOppose)
}

func (api *API) castVote(r *http.Request, direction string) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	reportID, err := util.StringToUUID(chi.URLParam(r, "reportID"))
	if err != nil {
		return respondWithError(err, "Report not found", values.NotFound, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	report, status, message, err := api.CastVoteHelper(r.Context(), reportID, userID, direction)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       report,
	}
}

func (api *API) WithdrawReport(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	reportID, err := util.StringToUUID(chi.URLParam(r, "reportID"))
	if err != nil {
		return respondWithError(err, "Report not found", values.NotFound, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.WithdrawReportHelper(r.Context(), reportID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) UpdateReportStatus(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	reportID, err := util.StringToUUID(chi.URLParam(r, "reportID"))
	if err != nil {
		return respondWithError(err, "Report not found", values.NotFound, &tc)
	}

	var req model.UpdateReportStatusRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "invalid report status", values.BadRequestBody, &tc)
	}

	status, message, err := api.UpdateReportStatusHelper(r.Context(), reportID, req.Status)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}
