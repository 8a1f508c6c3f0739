package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/opencivic/civic-api/util"
	"github.com/opencivic/civic-api/util/tracing"
	"github.com/opencivic/civic-api/util/values"
	"github.com/opencivic/civic-api/util/websockets"
)

const defaultTrackWindow = 2 * time.Hour

func (api *API) MapRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/facilities", Handler(api.GetFacilities))
		r.Method(http.MethodGet, "/worker-locations", Handler(api.GetWorkerLocations))
		r.Method(http.MethodGet, "/workers/{workerID}/track", Handler(api.GetWorkerTrack))
	})

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Use(api.RequireRole(values.RoleAdmin, values.RoleWorker))
		r.Method(http.MethodPost, "/worker-locations", Handler(api.ReportWorkerLocation))
	})

	return mux
}

func (api *API) GetFacilities(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	facilities, err := api.ListFacilitiesRepo(r.Context())
	if err != nil {
		return respondWithError(err, "failed to get facilities", values.Error, &tc)
	}
	if facilities == nil {
		facilities = []model.PublicFacility{}
	}

	return &ServerResponse{
		Message:    "Facilities retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       facilities,
	}
}

func (api *API) GetWorkerLocations(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	locations, err := api.LatestWorkerLocationsRepo(r.Context())
	if err != nil {
		return respondWithError(err, "failed to get worker locations", values.Error, &tc)
	}
	if locations == nil {
		locations = []model.WorkerLocation{}
	}

	return &ServerResponse{
		Message:    "Worker locations retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       locations,
	}
}

// ReportWorkerLocation ingests a position fix and pushes it to
// connected map viewers.
func (api *API) ReportWorkerLocation(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.ReportLocationRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	loc, err := api.InsertWorkerLocationRepo(r.Context(), req)
	if err != nil {
		return respondWithError(err, "failed to record worker location", values.Error, &tc)
	}

	api.Deps.WebSocket.BroadcastWorkerLocation(loc.WorkerID.String(), loc.Latitude, loc.Longitude)

	return &ServerResponse{
		Message:    "Worker location recorded",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       loc,
	}
}

func (api *API) GetWorkerTrack(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	workerID, err := util.StringToUUID(chi.URLParam(r, "workerID"))
	if err != nil {
		return respondWithError(err, "invalid worker ID", values.BadRequestBody, &tc)
	}

	coords, from, to, err := api.WorkerTrackRepo(r.Context(), workerID, defaultTrackWindow)
	if err == ErrWorkerNotFound {
		return respondWithError(err, "no recent positions for worker", values.NotFound, &tc)
	}
	if err != nil {
		return respondWithError(err, "failed to get worker track", values.Error, &tc)
	}

	track := model.WorkerTrack{
		WorkerID: workerID,
		Polyline: util.EncodeTrack(coords),
		Points:   len(coords),
		From:     from,
		To:       to,
	}

	return &ServerResponse{
		Message:    "Worker track retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       track,
	}
}

// broadcastReportUpdate notifies map viewers that a report's counts
// or status changed.
func (api *API) broadcastReportUpdate(report model.CivicReport) {
	payload := struct {
		Type   string            `json:"type"`
		Report model.CivicReport `json:"report"`
	}{
		Type:   websockets.MsgTypeReportUpdate,
		Report: report,
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		log.Println("marshal report update:", err)
		return
	}
	api.Deps.WebSocket.Broadcast(msg)
}
