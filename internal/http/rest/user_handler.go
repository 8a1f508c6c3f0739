package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opencivic/civic-api/util"
	"github.com/opencivic/civic-api/util/tracing"
	"github.com/opencivic/civic-api/util/values"
)

func (api *API) UserRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Use(api.RequireRole(values.RoleAdmin))
		r.Method(http.MethodGet, "/", Handler(api.ListUsers))
	})

	return mux
}

func (api *API) ListUsers(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	users, err := api.ListUsersRepo(r.Context())
	if err != nil {
		return respondWithError(err, "failed to list users", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Users retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       users,
	}
}
