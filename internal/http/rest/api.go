package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opencivic/civic-api/config"
	"github.com/opencivic/civic-api/internal/deps"
	"github.com/opencivic/civic-api/util/values"
	"github.com/opencivic/civic-api/web"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server *http.Server
	Config *config.Config
	Deps   *deps.Dependencies
	DB     *pgxpool.Pool

	store reportStore // nil outside tests; reports() falls back to the API's own repo
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestTracing)

	mux.Mount("/auth", api.AuthRoutes())
	mux.Mount("/civic-report", api.ReportRoutes())
	mux.Mount("/maps", api.MapRoutes())
	mux.Mount("/users", api.UserRoutes())

	mux.Get("/ws/assets", api.Deps.WebSocket.HandleConnections)

	// Uploaded photos and the embedded report page.
	fileServer := http.FileServer(http.Dir(api.Config.UploadDir))
	mux.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	mux.Handle("/*", web.Handler())

	return mux
}

func (a *API) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
	defer cancel()

	err := a.Server.Shutdown(ctx)
	if err != nil {
		return err
	}
	return nil
}
