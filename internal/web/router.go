package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the full HTTP handler: routes, request IDs, access
// logging, /metrics and optional gzip compression.
func NewRouter(h *Handler, compress bool) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, accessLogMiddleware)

	h.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no such page")
	}))
	r.MethodNotAllowedHandler = requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}))

	if !compress {
		return r
	}
	return gzhttp.GzipHandler(r)
}
