package web

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/radhe-ai/ravi/internal/activity"
	"github.com/radhe-ai/ravi/internal/export"
	"github.com/radhe-ai/ravi/internal/insight"
	"github.com/radhe-ai/ravi/internal/observability"
)

// Feature is one card on the landing page.
type Feature struct {
	Title       string
	Description string
	Icon        string
}

var features = []Feature{
	{Title: "Real-time Location", Description: `Track the "Ravi" app location instantly on the web.`, Icon: "📍"},
	{Title: "Call & SMS Logs", Description: "View detailed call history and read text messages.", Icon: "📞"},
	{Title: "App Notifications", Description: "See every notification that pops up on the child device.", Icon: "🔔"},
	{Title: "AI Safety Insights", Description: "Powered by Gemini to detect potential risks.", Icon: "✨"},
}

// Handler serves the landing page, the dashboard and its JSON API.
type Handler struct {
	store     *activity.Store
	requester *insight.Requester
	tmpl      *Templates
	board     Board
}

// NewHandler builds a Handler.
func NewHandler(store *activity.Store, requester *insight.Requester, tmpl *Templates) *Handler {
	return &Handler{store: store, requester: requester, tmpl: tmpl}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.landing).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/insight", h.dashboardInsight).Methods(http.MethodPost)
	r.HandleFunc("/api/logs", h.apiLogs).Methods(http.MethodGet)
	r.HandleFunc("/api/logs/export", h.apiExport).Methods(http.MethodGet)
	r.HandleFunc("/api/insight", h.apiInsight).Methods(http.MethodPost)
	r.HandleFunc("/api/state", h.apiState).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type landingPage struct {
	DashboardState
	Features []Feature
}

func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, "landing", landingPage{
		DashboardState: DashboardState{Page: "landing", DemoMode: h.requester.DemoMode()},
		Features:       features,
	})
}

type navItem struct {
	View   activity.View
	Label  string
	Active bool
}

type dashboardPage struct {
	DashboardState
	Label   string
	Nav     []navItem
	Logs    []activity.Record
	Summary activity.Summary
	Device  activity.DeviceStatus
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	view, _ := activity.ParseView(r.URL.Query().Get("view"))
	observability.RecordDashboardView(string(view))

	text, thinking := h.board.Snapshot()
	page := dashboardPage{
		DashboardState: DashboardState{
			Page:     "dashboard",
			View:     view,
			Thinking: thinking,
			Insight:  text,
			DemoMode: h.requester.DemoMode(),
		},
		Label:   view.Label(),
		Logs:    h.store.View(view),
		Summary: activity.Summarize(h.store.All()),
		Device:  activity.MockDeviceStatus(),
	}
	for _, v := range activity.Views {
		page.Nav = append(page.Nav, navItem{View: v, Label: v.Label(), Active: v == view})
	}

	h.render(w, "dashboard", page)
}

// requestInsight runs one insight request over every record and publishes
// the result to the board.
func (h *Handler) requestInsight(r *http.Request) (string, uint64, bool) {
	seq := h.board.Begin()
	text := h.requester.Request(r.Context(), h.store.All())
	return text, seq, h.board.Resolve(seq, text)
}

func (h *Handler) dashboardInsight(w http.ResponseWriter, r *http.Request) {
	h.requestInsight(r)

	view, _ := activity.ParseView(r.FormValue("view"))
	http.Redirect(w, r, "/dashboard?view="+url.QueryEscape(string(view)), http.StatusSeeOther)
}

// LogsResponse is the body of GET /api/logs.
type LogsResponse struct {
	View  activity.View     `json:"view"`
	Count int               `json:"count"`
	Logs  []activity.Record `json:"logs"`
}

func (h *Handler) apiLogs(w http.ResponseWriter, r *http.Request) {
	view, _ := activity.ParseView(r.URL.Query().Get("view"))
	logs := h.store.View(view)
	writeJSON(w, http.StatusOK, LogsResponse{View: view, Count: len(logs), Logs: logs})
}

func (h *Handler) apiExport(w http.ResponseWriter, r *http.Request) {
	view, _ := activity.ParseView(r.URL.Query().Get("view"))

	var buf bytes.Buffer
	if err := export.Write(&buf, h.store.View(view)); err != nil {
		log.Printf("warning: export logs: %v", err)
		writeError(w, http.StatusInternalServerError, "server_error", "export failed")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// InsightResponse is the body of POST /api/insight. Applied is false when a
// newer request finished first and this result was not shown.
type InsightResponse struct {
	Insight string `json:"insight"`
	Seq     uint64 `json:"seq"`
	Applied bool   `json:"applied"`
}

func (h *Handler) apiInsight(w http.ResponseWriter, r *http.Request) {
	text, seq, applied := h.requestInsight(r)
	writeJSON(w, http.StatusOK, InsightResponse{Insight: text, Seq: seq, Applied: applied})
}

// StateResponse is the body of GET /api/state.
type StateResponse struct {
	Insight  string `json:"insight"`
	Thinking bool   `json:"thinking"`
	Demo     bool   `json:"demo"`
}

func (h *Handler) apiState(w http.ResponseWriter, r *http.Request) {
	text, thinking := h.board.Snapshot()
	writeJSON(w, http.StatusOK, StateResponse{Insight: text, Thinking: thinking, Demo: h.requester.DemoMode()})
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.tmpl.Render(&buf, name, data); err != nil {
		log.Printf("warning: render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("warning: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
