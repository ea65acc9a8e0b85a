package web

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radhe-ai/ravi/internal/activity"
	"github.com/radhe-ai/ravi/internal/export"
	"github.com/radhe-ai/ravi/internal/insight"
)

func newTestHandler(t *testing.T, gen insight.Generator) *Handler {
	t.Helper()
	tmpl, err := LoadTemplates("")
	require.NoError(t, err)
	return NewHandler(activity.SampleStore(), insight.New(gen, time.Second), tmpl)
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestBoard_DiscardsStaleResults(t *testing.T) {
	var b Board

	first := b.Begin()
	second := b.Begin()
	_, thinking := b.Snapshot()
	assert.True(t, thinking)

	assert.True(t, b.Resolve(second, "newer"))
	assert.False(t, b.Resolve(first, "older"), "older result must be dropped")

	text, thinking := b.Snapshot()
	assert.Equal(t, "newer", text)
	assert.False(t, thinking)
}

func TestBoard_InOrderResolution(t *testing.T) {
	var b Board
	first := b.Begin()
	second := b.Begin()

	assert.True(t, b.Resolve(first, "one"))
	text, thinking := b.Snapshot()
	assert.Equal(t, "one", text)
	assert.True(t, thinking, "second request still pending")

	assert.True(t, b.Resolve(second, "two"))
	text, thinking = b.Snapshot()
	assert.Equal(t, "two", text)
	assert.False(t, thinking)
}

func TestBoard_Concurrent(t *testing.T) {
	var b Board
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := b.Begin()
			b.Resolve(seq, "x")
		}()
	}
	wg.Wait()
	_, thinking := b.Snapshot()
	assert.False(t, thinking)
}

func TestLanding(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	for _, want := range []string{"Real-time Location", "Call &amp; SMS Logs", "AI Safety Insights", "/dashboard"} {
		assert.Contains(t, body, want)
	}
}

func TestDashboard_CallsView(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodGet, "/dashboard?view=calls", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Unknown Number")
	assert.Contains(t, body, "Mom")
	assert.Contains(t, body, "Missed Call")
	assert.NotContains(t, body, "Instagram")
	assert.NotContains(t, body, "Calls Received", "stats only render on overview")
	assert.Less(t, strings.Index(body, "Unknown Number"), strings.Index(body, "Mom"))
}

func TestDashboard_UnknownViewRendersOverview(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodGet, "/dashboard?view=contacts", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Calls Received")
	assert.Contains(t, body, "School Zone")
	for _, r := range activity.SampleStore().All() {
		assert.Contains(t, body, r.Timestamp)
	}
}

func TestDashboard_LocationShowsMockMap(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodGet, "/dashboard?view=location", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Connaught Place, New Delhi")
	assert.NotContains(t, rr.Body.String(), "Recent Activity Log")
}

func TestAPILogs(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)

	tests := []struct {
		query string
		view  activity.View
		count int
	}{
		{"?view=sms", activity.ViewSMS, 3},
		{"?view=calls", activity.ViewCalls, 2},
		{"?view=notifications", activity.ViewNotifications, 1},
		{"?view=location", activity.ViewLocation, 1},
		{"?view=overview", activity.ViewOverview, 7},
		{"?view=whatever", activity.ViewOverview, 7},
		{"", activity.ViewOverview, 7},
	}

	for _, tt := range tests {
		rr := do(t, h, http.MethodGet, "/api/logs"+tt.query, "")
		require.Equal(t, http.StatusOK, rr.Code, tt.query)

		var resp LogsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tt.view, resp.View, tt.query)
		assert.Equal(t, tt.count, resp.Count, tt.query)
		assert.Len(t, resp.Logs, tt.count, tt.query)
	}
}

func TestAPIInsight_DemoMode(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodPost, "/api/insight", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp InsightResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, insight.DemoMessage, resp.Insight)
	assert.Equal(t, uint64(1), resp.Seq)
	assert.True(t, resp.Applied)
}

func TestAPIInsight_FailureReturnsFallback(t *testing.T) {
	gen := insight.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", &insight.RequestError{Op: "http request", Err: errors.New("boom")}
	})
	h := NewRouter(newTestHandler(t, gen), false)
	rr := do(t, h, http.MethodPost, "/api/insight", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp InsightResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, insight.FallbackMessage, resp.Insight)
}

func TestAPIInsight_SendsAllLogs(t *testing.T) {
	var prompt string
	gen := insight.GeneratorFunc(func(ctx context.Context, p string) (string, error) {
		prompt = p
		return "All good.", nil
	})
	h := NewRouter(newTestHandler(t, gen), false)
	do(t, h, http.MethodPost, "/api/insight", "")

	assert.Equal(t, insight.BuildPrompt(activity.SampleStore().All()), prompt)
}

func TestDashboardInsight_RedirectsAndShowsResult(t *testing.T) {
	gen := insight.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "Ravi is safe; beware the prize link.", nil
	})
	h := NewRouter(newTestHandler(t, gen), false)

	form := url.Values{"view": {"sms"}}.Encode()
	rr := do(t, h, http.MethodPost, "/dashboard/insight", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard?view=sms", rr.Header().Get("Location"))

	rr = do(t, h, http.MethodGet, "/dashboard?view=sms", "")
	assert.Contains(t, rr.Body.String(), "Ravi is safe; beware the prize link.")

	rr = do(t, h, http.MethodGet, "/api/state", "")
	var state StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "Ravi is safe; beware the prize link.", state.Insight)
	assert.False(t, state.Thinking)
	assert.False(t, state.Demo)
}

func TestAPIState_Initial(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodGet, "/api/state", "")

	var state StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Empty(t, state.Insight)
	assert.False(t, state.Thinking)
	assert.True(t, state.Demo)
}

func TestAPIExport(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	rr := do(t, h, http.MethodGet, "/api/logs/export?view=sms", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), export.DefaultFilename)

	records, err := export.Read(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, activity.SampleStore().View(activity.ViewSMS), records)
}

func TestRequestID(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, "ok", rr.Body.String())
	assert.Len(t, rr.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)

	rr := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not_found")

	rr = do(t, h, http.MethodGet, "/api/insight", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), false)
	do(t, h, http.MethodGet, "/dashboard?view=calls", "")

	rr := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `ravi_dashboard_views_total{view="calls"}`)
	assert.Contains(t, rr.Body.String(), `ravi_http_requests_total{code="200",route="/dashboard"}`)
}

func TestCompression(t *testing.T) {
	h := NewRouter(newTestHandler(t, nil), true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestTemplates_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	sub, err := fs.Sub(embedded, "templates")
	require.NoError(t, err)
	entries, err := fs.ReadDir(sub, ".")
	require.NoError(t, err)
	for _, e := range entries {
		data, err := fs.ReadFile(sub, e.Name())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}

	tmpl, err := LoadTemplates(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, tmpl.Watch(ctx))

	landing := filepath.Join(dir, "landing.html")
	data, err := os.ReadFile(landing)
	require.NoError(t, err)
	updated := strings.Replace(string(data), "Everything you need", "Everything you need, reloaded", 1)
	require.NoError(t, os.WriteFile(landing, []byte(updated), 0o644))

	page := landingPage{DashboardState: DashboardState{Page: "landing"}, Features: features}
	assert.Eventually(t, func() bool {
		var sb strings.Builder
		if err := tmpl.Render(&sb, "landing", page); err != nil {
			return false
		}
		return strings.Contains(sb.String(), "reloaded")
	}, 3*time.Second, 20*time.Millisecond)
}

func TestTemplates_BadReloadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(`{{define "page"}}v1{{end}}`), 0o644))

	tmpl, err := LoadTemplates(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte(`{{define "page"}}{{if}}{{end}}`), 0o644))
	assert.Error(t, tmpl.reload())

	var sb strings.Builder
	require.NoError(t, tmpl.Render(&sb, "page", nil))
	assert.Equal(t, "v1", sb.String())
}

func TestLoadTemplates_MissingDir(t *testing.T) {
	_, err := LoadTemplates(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
