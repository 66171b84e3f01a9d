package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(zap.NewNop())
	require.NoError(t, err)
	return app
}

func postJSON(t *testing.T, app *App, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestReasonClassicalEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/v1/reason/classical", map[string]any{
		"input": "If the system is intelligent, then it can learn. The system is intelligent.",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Result struct {
			Mode        string `json:"mode"`
			Valid       bool   `json:"valid"`
			Sound       bool   `json:"sound"`
			Conclusions []struct {
				Statement string `json:"statement"`
			} `json:"conclusions"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "classical", body.Result.Mode)
	assert.True(t, body.Result.Valid)
	assert.True(t, body.Result.Sound)

	found := false
	for _, c := range body.Result.Conclusions {
		if c.Statement == "it can learn" {
			found = true
		}
	}
	assert.True(t, found, "expected the modus ponens conclusion, got %s", rec.Body.String())
}

func TestReasonUnknownMode(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/v1/reason/astrological", map[string]any{"input": "anything"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReasonRejectsEmptyInput(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/v1/reason/classical", map[string]any{"input": "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecideEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/v1/decide", map[string]any{
		"input": "pick a vendor",
		"options": []any{
			map[string]any{"name": "A", "utilities": map[string]any{"cost": 0.9}},
			map[string]any{"name": "B", "utilities": map[string]any{"cost": 0.2}},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "choose ")
}

func TestDomainEndpoints(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/domains/", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "biology")

	req = httptest.NewRequest(http.MethodGet, "/v1/domains/technology", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/domains/alchemy", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, app, "/v1/domains/transfer", map[string]any{
		"source": "biology",
		"target": "technology",
		"knowledge": map[string]any{
			"feedback loop": "regulate output against a set point",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validated":true`)

	rec = postJSON(t, app, "/v1/domains/reason", map[string]any{
		"problem": "how to keep the colony stable under load",
		"domains": []string{"biology", "technology"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "perspectives")

	rec = postJSON(t, app, "/v1/domains/reason", map[string]any{"domains": []string{"biology"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRegistrationEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/v1/admin/distributions", map[string]any{
		"name":   "beta",
		"kind":   "continuous",
		"params": map[string]float64{"alpha": 2, "beta": 5},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, app, "/v1/admin/distributions", map[string]any{"kind": "continuous"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/axioms", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "excluded middle")
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	app := newTestApp(t)

	postJSON(t, app, "/v1/reason/modal", map[string]any{"input": "It must work."})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "reasoning")
	assert.Contains(t, body, "request_count")
}
