package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truemeter-client/internal/application/check"
	"truemeter-client/internal/application/dto"
	"truemeter-client/internal/domain/fraud"
	"truemeter-client/internal/domain/vehicle"
)

type stubScorer struct {
	outcome fraud.Outcome
	calls   atomic.Int32
}

func (s *stubScorer) Submit(ctx context.Context, q vehicle.Query) fraud.Outcome {
	s.calls.Add(1)
	return s.outcome
}

func newSessionServer(t *testing.T, scorer check.Scorer) (*httptest.Server, *check.Sessions) {
	t.Helper()

	now := func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }
	sessions := check.NewSessions(func() *check.Orchestrator {
		return check.NewOrchestrator(scorer, nil, now)
	})
	h := NewSessionHandler(sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sessions", h.Create)
	mux.HandleFunc("GET /api/v1/sessions/{id}", h.Get)
	mux.HandleFunc("DELETE /api/v1/sessions/{id}", h.Delete)
	mux.HandleFunc("PUT /api/v1/sessions/{id}/fields/{field}", h.SetField)
	mux.HandleFunc("POST /api/v1/sessions/{id}/submit", h.Submit)
	mux.HandleFunc("POST /api/v1/sessions/{id}/reset", h.Reset)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func createSession(t *testing.T, srv *httptest.Server) dto.SessionResponse {
	t.Helper()

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &created))
	return created
}

func fill(t *testing.T, srv *httptest.Server, id string) {
	t.Helper()
	for field, value := range map[string]string{
		"make":        "Toyota",
		"model":       "Camry",
		"year":        "2020",
		"reported_km": "50 000",
		"horsepower":  "150",
		"price":       "15000",
	} {
		resp, _ := do(t, http.MethodPut, srv.URL+"/api/v1/sessions/"+id+"/fields/"+field, `{"value":"`+value+`"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, field)
	}
}

func TestSessionHandler_CreateAndGet(t *testing.T) {
	srv, sessions := newSessionServer(t, &stubScorer{})

	created := createSession(t, srv)
	assert.Equal(t, check.ModeForm, created.State.Mode)
	assert.Equal(t, 2026, created.State.Query.Year)
	assert.Equal(t, vehicle.FuelDiesel, created.State.Query.FuelType)
	assert.False(t, created.State.Submittable)
	assert.Equal(t, 1, sessions.Len())

	resp, body := do(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestSessionHandler_UnknownAndMalformedIDs(t *testing.T) {
	srv, _ := newSessionServer(t, &stubScorer{})

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/v1/sessions/6b1f8a8e-6d0c-4b8f-9d0e-3f0b8f0c1a2b", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/v1/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/api/v1/sessions/6b1f8a8e-6d0c-4b8f-9d0e-3f0b8f0c1a2b", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionHandler_SetFieldNormalizes(t *testing.T) {
	srv, _ := newSessionServer(t, &stubScorer{})
	id := createSession(t, srv).ID.String()

	resp, body := do(t, http.MethodPut, srv.URL+"/api/v1/sessions/"+id+"/fields/reported_km", `{"value":"12a3,4"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1234, got.State.Query.ReportedKm)
}

func TestSessionHandler_SetFieldRejects(t *testing.T) {
	srv, _ := newSessionServer(t, &stubScorer{})
	id := createSession(t, srv).ID.String()
	base := srv.URL + "/api/v1/sessions/" + id + "/fields/"

	tests := []struct {
		name  string
		field string
		body  string
	}{
		{name: "unknown field", field: "vin", body: `{"value":"x"}`},
		{name: "malformed body", field: "make", body: `{"value":`},
		{name: "missing value", field: "make", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPut, base+tt.field, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

func TestSessionHandler_SubmitNotSubmittable(t *testing.T) {
	scorer := &stubScorer{}
	srv, _ := newSessionServer(t, scorer)
	id := createSession(t, srv).ID.String()

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, scorer.calls.Load())
}

func TestSessionHandler_SubmitSuccessThenReset(t *testing.T) {
	scorer := &stubScorer{outcome: fraud.Succeeded(fraud.Verdict{
		FraudScore: 82.6, IsSuspicious: true, ExpectedKm: 120000, Reasons: []string{"mileage too low"},
	})}
	srv, _ := newSessionServer(t, scorer)
	id := createSession(t, srv).ID.String()
	fill(t, srv, id)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/submit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, check.ModeResults, got.State.Mode)
	require.NotNil(t, got.State.Display)
	assert.Equal(t, int64(83), got.State.Display.ScorePercent)
	assert.Equal(t, "HIGH RISK", got.State.Display.Classification.Label)

	// editing and resubmitting is blocked on the results screen
	resp, _ = do(t, http.MethodPut, srv.URL+"/api/v1/sessions/"+id+"/fields/make", `{"value":"BMW"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/submit", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, int32(1), scorer.calls.Load())

	resp, body = do(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, check.ModeForm, got.State.Mode)
	assert.Empty(t, got.State.Query.Make)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/reset", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSessionHandler_SubmitFailureIsBadGateway(t *testing.T) {
	scorer := &stubScorer{outcome: fraud.Failed(fraud.NewServiceFailure(500, "internal error"))}
	srv, _ := newSessionServer(t, scorer)
	id := createSession(t, srv).ID.String()
	fill(t, srv, id)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/sessions/"+id+"/submit", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var got dto.SessionResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, check.ModeForm, got.State.Mode)
	assert.Equal(t, "scoring service error: 500 - internal error", got.State.Error)
	assert.True(t, got.State.Submittable)
}

func TestSessionHandler_Delete(t *testing.T) {
	srv, sessions := newSessionServer(t, &stubScorer{})
	id := createSession(t, srv).ID.String()

	resp, _ := do(t, http.MethodDelete, srv.URL+"/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, sessions.Len())

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// blockingScorer holds the call until released and, like a real transport,
// gives up when its context is cancelled
type blockingScorer struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingScorer) Submit(ctx context.Context, q vehicle.Query) fraud.Outcome {
	close(s.started)
	select {
	case <-ctx.Done():
		return fraud.Failed(fraud.NewTransportFailure(ctx.Err()))
	case <-s.release:
		return fraud.Succeeded(fraud.Verdict{FraudScore: 55, ExpectedKm: 90000})
	}
}

func TestSessionHandler_SubmitSurvivesCallerDisconnect(t *testing.T) {
	scorer := &blockingScorer{started: make(chan struct{}), release: make(chan struct{})}
	now := func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }
	sessions := check.NewSessions(func() *check.Orchestrator {
		return check.NewOrchestrator(scorer, nil, now)
	})
	id, o := sessions.Create()
	for field, value := range map[vehicle.Field]string{
		vehicle.FieldMake:       "Toyota",
		vehicle.FieldModel:      "Camry",
		vehicle.FieldYear:       "2020",
		vehicle.FieldHorsepower: "150",
		vehicle.FieldPrice:      "15000",
	} {
		require.NoError(t, o.Update(field, value))
	}

	h := NewSessionHandler(sessions)
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id.String()+"/submit", nil).WithContext(ctx)
	req.SetPathValue("id", id.String())

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		rec := httptest.NewRecorder()
		h.Submit(rec, req)
		done <- rec
	}()

	<-scorer.started
	cancel()
	close(scorer.release)

	rec := <-done
	assert.Equal(t, http.StatusOK, rec.Code)

	st := o.State()
	assert.Equal(t, check.ModeResults, st.Mode)
	assert.False(t, st.Busy)
	assert.Empty(t, st.Error)
	require.NotNil(t, st.Verdict)
	assert.Equal(t, 55.0, st.Verdict.FraudScore)
}
