package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldland/minehub/internal/backend"
	"github.com/yieldland/minehub/internal/domain"
)

type fakeCommander struct {
	startReq  backend.StartSessionRequest
	stopID    string
	collectID string
	synthReq  backend.SynthesizeRequest
	err       error
}

func (f *fakeCommander) StartSession(ctx context.Context, req backend.StartSessionRequest) (*domain.MiningSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.startReq = req
	return &domain.MiningSession{ID: "s1", Status: domain.SessionActive}, nil
}

func (f *fakeCommander) StopSession(ctx context.Context, sessionID string) (*backend.CollectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.stopID = sessionID
	return &backend.CollectResult{SessionID: sessionID, Collected: 12}, nil
}

func (f *fakeCommander) CollectSession(ctx context.Context, sessionID string) (*backend.CollectResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.collectID = sessionID
	return &backend.CollectResult{SessionID: sessionID, Collected: 7}, nil
}

func (f *fakeCommander) SynthesizeTool(ctx context.Context, req backend.SynthesizeRequest) ([]domain.Tool, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.synthReq = req
	return []domain.Tool{{ID: "t1", Kind: req.Kind}}, nil
}

type fakeRefresher struct {
	sources []string
}

func (f *fakeRefresher) TriggerNow(source string) (bool, error) {
	f.sources = append(f.sources, source)
	return true, nil
}

func TestSessionHandler_Start(t *testing.T) {
	commander := &fakeCommander{}
	refresher := &fakeRefresher{}
	h := NewSessionHandler(commander, refresher)

	body := `{"land_id":"L1","tool_ids":["t1"],"resource_kind":"wood"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "L1", commander.startReq.LandID)
	assert.Contains(t, refresher.sources, domain.SourceSessions)
	assert.Contains(t, refresher.sources, domain.SourceWallet)
}

func TestSessionHandler_StartInvalidBody(t *testing.T) {
	h := NewSessionHandler(&fakeCommander{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", strings.NewReader("{bad"))
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_StopAndCollect(t *testing.T) {
	commander := &fakeCommander{}
	h := NewSessionHandler(commander, &fakeRefresher{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/stop", strings.NewReader(`{"session_id":"s9"}`))
	rec := httptest.NewRecorder()
	h.HandleStop(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s9", commander.stopID)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sessions/collect", strings.NewReader(`{"session_id":"s9"}`))
	rec = httptest.NewRecorder()
	h.HandleCollect(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s9", commander.collectID)

	var resp DataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgOutputCollected, resp.Message)
}

func TestSessionHandler_Synthesize(t *testing.T) {
	commander := &fakeCommander{}
	refresher := &fakeRefresher{}
	h := NewSessionHandler(commander, refresher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/synthesize", strings.NewReader(`{"tool_type":"axe","quantity":1}`))
	rec := httptest.NewRecorder()
	h.HandleSynthesize(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.ToolAxe, commander.synthReq.Kind)
	assert.Contains(t, refresher.sources, domain.SourceTools)
}

func TestSessionHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"transport", domain.ErrTransport, http.StatusBadGateway},
		{"unauthorized", domain.ErrUnauthorized, http.StatusBadGateway},
		{"business", domain.ErrBusiness, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewSessionHandler(&fakeCommander{err: tc.err}, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/stop", strings.NewReader(`{"session_id":"s1"}`))
			rec := httptest.NewRecorder()
			h.HandleStop(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
