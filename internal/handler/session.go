package handler

import (
	"context"
	"net/http"

	"github.com/yieldland/minehub/internal/backend"
	"github.com/yieldland/minehub/internal/domain"
)

// SessionCommander is the backend command surface for mining sessions and
// tool synthesis.
type SessionCommander interface {
	StartSession(ctx context.Context, req backend.StartSessionRequest) (*domain.MiningSession, error)
	StopSession(ctx context.Context, sessionID string) (*backend.CollectResult, error)
	CollectSession(ctx context.Context, sessionID string) (*backend.CollectResult, error)
	SynthesizeTool(ctx context.Context, req backend.SynthesizeRequest) ([]domain.Tool, error)
}

// Refresher triggers a source refetch after a mutating command so the view
// catches up without waiting for the next tick.
type Refresher interface {
	TriggerNow(source string) (bool, error)
}

// SessionHandler proxies session commands to the backend.
type SessionHandler struct {
	commander SessionCommander
	refresher Refresher
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(commander SessionCommander, refresher Refresher) *SessionHandler {
	return &SessionHandler{commander: commander, refresher: refresher}
}

// SessionCommandRequest is the request body for stop and collect.
type SessionCommandRequest struct {
	SessionID string `json:"session_id"`
}

// HandleStart starts a mining session.
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req backend.StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.commander.StartSession(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Start session", err)
		return
	}
	h.refreshAfterCommand()
	respondJSON(w, http.StatusCreated, DataResponse{Data: session})
}

// HandleStop stops a session; pending output settles server-side.
func (h *SessionHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	var req SessionCommandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.commander.StopSession(r.Context(), req.SessionID)
	if err != nil {
		respondServiceError(w, r, "Stop session", err)
		return
	}
	h.refreshAfterCommand()
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSessionStopped, Data: result})
}

// HandleCollect collects pending output without ending the session.
func (h *SessionHandler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	var req SessionCommandRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.commander.CollectSession(r.Context(), req.SessionID)
	if err != nil {
		respondServiceError(w, r, "Collect session", err)
		return
	}
	h.refreshAfterCommand()
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgOutputCollected, Data: result})
}

// HandleSynthesize crafts new tools from resources.
func (h *SessionHandler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req backend.SynthesizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tools, err := h.commander.SynthesizeTool(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Synthesize tool", err)
		return
	}
	if h.refresher != nil {
		h.refresher.TriggerNow(domain.SourceTools)
		h.refresher.TriggerNow(domain.SourceResources)
	}
	respondJSON(w, http.StatusCreated, DataResponse{Message: MsgToolsSynthesized, Data: tools})
}

// refreshAfterCommand nudges the session-affected sources. Coalesced
// triggers are fine here; the regular cadence will catch up.
func (h *SessionHandler) refreshAfterCommand() {
	if h.refresher == nil {
		return
	}
	h.refresher.TriggerNow(domain.SourceSessions)
	h.refresher.TriggerNow(domain.SourceResources)
	h.refresher.TriggerNow(domain.SourceWallet)
}
