package handler

import (
	"net/http"
	"time"

	"github.com/yieldland/minehub/internal/prefs"
)

// PrefsHandler exposes the time-boxed UI preference flags.
type PrefsHandler struct {
	store *prefs.Store
}

// NewPrefsHandler creates a new preference handler.
func NewPrefsHandler(store *prefs.Store) *PrefsHandler {
	return &PrefsHandler{store: store}
}

// NoticeStatusResponse reports whether a notice is currently dismissed.
type NoticeStatusResponse struct {
	Name      string `json:"name"`
	Dismissed bool   `json:"dismissed"`
}

// HandleGetNotice reports the dismissal state of a named notice.
func (h *PrefsHandler) HandleGetNotice(w http.ResponseWriter, r *http.Request) {
	name, ok := GetQueryParam(r, w, "name")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, NoticeStatusResponse{
		Name:      name,
		Dismissed: h.store.IsDismissed(name, time.Now()),
	})
}

// HandleDismissNotice records a dismissal, effective for the TTL window.
func (h *PrefsHandler) HandleDismissNotice(w http.ResponseWriter, r *http.Request) {
	name, ok := GetQueryParam(r, w, "name")
	if !ok {
		return
	}
	h.store.Dismiss(name, time.Now())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNoticeDismissed})
}

// HandleResetNotice clears a dismissal before its TTL runs out.
func (h *PrefsHandler) HandleResetNotice(w http.ResponseWriter, r *http.Request) {
	name, ok := GetQueryParam(r, w, "name")
	if !ok {
		return
	}
	h.store.Reset(name)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNoticeReset})
}
