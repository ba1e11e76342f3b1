package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/yieldland/minehub/internal/derive"
	"github.com/yieldland/minehub/internal/domain"
)

// ViewProvider serves the latest composed view.
type ViewProvider interface {
	View() domain.AggregatedView
	Warm() bool
}

// RefreshController is the poller surface the HTTP layer drives.
type RefreshController interface {
	TriggerNow(source string) (bool, error)
	RefreshAll()
	SetEnabled(source string, enabled bool) error
	Halted() bool
}

// ViewResponse is the full payload served to the UI: the raw composed view
// plus the derived summary block.
type ViewResponse struct {
	View    domain.AggregatedView `json:"view"`
	Derived derive.Summary        `json:"derived"`
	Stale   bool                  `json:"stale"`
}

// HandleGetView returns the current aggregated view with derived metrics.
func HandleGetView(provider ViewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := provider.View()
		respondJSON(w, http.StatusOK, ViewResponse{
			View:    view,
			Derived: derive.BuildSummary(view, time.Now()),
			Stale:   provider.Warm(),
		})
	}
}

// HandleRefresh triggers an immediate refetch. With a source query parameter
// it refreshes that source only; without one it refreshes everything. A
// trigger arriving while that source's fetch is in flight is reported as
// coalesced, not an error.
func HandleRefresh(controller RefreshController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := GetOptionalQueryParam(r, "source", "")
		if source == "" {
			controller.RefreshAll()
			respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgRefreshTriggered})
			return
		}

		triggered, err := controller.TriggerNow(source)
		if err != nil {
			respondServiceError(w, r, "Refresh", err)
			return
		}
		if !triggered {
			respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgRefreshCoalesced})
			return
		}
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgRefreshTriggered})
	}
}

// HandleSetSourceEnabled toggles polling for one source.
func HandleSetSourceEnabled(controller RefreshController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source, ok := GetQueryParam(r, w, "source")
		if !ok {
			return
		}
		enabledRaw, ok := GetQueryParam(r, w, "enabled")
		if !ok {
			return
		}
		enabled, err := strconv.ParseBool(enabledRaw)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := controller.SetEnabled(source, enabled); err != nil {
			respondServiceError(w, r, "Toggle source", err)
			return
		}
		message := MsgSourceDisabled
		if enabled {
			message = MsgSourceEnabled
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: message})
	}
}
