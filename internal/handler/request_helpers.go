package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// decodeJSON parses the request body into dst, responding with 400 on
// failure. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return false
	}
	return true
}

// GetQueryParam extracts a required query parameter, responding with 400 when
// it is absent.
func GetQueryParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam extracts a query parameter with a fallback default.
func GetOptionalQueryParam(r *http.Request, name, fallback string) string {
	if value := r.URL.Query().Get(name); value != "" {
		return value
	}
	return fallback
}
