package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"lrbooking/apperr"
	"lrbooking/logger"
)

// ApiResponse is the envelope of every JSON response.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, ApiResponse{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ApiResponse{Success: true, Message: message})
}

// writeError maps err onto its status code. Unclassified errors are logged
// and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	resp := ApiResponse{Success: false, Message: err.Error()}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		resp.Code = string(appErr.Kind)
		resp.Field = appErr.Field
	}

	log := logger.FromContext(r.Context(), nil)
	switch {
	case status >= 500:
		log.Errorw("request failed", "error", err, "status", status)
		if appErr == nil {
			resp.Message = "internal server error"
		}
	default:
		log.Debugw("request rejected", "error", err, "status", status)
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads the body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperr.Validation("body", "invalid JSON: "+err.Error())
}
