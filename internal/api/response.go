// internal/api/response.go
package api

import (
	"encoding/json"
	"net/http"

	"career-workers/internal/common/errors"
)

type recommendResponse struct {
	Recommendations string `json:"recommendations"`
	Label           string `json:"label"`
	Source          string `json:"source"`
	Strategy        string `json:"strategy"`
	Cached          bool   `json:"cached"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err *errors.StandardError) {
	respondJSON(w, statusFor(err.Code), errorResponse{
		Error:  err.Message,
		Detail: err.Details,
		Code:   string(err.Code),
	})
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInputParsingFailed,
		errors.ErrCodeInputShapeInvalid,
		errors.ErrCodeResumeInvalidType,
		errors.ErrCodeResumeExtractionFailed:
		return http.StatusBadRequest
	case errors.ErrCodeResumeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeDatabaseConnectionFailed, errors.ErrCodeExternalService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
