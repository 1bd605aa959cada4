package api

import (
	"net/http"

	"github.com/vytor/lutrisart/internal/errors"
	"github.com/vytor/lutrisart/internal/logger"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses. The message
// returned to the host carries the underlying cause so it can be shown as is.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	appErr := errors.AsAppError(err)

	// Log based on status code
	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	message := appErr.Message
	if appErr.Err != nil && appErr.Code != errors.ErrCodeInternal {
		message = message + ": " + appErr.Err.Error()
	}
	writeJSON(w, r, appErr.Status, errorBody{Error: errorDetail{Code: appErr.Code, Message: message}})
}
