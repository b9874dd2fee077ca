package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/arcade/internal/errors"
	"github.com/vytor/arcade/internal/logger"
)

var errNotFoundRoute = &errors.AppError{
	Code:    errors.ErrCodeNotFound,
	Message: "route not found",
	Status:  http.StatusNotFound,
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Code: appErr.Code, Message: appErr.Message}}); err != nil {
		log.Error("failed to encode error response: %v", err)
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
