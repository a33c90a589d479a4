package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/logger"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/validator"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)

	body := errorBody{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		body.Code = appErr.Code
		body.Message = appErr.Message
	}

	var valErr *validator.ValidationError
	if apperrors.As(err, &valErr) {
		status = http.StatusBadRequest
		body.Code = "VALIDATION_FAILED"
		body.Message = "request validation failed"
		body.Fields = valErr.Fields()
	}

	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	respondJSON(w, status, errorResponse{Error: body})
}
