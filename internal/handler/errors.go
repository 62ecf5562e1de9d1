package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for input rejected either by the
// handler (malformed body or query) or by domain validation. The message is
// per entity ("invalid trip data") and never names the failing field.
func validationBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

func tooLargeBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "payload_too_large", Message: "request body too large"}}
}

func internalBody() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}}
}

// errorMessages names what a failing call was about, per error kind.
type errorMessages struct {
	notFound string
	invalid  string
}

var (
	tripErrors         = errorMessages{notFound: "trip not found", invalid: "invalid trip data"}
	mealErrors         = errorMessages{notFound: "meal not found", invalid: "invalid meal data"}
	tripMealErrors     = errorMessages{notFound: "trip meal not found", invalid: "invalid trip meal data"}
	shoppingListErrors = errorMessages{notFound: "shopping list not found", invalid: "invalid shopping list data"}
)

// writeServiceError maps a service error to its HTTP response. Sentinel
// domain errors become 404 and 400; anything else is logged and answered 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msgs errorMessages) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(msgs.notFound))
	case errors.Is(err, domain.ErrValidation):
		slog.DebugContext(r.Context(), "request rejected", "error", err)
		writeJSON(w, http.StatusBadRequest, validationBody(msgs.invalid))
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}

// writeDecodeError answers a body that could not be decoded: 413 when the
// body limit was crossed, 400 otherwise.
func writeDecodeError(w http.ResponseWriter, err error, msgs errorMessages) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, tooLargeBody())
		return
	}
	writeJSON(w, http.StatusBadRequest, validationBody(msgs.invalid))
}
