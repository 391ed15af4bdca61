package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/validation"
)

const (
	msgBadRequest = "Bad Request"
	msgInternal   = "Internal Server Error"
)

// ErrorResponse is the body of every non-2xx answer. ErrorMessages is only
// set for field validation failures.
type ErrorResponse struct {
	Code          int               `json:"code"`
	Message       string            `json:"message"`
	ErrorMessages map[string]string `json:"errorMessages,omitempty"`
}

// errMalformed marks a request body that could not be decoded.
var errMalformed = errors.New("malformed request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{
		Code:          status,
		Message:       message,
		ErrorMessages: fields,
	})
}

// handleError maps a service or request error onto the error envelope.
// Unexpected errors are logged and answered without detail.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		fields     validation.Errors
		notFound   *clinic.NotFoundError
		dependents *clinic.DependentsError
	)

	switch {
	case errors.As(err, &fields):
		writeError(w, http.StatusBadRequest, msgBadRequest, fields)
	case errors.Is(err, errMalformed):
		log.Ctx(r.Context()).Debug().Err(err).Msg("rejected request body")
		writeError(w, http.StatusBadRequest, msgBadRequest, nil)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &dependents):
		writeError(w, http.StatusConflict, dependents.Error(), nil)
	case errors.Is(err, clinic.ErrHasDependents):
		writeError(w, http.StatusConflict, clinic.ErrHasDependents.Error(), nil)
	case errors.Is(err, clinic.ErrPrescriptionExists):
		writeError(w, http.StatusConflict, clinic.ErrPrescriptionExists.Error(), nil)
	default:
		log.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, msgInternal, nil)
	}
}
