package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tracker/internal/events"
	"tracker/internal/middleware"
	"tracker/internal/response"
	"tracker/internal/store"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// payload is a request body that can be normalised and validated after decoding.
type payload interface {
	Normalize()
	Validate() error
}

// decode reads a JSON body into v. It writes a 415 for non-JSON content types, a 400
// for undecodable or invalid payloads, and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, maxBytes int64, v payload) bool {
	if !middleware.IsJSON(r.Header.Get("Content-Type")) {
		response.Error(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxBytes))
			return false
		}
		response.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	v.Normalize()
	if err := v.Validate(); err != nil {
		response.Error(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// storeError maps store errors to HTTP status codes.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		response.Error(w, http.StatusServiceUnavailable, store.ErrUnavailable.Error())
	default:
		log.Error().Err(err).Msg("store operation failed")
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

// publish sends e and only logs failures; events never fail a request.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if err := p.Publish(ctx, e); err != nil {
		log.Warn().Err(err).Str("type", e.Type).Str("id", e.ID).Msg("failed to publish event")
	}
}
