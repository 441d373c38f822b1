package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/middleware"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError maps taxonomy errors onto their HTTP status; anything else is
// logged and reported as a 500 without leaking details.
func respondError(logger *logrus.Logger, w http.ResponseWriter, err error) {
	if appErr := apperr.From(err); appErr != nil {
		respondJSON(w, appErr.Status, appErr)
		return
	}
	logger.WithError(err).Error("request failed")
	respondJSON(w, http.StatusInternalServerError, map[string]string{
		"code":  "internal_error",
		"error": "internal server error",
	})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("invalid request body")
	}
	return nil
}

// owner returns the authenticated owner id. The auth middleware guarantees
// its presence on protected routes.
func owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{
			"code":  "unauthorized",
			"error": "missing authentication",
		})
	}
	return ownerID, ok
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Invalid("invalid " + name + " in path")
	}
	return id, nil
}
