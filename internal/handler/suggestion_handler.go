package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/service"
)

type SuggestionHandler struct {
	svc    *service.SuggestionService
	logger *logrus.Logger
}

func NewSuggestionHandler(svc *service.SuggestionService, logger *logrus.Logger) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, logger: logger}
}

func (h *SuggestionHandler) ForClient(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	bundle, err := h.svc.ForClient(r.Context(), ownerID, id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, bundle)
}

func (h *SuggestionHandler) TopAtRisk(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 5, 1, 50)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	bundles, err := h.svc.TopAtRisk(r.Context(), ownerID, limit)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, bundles)
}
