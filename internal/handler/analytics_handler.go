package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/service"
)

type AnalyticsHandler struct {
	svc    *service.AnalyticsService
	logger *logrus.Logger
}

func NewAnalyticsHandler(svc *service.AnalyticsService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, logger: logger}
}

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	overview, err := h.svc.Overview(r.Context(), ownerID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
