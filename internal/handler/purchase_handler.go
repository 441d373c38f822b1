package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/service"
)

type PurchaseHandler struct {
	svc    *service.PurchaseService
	logger *logrus.Logger
}

func NewPurchaseHandler(svc *service.PurchaseService, logger *logrus.Logger) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, logger: logger}
}

type createPurchaseRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	purchases, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req createPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	purchase, err := h.svc.Create(r.Context(), ownerID, req.ClientID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, purchase)
}
