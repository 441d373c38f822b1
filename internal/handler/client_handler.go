package handler

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/repository"
	"loyallight/backend/internal/service"
)

type ClientHandler struct {
	svc    *service.ClientService
	logger *logrus.Logger
}

func NewClientHandler(svc *service.ClientService, logger *logrus.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, logger: logger}
}

type createClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type updateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 50, 1, 200)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	clients, err := h.svc.List(r.Context(), ownerID, r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	client, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req createClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	client, err := h.svc.Create(r.Context(), ownerID, service.ClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	var req updateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	client, err := h.svc.Update(r.Context(), ownerID, id, repository.ClientUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// queryInt parses an optional integer query parameter and enforces its range.
func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid(name + " must be an integer")
	}
	if v < min || v > max {
		return 0, apperr.Invalid(name + " is out of range")
	}
	return v, nil
}
