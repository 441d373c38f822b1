package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/service"
)

// maxUploadBytes caps item image uploads.
const maxUploadBytes = 10 << 20

type ItemHandler struct {
	svc    *service.ItemService
	logger *logrus.Logger
}

func NewItemHandler(svc *service.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, logger: logger}
}

type createItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url"`
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	items, err := h.svc.List(r.Context(), ownerID, r.URL.Query().Get("q"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	item, err := h.svc.Create(r.Context(), ownerID, service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ItemHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := owner(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(h.logger, w, apperr.Invalid("file exceeds the upload size limit"))
			return
		}
		respondError(h.logger, w, apperr.Invalid("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(h.logger, w, apperr.Invalid("file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	url, err := h.svc.UploadImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"image_url": url})
}
