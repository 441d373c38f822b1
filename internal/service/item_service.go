package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/model"
	"loyallight/backend/internal/repository"
)

// Uploader pushes an image to the external object store and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type ItemInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    *string
}

type ItemService struct {
	repo     repository.ItemRepository
	uploader Uploader
}

func NewItemService(repo repository.ItemRepository, uploader Uploader) *ItemService {
	return &ItemService{repo: repo, uploader: uploader}
}

func (s *ItemService) List(ctx context.Context, ownerID uuid.UUID, q string) ([]model.Item, error) {
	return s.repo.List(ctx, ownerID, strings.TrimSpace(q))
}

func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, in ItemInput) (*model.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if in.Price < 0 {
		return nil, apperr.Invalid("price must not be negative")
	}
	if in.Stock < 0 {
		return nil, apperr.Invalid("stock must not be negative")
	}

	item := &model.Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    normalizeOptional(in.ImageURL),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, itemID)
}

func (s *ItemService) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.Invalid("image file is empty")
	}
	return s.uploader.Upload(ctx, filename, contentType, data)
}
