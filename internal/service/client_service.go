package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"loyallight/backend/internal/apperr"
	"loyallight/backend/internal/model"
	"loyallight/backend/internal/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ClientInput struct {
	Name  string
	Email *string
	Phone *string
}

type ClientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) List(ctx context.Context, ownerID uuid.UUID, q string, limit, offset int) ([]model.Client, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, ownerID, strings.TrimSpace(q), limit, offset)
}

func (s *ClientService) Get(ctx context.Context, ownerID, clientID uuid.UUID) (*model.Client, error) {
	return s.repo.GetByID(ctx, ownerID, clientID)
}

func (s *ClientService) Create(ctx context.Context, ownerID uuid.UUID, in ClientInput) (*model.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
		Email:   email,
		Phone:   normalizeOptional(in.Phone),
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, ownerID, clientID uuid.UUID, upd repository.ClientUpdate) (*model.Client, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.Invalid("name must not be empty")
		}
		upd.Name = &name
	}
	if upd.Email != nil {
		email, err := normalizeEmail(upd.Email)
		if err != nil {
			return nil, err
		}
		upd.Email = email
	}
	return s.repo.Update(ctx, ownerID, clientID, upd)
}

func (s *ClientService) Delete(ctx context.Context, ownerID, clientID uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, clientID)
}

func normalizeEmail(email *string) (*string, error) {
	e := normalizeOptional(email)
	if e == nil {
		return nil, nil
	}
	if !emailPattern.MatchString(*e) {
		return nil, apperr.Invalid("invalid email address")
	}
	return e, nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
