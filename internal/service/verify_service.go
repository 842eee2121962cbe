package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"goldconnect/api/internal/ids"
	"goldconnect/api/internal/models"
)

type verifyStore interface {
	Create(ctx context.Context, rec models.VerifyRecord) error
	List(ctx context.Context) ([]models.VerifyRecord, error)
	Delete(ctx context.Context, id string) error
}

type VerifyService struct {
	store verifyStore
	log   zerolog.Logger
}

func NewVerifyService(store verifyStore, log zerolog.Logger) *VerifyService {
	return &VerifyService{store: store, log: log}
}

type VerifyInput struct {
	Name        string
	Country     string
	PhoneNumber string
}

// Create requires all three fields non-empty. No format validation on
// the phone number, no uniqueness: free-text contact records.
func (s *VerifyService) Create(ctx context.Context, input VerifyInput) (models.VerifyRecord, error) {
	rec := models.VerifyRecord{
		ID:          ids.New(),
		Name:        strings.TrimSpace(input.Name),
		Country:     strings.TrimSpace(input.Country),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
	}

	if rec.Name == "" || rec.Country == "" || rec.PhoneNumber == "" {
		return models.VerifyRecord{}, fmt.Errorf("%w: name, country and phone number are required", ErrValidation)
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return models.VerifyRecord{}, fmt.Errorf("persist verify record: %w", err)
	}
	return rec, nil
}

func (s *VerifyService) List(ctx context.Context) ([]models.VerifyRecord, error) {
	return s.store.List(ctx)
}

func (s *VerifyService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
