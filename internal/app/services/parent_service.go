package services

import (
	"context"
	"strings"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/app/models/dto"
	"github.com/osei/edushield/internal/pkg/helpers"
)

type parentStore interface {
	Create(ctx context.Context, parent *models.Parent) error
	GetByID(ctx context.Context, id int64) (*models.Parent, error)
	GetAll(ctx context.Context) ([]*models.Parent, error)
	CardNumberExists(ctx context.Context, cardNumber string) (bool, error)
}

// ParentService handles parent/guardian operations
type ParentService struct {
	parentRepo parentStore
}

// NewParentService creates a new parent service instance
func NewParentService(parentRepo parentStore) *ParentService {
	return &ParentService{
		parentRepo: parentRepo,
	}
}

// CreateParent creates a parent record. A repeated card number only yields a
// warning on the result; it never blocks the write.
func (s *ParentService) CreateParent(ctx context.Context, req *dto.CreateParentRequest) (*models.Parent, bool, error) {
	duplicateCard := false
	card := strings.TrimSpace(req.CardNumber)
	if card != "" {
		exists, err := s.parentRepo.CardNumberExists(ctx, card)
		if err != nil {
			return nil, false, err
		}
		duplicateCard = exists
	}

	parent := &models.Parent{
		FullName:   strings.TrimSpace(req.FullName),
		Phone:      strings.TrimSpace(req.Phone),
		CardNumber: helpers.OptionalString(card),
		Address:    helpers.OptionalString(strings.TrimSpace(req.Address)),
	}

	if err := s.parentRepo.Create(ctx, parent); err != nil {
		return nil, false, err
	}

	return parent, duplicateCard, nil
}

// GetParentByID retrieves a parent by ID
func (s *ParentService) GetParentByID(ctx context.Context, id int64) (*models.Parent, error) {
	return s.parentRepo.GetByID(ctx, id)
}

// GetAllParents retrieves all parents
func (s *ParentService) GetAllParents(ctx context.Context) ([]*models.Parent, error) {
	return s.parentRepo.GetAll(ctx)
}
