package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
)

type CreateStigmaInput struct {
	Actor    user.Principal
	Name     string
	ImageURL string
}

type StigmaService struct {
	stigmas stigma.Repository
	idGen   id.Generator
	now     func() time.Time
}

func NewStigmaService(stigmas stigma.Repository, idGen id.Generator) *StigmaService {
	return &StigmaService{
		stigmas: stigmas,
		idGen:   idGen,
		now:     time.Now,
	}
}

func (s *StigmaService) List(ctx context.Context) ([]stigma.Stigma, error) {
	items, err := s.stigmas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stigmas: %w", err)
	}
	return items, nil
}

func (s *StigmaService) Create(ctx context.Context, input CreateStigmaInput) (stigma.Stigma, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StigmaService.Create")
	defer span.End()

	if !input.Actor.IsAdmin() {
		return stigma.Stigma{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	stigmaID, err := s.idGen.NewID()
	if err != nil {
		return stigma.Stigma{}, fmt.Errorf("generate stigma id: %w", err)
	}

	item := stigma.Stigma{
		ID:        stigmaID,
		Name:      strings.TrimSpace(input.Name),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return stigma.Stigma{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.stigmas.Create(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return stigma.Stigma{}, fmt.Errorf("%w: stigma %q", ErrConflict, item.Name)
		}
		return stigma.Stigma{}, fmt.Errorf("create stigma: %w", err)
	}
	return item, nil
}
