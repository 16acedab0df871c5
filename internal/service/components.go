package service

import (
	"context"

	"github.com/nstepanova/onboard/internal/models"
)

// ComponentRepository defines the persistence operations required by the
// component-configuration service.
type ComponentRepository interface {
	// All returns every entry ordered by page ascending.
	All(ctx context.Context) ([]models.ComponentConfig, error)
	// Upsert inserts the entry or overwrites the page of an existing name.
	Upsert(ctx context.Context, name string, page int) (*models.ComponentConfig, error)
}

// ComponentService implements component-configuration operations by
// delegating to a ComponentRepository.
type ComponentService struct {
	repo ComponentRepository
}

// NewComponentService constructs a new ComponentService using the
// provided repository.
func NewComponentService(repo ComponentRepository) *ComponentService {
	return &ComponentService{repo: repo}
}

// All returns every component configuration entry ordered by page ascending.
func (s *ComponentService) All(ctx context.Context) ([]models.ComponentConfig, error) {
	return s.repo.All(ctx)
}

// Set validates and upserts a single entry keyed on its name. The page
// must be 2 or 3; nothing is written otherwise.
func (s *ComponentService) Set(ctx context.Context, name string, page int) (*models.ComponentConfig, error) {
	if name == "" {
		return nil, ValidationError("component name is required")
	}
	if page != 2 && page != 3 {
		return nil, ValidationError("page must be 2 or 3")
	}
	return s.repo.Upsert(ctx, name, page)
}
