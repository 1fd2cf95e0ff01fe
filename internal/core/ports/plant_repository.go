package ports

import (
	"context"

	"github.com/herbaria/plants-api/internal/core/domain"
)

// SearchFilter selects which plant fields a search query matches against.
type SearchFilter string

const (
	FilterAll  SearchFilter = "all"
	FilterName SearchFilter = "name"
	FilterUses SearchFilter = "uses"
)

// CategoryCount is one category tag with the number of plants carrying it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PlantRepository defines the interface for plant catalog persistence.
type PlantRepository interface {
	List(ctx context.Context, skip, limit int64) ([]*domain.Plant, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	Insert(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	Update(ctx context.Context, id string, plant *domain.Plant) (*domain.Plant, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, filter SearchFilter) ([]*domain.Plant, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}
