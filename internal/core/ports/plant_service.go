package ports

import (
	"context"
	"time"

	"github.com/herbaria/plants-api/internal/core/domain"
)

// PlantInput carries all editable fields of a plant record.
type PlantInput struct {
	Name            string
	ScientificName  string
	TagalogName     string
	Family          string
	Genus           string
	Category        []string
	Uses            []string
	Description     string
	ActiveCompounds []string
	Preparation     []string
	Precautions     []string
	Image           string
}

// PlantPage is one page of catalog results.
type PlantPage struct {
	Plants []*domain.Plant
	Total  int64
	Page   int64
	Limit  int64
}

// AdminStats backs the back-office dashboard.
type AdminStats struct {
	TotalPlants     int64           `json:"total_plants"`
	TotalCategories int64           `json:"total_categories"`
	Categories      []CategoryCount `json:"categories"`
	LastUpdated     time.Time       `json:"last_updated"`
}

// PlantService implements the public catalog and the admin mutations.
// Mutations carry the acting admin's username for the audit trail.
type PlantService interface {
	List(ctx context.Context, page, limit int64) (*PlantPage, error)
	Get(ctx context.Context, id string) (*domain.Plant, error)
	Create(ctx context.Context, actor string, in PlantInput) (*domain.Plant, error)
	Update(ctx context.Context, actor, id string, in PlantInput) (*domain.Plant, error)
	Delete(ctx context.Context, actor, id string) error
	Search(ctx context.Context, query string, filter SearchFilter) ([]*domain.Plant, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
	Stats(ctx context.Context) (*AdminStats, error)
}
