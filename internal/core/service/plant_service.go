package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/herbaria/plants-api/internal/api/metrics"
	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
)

var ErrMissingPlantFields = errors.New("name and scientific name are required")

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PlantService implements the public catalog and the admin mutations.
type PlantService struct {
	repo  ports.PlantRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewPlantService(repo ports.PlantRepository, audit ports.AuditRecorder, log zerolog.Logger) *PlantService {
	return &PlantService{repo: repo, audit: audit, log: log}
}

func (s *PlantService) List(ctx context.Context, page, limit int64) (*ports.PlantPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	plants, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &ports.PlantPage{Plants: plants, Total: total, Page: page, Limit: limit}, nil
}

func (s *PlantService) Get(ctx context.Context, id string) (*domain.Plant, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PlantService) Create(ctx context.Context, actor string, in ports.PlantInput) (*domain.Plant, error) {
	if in.Name == "" || in.ScientificName == "" {
		return nil, ErrMissingPlantFields
	}

	now := time.Now().UTC()
	plant := plantFromInput(in)
	plant.CreatedAt = now
	plant.UpdatedAt = now

	created, err := s.repo.Insert(ctx, plant)
	if err != nil {
		return nil, err
	}

	metrics.PlantMutationsTotal.WithLabelValues("create").Inc()
	s.record(domain.AuditPlantCreated, actor, created.ID)
	s.log.Info().Str("plant", created.Name).Str("id", created.ID).Msg("plant created")
	return created, nil
}

func (s *PlantService) Update(ctx context.Context, actor, id string, in ports.PlantInput) (*domain.Plant, error) {
	if in.Name == "" || in.ScientificName == "" {
		return nil, ErrMissingPlantFields
	}

	plant := plantFromInput(in)
	plant.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, plant)
	if err != nil {
		return nil, err
	}

	metrics.PlantMutationsTotal.WithLabelValues("update").Inc()
	s.record(domain.AuditPlantUpdated, actor, id)
	return updated, nil
}

func (s *PlantService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.PlantMutationsTotal.WithLabelValues("delete").Inc()
	s.record(domain.AuditPlantDeleted, actor, id)
	return nil
}

// Search matches query against the fields selected by filter. An empty query
// returns an empty result set rather than the full catalog.
func (s *PlantService) Search(ctx context.Context, query string, filter ports.SearchFilter) ([]*domain.Plant, error) {
	if query == "" {
		return []*domain.Plant{}, nil
	}
	switch filter {
	case ports.FilterName, ports.FilterUses:
	default:
		filter = ports.FilterAll
	}

	start := time.Now()
	results, err := s.repo.Search(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	return results, nil
}

func (s *PlantService) Categories(ctx context.Context) ([]ports.CategoryCount, error) {
	return s.repo.CountByCategory(ctx)
}

func (s *PlantService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	categories, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	// List sorts by updated_at descending, so the first record carries the
	// catalog's most recent modification time.
	plants, total, err := s.repo.List(ctx, 0, 1)
	if err != nil {
		return nil, err
	}
	var last time.Time
	if len(plants) > 0 {
		last = plants[0].UpdatedAt
	}

	return &ports.AdminStats{
		TotalPlants:     total,
		TotalCategories: int64(len(categories)),
		Categories:      categories,
		LastUpdated:     last,
	}, nil
}

func (s *PlantService) record(action, actor, entityID string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEntry{
		Actor:     actor,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	})
}

func plantFromInput(in ports.PlantInput) *domain.Plant {
	return &domain.Plant{
		Name:            in.Name,
		ScientificName:  in.ScientificName,
		TagalogName:     in.TagalogName,
		Family:          in.Family,
		Genus:           in.Genus,
		Category:        in.Category,
		Uses:            in.Uses,
		Description:     in.Description,
		ActiveCompounds: in.ActiveCompounds,
		Preparation:     in.Preparation,
		Precautions:     in.Precautions,
		Image:           in.Image,
	}
}
