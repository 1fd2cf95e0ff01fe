package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting entries to the audit
// trail collection.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, entry ports.AuditEntry) error {
	event := &domain.AuditEvent{
		Actor:     entry.Actor,
		Action:    entry.Action,
		EntityID:  entry.EntityID,
		Timestamp: entry.Timestamp,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		s.log.Error().Err(err).Str("action", entry.Action).Msg("failed to persist audit event")
		return err
	}
	return nil
}
