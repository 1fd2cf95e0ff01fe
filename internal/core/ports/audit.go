package ports

import (
	"context"
	"time"

	"github.com/herbaria/plants-api/internal/core/domain"
)

// AuditEntry is the DTO handed from services to the audit pipeline.
type AuditEntry struct {
	Actor     string
	Action    string
	EntityID  string
	Timestamp time.Time
}

// AuditRecorder accepts entries for asynchronous recording. Implementations
// must never block the request path; a dropped or failed entry is logged,
// not surfaced to the caller.
type AuditRecorder interface {
	Record(entry AuditEntry)
}

// AuditService persists a single audit entry.
type AuditService interface {
	Process(ctx context.Context, entry AuditEntry) error
}

// AuditRepository handles audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
