package ports

import (
	"context"

	"github.com/herbaria/plants-api/internal/core/domain"
)

// AdminRepository defines the interface for admin identity persistence.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// UpdatePassword replaces the stored digest for the admin with the given
	// email and bumps the updated_at timestamp.
	UpdatePassword(ctx context.Context, email, digest string) error
}
