package ports

import (
	"context"

	"github.com/herbaria/plants-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an admin account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// RecoverInput carries the final step of the password-recovery flow.
type RecoverInput struct {
	Email           string
	NewPassword     string
	ConfirmPassword string
}

// Identity is the slice of an admin account embedded in session claims and
// pending recovery records.
type Identity struct {
	Username string
	Email    string
}

// AuthService implements registration, login, and the OTP recovery flow.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Admin, error)
	// Login returns a signed session token on success.
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	// ForgotPassword issues a one-time code for the account with the given
	// email and hands it to the delivery collaborator.
	ForgotPassword(ctx context.Context, email string) error
	// VerifyOTP checks a submitted code without consuming the pending record,
	// so the subsequent password reset can still find it.
	VerifyOTP(ctx context.Context, email, code string) (Identity, error)
	RecoverPassword(ctx context.Context, in RecoverInput) error
}
