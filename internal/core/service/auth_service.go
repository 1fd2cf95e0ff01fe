package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/herbaria/plants-api/internal/api/metrics"
	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
	"github.com/herbaria/plants-api/internal/pkg/password"
	"github.com/herbaria/plants-api/internal/pkg/token"
)

// Throttle limits how often a recovery code may be issued per email.
// A nil Throttle disables the limit.
type Throttle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// PasswordPolicy holds the configurable rules applied to new passwords.
type PasswordPolicy struct {
	MinLength int
}

// AuthService implements registration, login, and OTP password recovery.
type AuthService struct {
	repo     ports.AdminRepository
	hasher   *password.Hasher
	codec    *token.Codec
	otp      ports.OTPStore
	sender   ports.OTPSender
	throttle Throttle
	audit    ports.AuditRecorder
	policy   PasswordPolicy
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.AdminRepository,
	hasher *password.Hasher,
	codec *token.Codec,
	otpStore ports.OTPStore,
	sender ports.OTPSender,
	throttle Throttle,
	audit ports.AuditRecorder,
	policy PasswordPolicy,
	log zerolog.Logger,
) *AuthService {
	if policy.MinLength <= 0 {
		policy.MinLength = 6
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		otp:      otpStore,
		sender:   sender,
		throttle: throttle,
		audit:    audit,
		policy:   policy,
		log:      log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Admin, error) {
	if err := s.checkPassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("admin registered")
	return created, nil
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *domain.Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(pass, admin.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(admin.Username, admin.Email)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditLogin, admin.Username, "")
	return tok, admin, nil
}

// ForgotPassword starts a recovery attempt. The account must exist; the
// resulting 404 for unknown emails mirrors the legacy behaviour and permits
// enumeration, which is why issuance is throttled.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("otp throttle check failed, allowing request")
		} else if !allowed {
			return domain.ErrTooManyRequests
		}
	}

	code, err := s.otp.Request(ctx, email, ports.Identity{Username: admin.Username, Email: admin.Email})
	if err != nil {
		return err
	}
	metrics.OTPIssuedTotal.Inc()

	// The code is stored before delivery: a send failure must not strand an
	// attempt the user may still complete through another channel.
	if err := s.sender.Send(ctx, email, code); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("otp delivery failed")
	}
	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (ports.Identity, error) {
	identity, err := s.otp.Verify(ctx, email, code)
	if err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues("failure").Inc()
		return ports.Identity{}, err
	}
	metrics.OTPVerifiedTotal.WithLabelValues("success").Inc()
	return identity, nil
}

// RecoverPassword completes the flow: a pending record must exist for the
// email, the new password must pass policy, and the record is consumed only
// after the digest update succeeded.
func (s *AuthService) RecoverPassword(ctx context.Context, in ports.RecoverInput) error {
	if err := s.checkPassword(in.NewPassword, in.ConfirmPassword); err != nil {
		return err
	}

	identity, err := s.otp.Pending(ctx, in.Email)
	if err != nil {
		return err
	}

	digest, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, in.Email, digest); err != nil {
		return err
	}
	if err := s.otp.Consume(ctx, in.Email); err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("failed to consume otp record")
	}

	s.log.Info().Str("username", identity.Username).Msg("password recovered")
	s.record(domain.AuditPasswordReset, identity.Username, "")
	return nil
}

func (s *AuthService) checkPassword(pass, confirm string) error {
	if pass != confirm {
		return domain.ErrPasswordMismatch
	}
	if len(pass) < s.policy.MinLength {
		return domain.ErrPasswordTooShort
	}
	return nil
}

func (s *AuthService) record(action, actor, entityID string) {
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
