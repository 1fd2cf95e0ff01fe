package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
	"github.com/herbaria/plants-api/internal/pkg/otp"
	"github.com/herbaria/plants-api/internal/pkg/password"
	"github.com/herbaria/plants-api/internal/pkg/token"
)

type stubAdminRepo struct {
	admins map[string]*domain.Admin // keyed by username
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	for _, existing := range r.admins {
		if existing.Username == admin.Username || existing.Email == admin.Email {
			return nil, domain.ErrAdminExists
		}
	}
	stored := cloneAdmin(admin)
	stored.ID = admin.Username
	r.admins[stored.Username] = stored
	return cloneAdmin(stored), nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	if a, ok := r.admins[username]; ok {
		return cloneAdmin(a), nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) UpdatePassword(_ context.Context, email, digest string) error {
	for _, a := range r.admins {
		if a.Email == email {
			a.PasswordHash = digest
			a.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrAdminNotFound
}

type captureSender struct {
	codes []string
}

func (s *captureSender) Send(_ context.Context, _, code string) error {
	s.codes = append(s.codes, code)
	return nil
}

func newTestAuthService() (*AuthService, *stubAdminRepo, *captureSender) {
	repo := newStubAdminRepo()
	sender := &captureSender{}
	svc := NewAuthService(
		repo,
		password.New(1000),
		token.NewCodec("test-secret", time.Hour),
		otp.NewMemoryStore(10*time.Minute),
		sender,
		nil,
		nil,
		PasswordPolicy{MinLength: 6},
		zerolog.Nop(),
	)
	return svc, repo, sender
}

func register(t *testing.T, svc *AuthService, username, email, pass string) *domain.Admin {
	t.Helper()
	admin, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        pass,
		ConfirmPassword: pass,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return admin
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService()

	admin := register(t, svc, "alice", "a@x.com", "secret1")
	if admin.Username != "alice" || admin.Email != "a@x.com" {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	stored := repo.admins["alice"]
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("expected password to be hashed, got %q", stored.PasswordHash)
	}
	if !password.New(1000).Verify("secret1", stored.PasswordHash) {
		t.Fatalf("stored digest does not match password")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Email: "b@x.com", Password: "secret1", ConfirmPassword: "other77",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	_, err = svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Email: "b@x.com", Password: "short", ConfirmPassword: "short",
	})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, repo, _ := newTestAuthService()
	register(t, svc, "alice", "a@x.com", "secret1")

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "other@x.com", Password: "secret2", ConfirmPassword: "secret2",
	})
	if !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists for duplicate username, got %v", err)
	}

	_, err = svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice2", Email: "a@x.com", Password: "secret2", ConfirmPassword: "secret2",
	})
	if !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists for duplicate email, got %v", err)
	}
	if len(repo.admins) != 1 {
		t.Fatalf("expected no identity mutated on duplicate, have %d", len(repo.admins))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()
	register(t, svc, "alice", "a@x.com", "secret1")

	tok, admin, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}
	if admin == nil || admin.Username != "alice" {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	claims, err := token.NewCodec("test-secret", time.Hour).Decode(tok)
	if err != nil {
		t.Fatalf("issued token did not decode: %v", err)
	}
	if claims.Username != "alice" || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_FailuresIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()
	register(t, svc, "alice", "a@x.com", "secret1")

	_, _, wrongPass := svc.Login(context.Background(), "alice", "wrong")
	_, _, unknownUser := svc.Login(context.Background(), "ghost", "wrong")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc, _, sender := newTestAuthService()

	err := svc.ForgotPassword(context.Background(), "ghost@x.com")
	if !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	if len(sender.codes) != 0 {
		t.Fatalf("expected no code issued for unknown email")
	}
}

func TestAuthService_RecoveryFlow(t *testing.T) {
	svc, _, sender := newTestAuthService()
	ctx := context.Background()
	register(t, svc, "alice", "a@x.com", "secret1")

	if err := svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("forgot-password failed: %v", err)
	}
	if len(sender.codes) != 1 {
		t.Fatalf("expected one delivered code, got %d", len(sender.codes))
	}
	code := sender.codes[0]

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := svc.VerifyOTP(ctx, "a@x.com", wrong); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}

	identity, err := svc.VerifyOTP(ctx, "a@x.com", code)
	if err != nil {
		t.Fatalf("verify-otp failed: %v", err)
	}
	if identity.Username != "alice" || identity.Email != "a@x.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	err = svc.RecoverPassword(ctx, ports.RecoverInput{
		Email: "a@x.com", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	if err != nil {
		t.Fatalf("recover-password failed: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice", "newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password to fail, got %v", err)
	}

	// The record was consumed: a second reset needs a fresh request.
	err = svc.RecoverPassword(ctx, ports.RecoverInput{
		Email: "a@x.com", NewPassword: "another1", ConfirmPassword: "another1",
	})
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after consume, got %v", err)
	}
}

func TestAuthService_RecoverPassword_Validation(t *testing.T) {
	svc, _, sender := newTestAuthService()
	ctx := context.Background()
	register(t, svc, "alice", "a@x.com", "secret1")

	if err := svc.ForgotPassword(ctx, "a@x.com"); err != nil {
		t.Fatalf("forgot-password failed: %v", err)
	}

	err := svc.RecoverPassword(ctx, ports.RecoverInput{
		Email: "a@x.com", NewPassword: "newpass1", ConfirmPassword: "different",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	err = svc.RecoverPassword(ctx, ports.RecoverInput{
		Email: "a@x.com", NewPassword: "tiny", ConfirmPassword: "tiny",
	})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	// Failed validation must not consume the pending record.
	if _, err := svc.VerifyOTP(ctx, "a@x.com", sender.codes[0]); err != nil {
		t.Fatalf("expected pending record to survive failed validation, got %v", err)
	}
}

func TestAuthService_RecoverPassword_WithoutRequest(t *testing.T) {
	svc, _, _ := newTestAuthService()
	register(t, svc, "alice", "a@x.com", "secret1")

	err := svc.RecoverPassword(context.Background(), ports.RecoverInput{
		Email: "a@x.com", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound without a prior request, got %v", err)
	}
}

type denyThrottle struct{}

func (denyThrottle) Allow(context.Context, string) (bool, error) { return false, nil }

func TestAuthService_ForgotPassword_Throttled(t *testing.T) {
	repo := newStubAdminRepo()
	sender := &captureSender{}
	svc := NewAuthService(
		repo,
		password.New(1000),
		token.NewCodec("test-secret", time.Hour),
		otp.NewMemoryStore(10*time.Minute),
		sender,
		denyThrottle{},
		nil,
		PasswordPolicy{MinLength: 6},
		zerolog.Nop(),
	)
	register(t, svc, "alice", "a@x.com", "secret1")

	err := svc.ForgotPassword(context.Background(), "a@x.com")
	if !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
	if len(sender.codes) != 0 {
		t.Fatalf("expected no code delivered when throttled")
	}
}
