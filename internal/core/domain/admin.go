package domain

import (
	"errors"
	"time"
)

// Admin models the single kind of authenticated actor in the system: a
// back-office administrator who maintains the plant catalog.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrAdminExists        = errors.New("username or email already exists")
	ErrAdminNotFound      = errors.New("no account found with this email")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password does not meet the minimum length")
	ErrTooManyRequests    = errors.New("too many recovery requests, try again later")
)

// One-time-password recovery errors. ErrOTPNotFound also covers codes that
// have silently aged out of a TTL-based store.
var (
	ErrOTPNotFound = errors.New("otp not found or expired, request a new one")
	ErrOTPExpired  = errors.New("otp has expired, request a new one")
	ErrOTPInvalid  = errors.New("invalid otp")
)
