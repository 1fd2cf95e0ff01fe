package ports

import "context"

// OTPStore holds pending password-recovery requests keyed by email. At most
// one record is live per email: a new Request overwrites the previous one.
type OTPStore interface {
	// Request creates or overwrites the pending record for email and returns
	// the generated code so it can be delivered out-of-band.
	Request(ctx context.Context, email string, identity Identity) (string, error)
	// Verify checks the submitted code against the pending record. A wrong
	// guess leaves the record intact; an expired record is deleted.
	Verify(ctx context.Context, email, code string) (Identity, error)
	// Pending reports the identity of a live record without checking a code.
	// Used to gate the final password-reset step on a prior request.
	Pending(ctx context.Context, email string) (Identity, error)
	// Consume deletes the record. Called once the digest update succeeded.
	Consume(ctx context.Context, email string) error
}

// OTPSender delivers a one-time code to the account holder. Delivery failure
// must not invalidate a code that is already stored.
type OTPSender interface {
	Send(ctx context.Context, email, code string) error
}
