// Package mail holds the outbound delivery collaborator for recovery codes.
package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender "delivers" a code by logging it. It stands in for a real mail
// integration and is the production default, matching the legacy system's
// console delivery.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, email, code string) error {
	s.log.Info().Str("email", email).Str("code", code).Msg("otp issued")
	return nil
}
