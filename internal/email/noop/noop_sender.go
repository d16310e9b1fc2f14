package noop

import (
	"context"
	"log"

	"invoscan/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending,
// for local development without AWS credentials.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExport(_ context.Context, toEmail, subject, textBody string) error {
	log.Printf("[NOOP EMAIL] To %s: %s\n%s", toEmail, subject, textBody)
	return nil
}
