package port

import "context"

// EmailSender defines the contract for delivering export emails.
type EmailSender interface {
	SendExport(ctx context.Context, toEmail, subject, textBody string) error
}
