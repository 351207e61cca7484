package mailer

import "context"

// Mailer delivers transactional mail. Delivery is a collaborator: the app
// only depends on this interface and treats failures as terminal for the
// current request.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}
