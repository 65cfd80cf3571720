package services

import "context"

// Notifier delivers best-effort notifications after a transfer commits.
// Delivery is fire-and-forget: failures are logged by the implementation and
// never affect the transfer's outcome.
type Notifier interface {
	NotifyTransferSuccess(ctx context.Context, userID string, amount int64, currencyCode, toAccountID string)
}
