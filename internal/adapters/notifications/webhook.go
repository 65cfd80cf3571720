// Package notifications delivers best-effort transfer notifications.
// Delivery is decoupled from the transfer's atomicity: it runs after commit,
// never blocks, and its failure never reverses a transfer.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finvolt/banking-core/internal/core/ports/services"
	"github.com/finvolt/banking-core/internal/middleware"
	"github.com/finvolt/banking-core/internal/utils/money"
	"github.com/sony/gobreaker/v2"
)

// WebhookNotifier posts transfer notifications to a configured endpoint.
// A circuit breaker keeps a dead endpoint from accumulating goroutines.
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[struct{}]
}

var _ portssvc.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a notifier for the given endpoint. An empty
// endpoint yields a notifier that only logs.
func NewWebhookNotifier(endpoint string) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:    "transfer-notifier",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

type transferNotification struct {
	UserID        string `json:"userID"`
	Amount        int64  `json:"amount"`
	DisplayAmount string `json:"displayAmount"`
	ToAccountID   string `json:"toAccount"`
	SentAt        string `json:"sentAt"`
}

// NotifyTransferSuccess fires the notification in the background. Failures
// are logged only.
func (n *WebhookNotifier) NotifyTransferSuccess(ctx context.Context, userID string, amount int64, currencyCode, toAccountID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payload := transferNotification{
		UserID:        userID,
		Amount:        amount,
		DisplayAmount: money.FormatMinorUnits(amount, currencyCode),
		ToAccountID:   toAccountID,
		SentAt:        time.Now().UTC().Format(time.RFC3339),
	}

	go func() {
		if n.endpoint == "" {
			logger.Info("Transfer notification (no endpoint configured)",
				slog.String("user_id", userID),
				slog.String("amount", payload.DisplayAmount),
				slog.String("to_account", toAccountID),
			)
			return
		}

		_, err := n.breaker.Execute(func() (struct{}, error) {
			return struct{}{}, n.post(ctx, payload)
		})
		if err != nil {
			logger.Error("Failed to send transfer notification",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (n *WebhookNotifier) post(ctx context.Context, payload transferNotification) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}
