package service

import "context"

// NotificationService defines the interface for SMS dispatch to supply-chain
// actors. The running service backs this with a mock provider. A failed
// notification must never affect ledger state.
type NotificationService interface {
	// Send dispatches a message to a phone number. Implementations may
	// queue the message for retry when the provider is unreachable, in
	// which case the returned receipt reports Queued.
	Send(ctx context.Context, phone, message string) (*DeliveryReceipt, error)
}

// DeliveryReceipt reports the outcome of a single dispatch attempt.
type DeliveryReceipt struct {
	Provider  string `json:"provider"`
	MessageID string `json:"messageId,omitempty"`
	Delivered bool   `json:"delivered"`
	Queued    bool   `json:"queued"`
}
