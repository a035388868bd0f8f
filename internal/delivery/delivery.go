// Package delivery defines the contract shared by all transport entry
// points of the service.
package delivery

import "context"

// Delivery is a serving surface (HTTP server, background worker) whose
// lifetime is driven by the application container.
type Delivery interface {
	// Serve blocks until the delivery stops or ctx is canceled.
	Serve(ctx context.Context) error
}
