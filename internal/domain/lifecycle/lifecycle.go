// Package lifecycle holds shared constants for service start and stop
// sequencing.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of every delivery.
const DefaultTimeout = 10 * time.Second
