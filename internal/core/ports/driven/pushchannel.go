package driven

import "github.com/civita-labs/civita-cli/internal/core/domain"

// PushChannel delivers realtime mutation events from the backend.
//
// Connection lifecycle (connect, reconnect, backoff) is entirely the
// implementation's responsibility. Consumers see only the event stream
// and must assume at-least-once delivery, unordered relative to REST
// responses: duplicates and reordering are tolerated because consumers
// react with idempotent full refreshes.
type PushChannel interface {
	// Events returns the stream of push events. The channel is closed
	// when the push channel shuts down for good.
	Events() <-chan domain.Event

	// Close tears down the connection and closes the event stream.
	Close() error
}
