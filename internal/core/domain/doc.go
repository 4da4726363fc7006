// Package domain defines the core business entities for Civita.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Complaint: A durable complaint record projected from the backend
//   - ComplaintDraft: A transient record under construction during intake
//   - ConversationState: One chat session's progress through intake
//   - RouteStep: One stop of a computed dispatch route
//   - Event: A realtime mutation notice from the push channel
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
