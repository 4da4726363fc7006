package driving

import "context"

// RealtimeReconciler consumes push events and keeps a surface current.
// The triage surface reacts with full refreshes; the intake surface
// appends transcript notices. Both reactions are idempotent, which is
// what makes at-least-once, unordered delivery safe to consume.
type RealtimeReconciler interface {
	// Run consumes events until the context is cancelled or the
	// channel closes. It never returns a transport error: a closed
	// channel simply ends the loop.
	Run(ctx context.Context)
}
