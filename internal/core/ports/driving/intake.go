package driving

import "context"

// IntakeService runs the conversational complaint intake flow.
type IntakeService interface {
	// Converse advances the session's conversation with one utterance
	// and returns exactly one reply. Failures never escape as errors:
	// submission problems, position problems and backend rejections
	// are all folded into the reply text so no turn goes unanswered
	// and the session always returns to a usable state.
	Converse(ctx context.Context, sessionID, text string) string

	// EndSession discards any in-flight draft for the session.
	EndSession(sessionID string)
}
