package domain

import "strings"

// Stage identifies where a chat session is in the intake flow.
type Stage string

const (
	// StageIdle means no report is in flight.
	StageIdle Stage = "idle"

	// StageAwaitTitle means the engine asked for the complaint title.
	StageAwaitTitle Stage = "await_title"

	// StageAwaitDesc means the engine asked for a description.
	StageAwaitDesc Stage = "await_desc"

	// StageAwaitPriority means the engine asked for a priority.
	StageAwaitPriority Stage = "await_priority"

	// StageAwaitReporter means the engine asked for the reporter's name.
	StageAwaitReporter Stage = "await_reporter"

	// StageConfirm means the engine is waiting for a yes/no answer.
	StageConfirm Stage = "confirm"
)

// ConversationState holds one chat session's progress through intake.
// At most one draft is in flight per session; a new report trigger
// arriving mid-conversation resets the slot and starts over.
type ConversationState struct {
	// Stage is the current position in the intake flow.
	Stage Stage

	// Draft accumulates the complaint fields collected so far.
	Draft ComplaintDraft
}

// reportTriggers are the substrings that start an intake flow from idle.
var reportTriggers = []string{"report", "complaint", "dump", "bin"}

// IsReportTrigger reports whether the utterance should start a new
// intake flow. Matching is case-insensitive substring containment.
func IsReportTrigger(text string) bool {
	low := strings.ToLower(text)
	for _, t := range reportTriggers {
		if strings.Contains(low, t) {
			return true
		}
	}
	return false
}

// ClassifyPriority scans an utterance for a priority keyword.
//
// Precedence: the keyword whose first occurrence appears earliest in the
// text wins; "high" beats "medium" beats "low" only on an exact index
// tie, which cannot occur for distinct keywords. Matching is
// case-sensitive and no keyword at all yields medium, mirroring the
// first-match scan the intake flow has always used.
func ClassifyPriority(text string) Priority {
	best := PriorityMedium
	bestIdx := -1
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		idx := strings.Index(text, string(p))
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			best = p
			bestIdx = idx
		}
	}
	return best
}

// IsAffirmative reports whether a confirmation reply counts as yes.
// Anything starting with "y" or "Y" is affirmative; everything else,
// including an empty reply, cancels.
func IsAffirmative(text string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "y")
}

// IsSkip reports whether the citizen declined to give a reporter name.
func IsSkip(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "skip")
}
