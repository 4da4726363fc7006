package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
	"github.com/civita-labs/civita-cli/internal/logger"
)

// Ensure IntakeService implements the interface.
var _ driving.IntakeService = (*IntakeService)(nil)

// DefaultPositionTimeout bounds the geolocation attempt on submission.
// A slow or absent position source must never hold the submission up
// for long; past the deadline the {0,0} placeholder is used.
const DefaultPositionTimeout = 5 * time.Second

// IntakeService is the conversational intake engine. It holds one
// ConversationState slot per session, keyed by a caller-supplied
// session identifier, and advances a session one utterance at a time.
//
// The state map is owned exclusively by this service. Each session is
// expected to speak from a single goroutine; the mutex only protects
// the map against sessions on different surfaces.
type IntakeService struct {
	repo driven.ComplaintRepository
	geo  driven.Geolocator // optional, nil means no position source

	positionTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*domain.ConversationState
}

// NewIntakeService creates the intake engine. geo may be nil, in which
// case every submission carries the placeholder location.
func NewIntakeService(repo driven.ComplaintRepository, geo driven.Geolocator) *IntakeService {
	return &IntakeService{
		repo:            repo,
		geo:             geo,
		positionTimeout: DefaultPositionTimeout,
		sessions:        make(map[string]*domain.ConversationState),
	}
}

// SetPositionTimeout overrides the geolocation deadline. Used in tests.
func (s *IntakeService) SetPositionTimeout(d time.Duration) {
	s.positionTimeout = d
}

// Converse advances the session with one utterance and returns the
// reply. Blank input is not a turn and yields an empty reply; every
// actual turn is answered. See the driving port for the full contract.
func (s *IntakeService) Converse(ctx context.Context, sessionID, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	s.mu.Lock()
	state := s.sessions[sessionID]
	if state == nil {
		state = &domain.ConversationState{Stage: domain.StageIdle}
		s.sessions[sessionID] = state
	}

	// A report trigger restarts the flow from any stage, silently
	// overwriting whatever draft was in flight.
	if domain.IsReportTrigger(text) {
		state.Draft = domain.ComplaintDraft{}
		state.Stage = domain.StageAwaitTitle
		s.mu.Unlock()
		return "I can file a complaint for you. What's the title?"
	}

	switch state.Stage {
	case domain.StageAwaitTitle:
		state.Draft.Title = text
		state.Stage = domain.StageAwaitDesc
		s.mu.Unlock()
		return "Got it. Describe the issue in a sentence."

	case domain.StageAwaitDesc:
		state.Draft.Description = text
		state.Stage = domain.StageAwaitPriority
		s.mu.Unlock()
		return "Priority? (low / medium / high)."

	case domain.StageAwaitPriority:
		state.Draft.Priority = domain.ClassifyPriority(text)
		state.Stage = domain.StageAwaitReporter
		s.mu.Unlock()
		return "If you want, provide your name. Or type 'skip'."

	case domain.StageAwaitReporter:
		if !domain.IsSkip(text) {
			state.Draft.Reporter = text
		}
		state.Stage = domain.StageConfirm
		title, priority := state.Draft.Title, state.Draft.Priority
		s.mu.Unlock()
		return fmt.Sprintf(
			"I'll submit: [%s] (%s). Say \"yes\" to submit or \"no\" to cancel.",
			title, priority,
		)

	case domain.StageConfirm:
		// Exiting confirm always clears the draft, whatever happens
		// next: a failed submission must not strand the session.
		draft := state.Draft
		affirmative := domain.IsAffirmative(text)
		state.Draft = domain.ComplaintDraft{}
		state.Stage = domain.StageIdle
		s.mu.Unlock()

		if !affirmative {
			return "Okay, canceled."
		}
		return s.submit(ctx, draft)

	default:
		s.mu.Unlock()
		return "I can help file complaints quickly. Just type 'report' to start."
	}
}

// EndSession discards the session's conversation state.
func (s *IntakeService) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Stage returns the session's current stage. Sessions that have never
// spoken are idle.
func (s *IntakeService) Stage(sessionID string) domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state := s.sessions[sessionID]; state != nil {
		return state.Stage
	}
	return domain.StageIdle
}

// submit attaches the current position and files the draft. Exactly
// one create request is issued per affirmative confirmation, and the
// outcome is folded into the reply.
func (s *IntakeService) submit(ctx context.Context, draft domain.ComplaintDraft) string {
	draft = draft.WithDefaults()
	draft.Location = s.currentPosition(ctx)

	c, err := s.repo.Create(ctx, draft)
	switch {
	case errors.Is(err, domain.ErrBackendRejected):
		return "Sorry, failed to submit."
	case err != nil:
		logger.Warn("intake: submission failed: %v", err)
		return "Network error while submitting."
	}
	return "Submitted. Thank you! Your complaint ID: " + c.ID
}

// currentPosition makes a bounded attempt at geolocation. Failure is
// never fatal: denial, timeout, or an absent source all collapse to
// the {0,0} placeholder and the submission proceeds.
func (s *IntakeService) currentPosition(ctx context.Context) domain.Location {
	if s.geo == nil {
		return domain.Location{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.positionTimeout)
	defer cancel()

	loc, err := s.geo.CurrentPosition(ctx)
	if err != nil {
		logger.Debug("intake: no position, submitting without one: %v", err)
		return domain.Location{}
	}
	return loc
}
