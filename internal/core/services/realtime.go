package services

import (
	"context"
	"fmt"

	"github.com/civita-labs/civita-cli/internal/core/domain"
	"github.com/civita-labs/civita-cli/internal/core/ports/driven"
	"github.com/civita-labs/civita-cli/internal/core/ports/driving"
	"github.com/civita-labs/civita-cli/internal/logger"
)

// Ensure RealtimeService implements the interface.
var _ driving.RealtimeReconciler = (*RealtimeService)(nil)

// RealtimeService consumes push events and reconciles a surface. The
// same event vocabulary drives two different reactions: a triage
// binding answers every mutation with a full refresh, a transcript
// binding appends a notification line without touching conversation
// state. Both are idempotent, so duplicated or reordered events are
// harmless.
type RealtimeService struct {
	channel driven.PushChannel

	triage   driving.TriageService
	onList   func([]domain.Complaint, error)
	onNotice func(string)
}

// NewRealtimeService creates a reconciler over the given channel.
// Bind at least one surface before calling Run.
func NewRealtimeService(channel driven.PushChannel) *RealtimeService {
	return &RealtimeService{channel: channel}
}

// BindTriage makes mutation events trigger a full refresh with the
// triage service's last filter. onList receives the refreshed set.
func (s *RealtimeService) BindTriage(
	triage driving.TriageService, onList func([]domain.Complaint, error),
) {
	s.triage = triage
	s.onList = onList
}

// BindTranscript makes events append a notification line via onNotice.
func (s *RealtimeService) BindTranscript(onNotice func(string)) {
	s.onNotice = onNotice
}

// Run consumes events until the context is cancelled or the channel
// closes. The connection lifecycle belongs to the channel adapter;
// this loop only reacts to what arrives.
func (s *RealtimeService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-s.channel.Events():
			if !ok {
				logger.Info("realtime: push channel closed")
				return
			}
			s.handle(ctx, e)
		}
	}
}

// handle dispatches one event to the bound surfaces.
func (s *RealtimeService) handle(ctx context.Context, e domain.Event) {
	logger.Debug("realtime: %s event", e.Kind)

	if s.onNotice != nil {
		if notice := NoticeForEvent(e); notice != "" {
			s.onNotice(notice)
		}
	}

	if s.triage == nil {
		return
	}
	switch e.Kind {
	case domain.EventNewComplaint, domain.EventStatusUpdate:
		cs, err := s.triage.RefreshLast(ctx)
		if s.onList != nil {
			s.onList(cs, err)
		}
	}
}

// NoticeForEvent renders the transcript line for a push event. Events
// that carry nothing worth telling the citizen yield an empty string.
func NoticeForEvent(e domain.Event) string {
	switch e.Kind {
	case domain.EventConnected:
		return "Connected to live updates."
	case domain.EventNewComplaint:
		if e.Complaint == nil {
			return ""
		}
		return fmt.Sprintf("New complaint added: %s", e.Complaint.Title)
	case domain.EventStatusUpdate:
		if e.Complaint == nil {
			return ""
		}
		return fmt.Sprintf("Status update: %s → %s", e.Complaint.Title, e.Complaint.Status)
	default:
		return ""
	}
}
