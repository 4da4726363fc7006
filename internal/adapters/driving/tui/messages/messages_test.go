package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// TestReplyReceived tests the ReplyReceived message type
func TestReplyReceived(t *testing.T) {
	t.Run("with reply text", func(t *testing.T) {
		msg := ReplyReceived{Reply: "What is the issue about?"}
		assert.Equal(t, "What is the issue about?", msg.Reply)
	})

	t.Run("with empty reply", func(t *testing.T) {
		msg := ReplyReceived{Reply: ""}
		assert.Equal(t, "", msg.Reply)
	})
}

// TestNoticeReceived tests the NoticeReceived message type
func TestNoticeReceived(t *testing.T) {
	msg := NoticeReceived{Text: "Complaint cmp-1 assigned to truck-3"}
	assert.Equal(t, "Complaint cmp-1 assigned to truck-3", msg.Text)
}

// TestComplaintsLoaded tests the ComplaintsLoaded message type
func TestComplaintsLoaded_WithComplaints(t *testing.T) {
	complaints := []domain.Complaint{
		{ID: "cmp-1", Title: "Overflowing bin", Priority: domain.PriorityHigh},
		{ID: "cmp-2", Title: "Pothole", Priority: domain.PriorityLow},
	}
	msg := ComplaintsLoaded{Complaints: complaints, Err: nil}

	require.Len(t, msg.Complaints, 2)
	assert.Equal(t, "cmp-1", msg.Complaints[0].ID)
	assert.NoError(t, msg.Err)
}

func TestComplaintsLoaded_WithError(t *testing.T) {
	err := errors.New("backend unreachable")
	msg := ComplaintsLoaded{Complaints: nil, Err: err}

	assert.Nil(t, msg.Complaints)
	assert.Error(t, msg.Err)
	assert.Equal(t, "backend unreachable", msg.Err.Error())
}

func TestComplaintsLoaded_Empty(t *testing.T) {
	msg := ComplaintsLoaded{Complaints: []domain.Complaint{}, Err: nil}

	assert.NotNil(t, msg.Complaints)
	assert.Empty(t, msg.Complaints)
	assert.NoError(t, msg.Err)
}

// TestStatusChanged tests the StatusChanged message type
func TestStatusChanged(t *testing.T) {
	t.Run("successful transition", func(t *testing.T) {
		msg := StatusChanged{
			ID:     "cmp-1",
			Status: domain.StatusAssigned,
			Complaints: []domain.Complaint{
				{ID: "cmp-1", Status: domain.StatusAssigned},
			},
			Err: nil,
		}

		assert.Equal(t, "cmp-1", msg.ID)
		assert.Equal(t, domain.StatusAssigned, msg.Status)
		require.Len(t, msg.Complaints, 1)
		assert.NoError(t, msg.Err)
	})

	t.Run("failed transition still carries refreshed list", func(t *testing.T) {
		err := errors.New("update rejected")
		msg := StatusChanged{
			ID:         "cmp-2",
			Status:     domain.StatusFinished,
			Complaints: []domain.Complaint{{ID: "cmp-2"}},
			Err:        err,
		}

		assert.Error(t, msg.Err)
		assert.Len(t, msg.Complaints, 1)
	})
}

// TestRoutePlanned tests the RoutePlanned message type
func TestRoutePlanned(t *testing.T) {
	t.Run("with steps", func(t *testing.T) {
		steps := []domain.RouteStep{
			{ID: "cmp-1", Title: "Overflowing bin"},
			{ID: "cmp-2", Title: "Pothole"},
		}
		msg := RoutePlanned{Steps: steps, Err: nil}

		require.Len(t, msg.Steps, 2)
		assert.Equal(t, "cmp-1", msg.Steps[0].ID)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		err := errors.New("planner unavailable")
		msg := RoutePlanned{Steps: nil, Err: err}

		assert.Nil(t, msg.Steps)
		assert.Error(t, msg.Err)
	})
}

// TestErrorOccurred tests the ErrorOccurred message type
func TestErrorOccurred(t *testing.T) {
	t.Run("with standard error", func(t *testing.T) {
		err := errors.New("something went wrong")
		msg := ErrorOccurred{Err: err}

		assert.Error(t, msg.Err)
		assert.Equal(t, "something went wrong", msg.Err.Error())
	})

	t.Run("with nil error", func(t *testing.T) {
		msg := ErrorOccurred{Err: nil}
		assert.Nil(t, msg.Err)
	})
}

// TestQuit tests the Quit message type
func TestQuit(t *testing.T) {
	msg := Quit{}
	// Quit is an empty struct, just verify it can be created
	assert.NotNil(t, msg)
}

// TestTick tests the Tick message type
func TestTick(t *testing.T) {
	msg := Tick{}
	assert.NotNil(t, msg)
}
