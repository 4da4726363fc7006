package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/civita-cli/internal/core/domain"
)

// eventServer upgrades incoming connections and writes the given
// frames to each client before holding the connection open.
func eventServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		// Hold the connection until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDialAndReceiveEvents(t *testing.T) {
	srv := eventServer(t, []string{
		`{"event": "connected"}`,
		`{"event": "new_complaint", "complaint": {"_id": "a1", "title": "Dump site", "status": "new"}}`,
		`{"event": "status_update", "complaint": {"_id": "a1", "title": "Dump site", "status": "assigned"}}`,
	})
	defer srv.Close()

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer ch.Close()

	var got []domain.Event
	timeout := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case e := <-ch.Events():
			got = append(got, e)
		case <-timeout:
			t.Fatalf("timed out after %d events", len(got))
		}
	}

	assert.Equal(t, domain.EventConnected, got[0].Kind)
	assert.Equal(t, domain.EventNewComplaint, got[1].Kind)
	require.NotNil(t, got[1].Complaint)
	assert.Equal(t, "Dump site", got[1].Complaint.Title)
	assert.Equal(t, domain.EventStatusUpdate, got[2].Kind)
	assert.Equal(t, domain.StatusAssigned, got[2].Complaint.Status)
}

func TestUnparseableFramesAreDropped(t *testing.T) {
	srv := eventServer(t, []string{
		`this is not json`,
		`{"event": "new_complaint", "complaint": {"_id": "a1", "title": "ok", "status": "new"}}`,
	})
	defer srv.Close()

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)
	defer ch.Close()

	select {
	case e := <-ch.Events():
		// The bad frame is skipped, the good one still arrives.
		assert.Equal(t, domain.EventNewComplaint, e.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := Dial(context.Background(), wsURL(srv))

	assert.Error(t, err)
}

func TestCloseEndsEventStream(t *testing.T) {
	srv := eventServer(t, nil)
	defer srv.Close()

	ch, err := Dial(context.Background(), wsURL(srv))
	require.NoError(t, err)

	require.NoError(t, ch.Close())
	// Close is idempotent.
	require.NoError(t, ch.Close())

	select {
	case _, ok := <-ch.Events():
		assert.False(t, ok, "event stream should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("event stream not closed after Close")
	}
}
