package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subscribe opens a websocket against a test server that registers the
// server side connection with the hub under projectID.
func subscribe(t *testing.T, hub *Hub, projectID string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(projectID, conn)
		close(registered)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not registered")
	}
	return conn
}

func TestHubBroadcastReachesProjectSubscribers(t *testing.T) {
	hub := NewHub()
	alpha := subscribe(t, hub, "alpha")
	beta := subscribe(t, hub, "beta")

	assert.Equal(t, 1, hub.Subscribers("alpha"))
	assert.Equal(t, 1, hub.Subscribers("beta"))

	hub.Broadcast(Event{
		Type:         TypeSubmissionStatus,
		ProjectID:    "alpha",
		SubmissionID: "sub-1",
		Status:       types.StatusApproved,
	})

	require.NoError(t, alpha.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, alpha.ReadJSON(&got))
	assert.Equal(t, TypeSubmissionStatus, got.Type)
	assert.Equal(t, "sub-1", got.SubmissionID)
	assert.Equal(t, types.StatusApproved, got.Status)

	require.NoError(t, beta.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := beta.ReadMessage()
	assert.Error(t, err, "other projects must not receive the event")
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	subscribe(t, hub, "alpha")

	hub.mu.RLock()
	var client *Client
	for c := range hub.projects["alpha"] {
		client = c
	}
	hub.mu.RUnlock()
	require.NotNil(t, client)

	hub.Unregister("alpha", client)
	assert.Equal(t, 0, hub.Subscribers("alpha"))

	hub.mu.RLock()
	_, exists := hub.projects["alpha"]
	hub.mu.RUnlock()
	assert.False(t, exists)

	// Broadcasting to a project without subscribers is a no-op.
	hub.Broadcast(Event{Type: TypeCommentCreated, ProjectID: "alpha"})
}
