// Package events fans project activity out to websocket subscribers.
// Subscription is authorized once, when the connection is opened.
package events

import (
	"sync"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512
)

const (
	TypeConnected         = "connected"
	TypeSubmissionCreated = "submission.created"
	TypeSubmissionStatus  = "submission.status_changed"
	TypeSubmissionDeleted = "submission.deleted"
	TypeCommentCreated    = "comment.created"
	TypeCommentUpdated    = "comment.updated"
	TypeCommentDeleted    = "comment.deleted"
)

type Event struct {
	Type         string                 `json:"type"`
	ProjectID    string                 `json:"project_id"`
	SubmissionID string                 `json:"submission_id,omitempty"`
	CommentID    string                 `json:"comment_id,omitempty"`
	Status       types.SubmissionStatus `json:"status,omitempty"`
}

// Client serializes writes to one connection; gorilla/websocket allows a
// single concurrent writer.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *Client) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(WriteWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

type Hub struct {
	mu       sync.RWMutex
	projects map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{projects: make(map[string]map[*Client]bool)}
}

func (h *Hub) Register(projectID string, conn *websocket.Conn) *Client {
	client := &Client{conn: conn}

	h.mu.Lock()
	if h.projects[projectID] == nil {
		h.projects[projectID] = make(map[*Client]bool)
	}
	h.projects[projectID][client] = true
	h.mu.Unlock()

	return client
}

func (h *Hub) Unregister(projectID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.projects[projectID]; exists {
		delete(clients, client)

		if len(clients) == 0 {
			delete(h.projects, projectID)
		}
	}
}

// Subscribers returns the number of open connections for a project.
func (h *Hub) Subscribers(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.projects[projectID])
}

// Broadcast sends the event to every subscriber of its project. Clients that
// fail to receive it are dropped.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.projects[event.ProjectID]))
	for client := range h.projects[event.ProjectID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteJSON(event); err != nil {
			log.Warn().Err(err).Str("project_id", event.ProjectID).Msg("failed to broadcast event")
			h.Unregister(event.ProjectID, client)
			client.conn.Close()
		}
	}
}
