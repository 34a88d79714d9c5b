package handlers

import (
	"net/http"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range h.origins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}

// Events streams project activity to a member. Membership is checked once,
// before the upgrade.
func (h *Handler) Events(c *gin.Context) {
	project, err := h.projectForMember(c)
	if err != nil {
		fail(c, err)
		return
	}
	projectID := project.ID

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("websocket upgrade failed")
		return
	}

	conn.SetReadLimit(events.MaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(events.PongWait)); err != nil {
		log.Warn().Err(err).Msg("failed to set initial read deadline")
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(events.PongWait))
	})

	client := h.hub.Register(projectID, conn)

	defer func() {
		h.hub.Unregister(projectID, client)
		conn.Close()
		log.Debug().Str("project_id", projectID).Msg("websocket connection closed")
	}()

	if err := client.WriteJSON(events.Event{Type: events.TypeConnected, ProjectID: projectID}); err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("failed to send welcome message")
		return
	}

	ticker := time.NewTicker(events.PingPeriod)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					log.Debug().Err(err).Str("project_id", projectID).Msg("ping failed")
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("project_id", projectID).Msg("websocket error")
			}
			break
		}
	}
}
