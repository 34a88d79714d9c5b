package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu     sync.Mutex
	bodies map[string][]byte
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *capture) {
	t.Helper()

	c := &capture{bodies: make(map[string][]byte)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)

		c.mu.Lock()
		c.bodies[r.URL.Path] = raw
		c.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server, c
}

func fixedNotifier(client *http.Client) *Notifier {
	n := NewNotifier(client)
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return n
}

func TestSendStatusChangedNotification(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusNoContent)

	project := models.Project{
		Name:           "Review Platform",
		DiscordWebhook: server.URL + "/discord",
		SlackWebhook:   server.URL + "/slack",
	}
	submission := models.Submission{Title: "Add login", Status: types.StatusApproved}

	err := fixedNotifier(server.Client()).SendStatusChangedNotification(context.Background(), project, submission, types.StatusInReview)
	require.NoError(t, err)

	var discord DiscordWebhookRequest
	require.NoError(t, json.Unmarshal(captured.bodies["/discord"], &discord))
	require.Len(t, discord.Embeds, 1)
	assert.Equal(t, ColorGreen, discord.Embeds[0].Color)
	assert.Equal(t, "Project: Review Platform", discord.Embeds[0].Footer.Text)
	assert.Equal(t, "2026-01-02T03:04:05Z", discord.Embeds[0].Timestamp)

	var slack SlackWebhookRequest
	require.NoError(t, json.Unmarshal(captured.bodies["/slack"], &slack))
	require.Len(t, slack.Attachments, 1)
	assert.Equal(t, "good", slack.Attachments[0].Color)
	assert.Equal(t, "Status moved from in_review to approved.", slack.Attachments[0].Text)
}

func TestSendStatusChangedNotificationWithoutWebhooks(t *testing.T) {
	err := NewNotifier(nil).SendStatusChangedNotification(context.Background(), models.Project{}, models.Submission{}, types.StatusPending)
	assert.NoError(t, err)
}

func TestSendStatusChangedNotificationReportsFailures(t *testing.T) {
	server, _ := newCaptureServer(t, http.StatusInternalServerError)

	project := models.Project{SlackWebhook: server.URL + "/slack"}
	submission := models.Submission{Status: types.StatusChangesRequested}

	err := NewNotifier(server.Client()).SendStatusChangedNotification(context.Background(), project, submission, types.StatusPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slack: webhook returned status 500")
}

func TestStatusColor(t *testing.T) {
	color, slack := statusColor(types.StatusChangesRequested)
	assert.Equal(t, ColorOrange, color)
	assert.Equal(t, "warning", slack)

	color, _ = statusColor(types.StatusPending)
	assert.Equal(t, ColorBlue, color)
}

func TestSendStatusChangedNotificationTriesEveryWebhook(t *testing.T) {
	failing, _ := newCaptureServer(t, http.StatusBadGateway)
	working, captured := newCaptureServer(t, http.StatusOK)

	project := models.Project{
		DiscordWebhook: failing.URL + "/discord",
		SlackWebhook:   working.URL + "/slack",
	}
	submission := models.Submission{Title: "Add login", Status: types.StatusInReview}

	err := NewNotifier(nil).SendStatusChangedNotification(context.Background(), project, submission, types.StatusPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord: webhook returned status 502")
	assert.NotContains(t, err.Error(), "slack")

	captured.mu.Lock()
	defer captured.mu.Unlock()
	assert.Contains(t, captured.bodies, "/slack")
}
