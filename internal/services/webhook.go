package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorGreen  = 65280    // #00FF00 - approved
	ColorOrange = 16753920 // #FFA500 - changes requested
	ColorBlue   = 3447003  // #3498DB - anything else

	Username = "Code Review"
)

// Notifier posts submission status changes to the project's chat webhooks.
type Notifier struct {
	client *http.Client
	now    func() time.Time
}

func NewNotifier(client *http.Client) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Notifier{client: client, now: time.Now}
}

// SendStatusChangedNotification posts to every webhook configured on the
// project, even when an earlier one fails. Projects without webhooks are a
// no-op.
func (n *Notifier) SendStatusChangedNotification(ctx context.Context, project models.Project, submission models.Submission, previous types.SubmissionStatus) error {
	var failures []error

	if project.DiscordWebhook != "" {
		if err := n.send(ctx, project.DiscordWebhook, discordStatusChanged(project, submission, previous, n.now())); err != nil {
			failures = append(failures, fmt.Errorf("discord: %w", err))
		}
	}

	if project.SlackWebhook != "" {
		if err := n.send(ctx, project.SlackWebhook, slackStatusChanged(project, submission, previous, n.now())); err != nil {
			failures = append(failures, fmt.Errorf("slack: %w", err))
		}
	}

	return errors.Join(failures...)
}

func statusColor(status types.SubmissionStatus) (int, string) {
	switch status {
	case types.StatusApproved:
		return ColorGreen, "good"
	case types.StatusChangesRequested:
		return ColorOrange, "warning"
	default:
		return ColorBlue, "#3498DB"
	}
}

func discordStatusChanged(project models.Project, submission models.Submission, previous types.SubmissionStatus, now time.Time) DiscordWebhookRequest {
	color, _ := statusColor(submission.Status)

	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "📝 **SUBMISSION STATUS CHANGED**",
				Description: fmt.Sprintf("**%s** is now **%s**.", submission.Title, submission.Status),
				Color:       color,
				Fields: []DiscordWebhookField{
					{Name: "📄 Submission", Value: submission.Title, Inline: true},
					{Name: "⬅️ Previous", Value: string(previous), Inline: true},
					{Name: "➡️ Current", Value: "**" + string(submission.Status) + "**", Inline: true},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Project: %s", project.Name),
				},
				Timestamp: now.Format(time.RFC3339),
			},
		},
	}
}

func slackStatusChanged(project models.Project, submission models.Submission, previous types.SubmissionStatus, now time.Time) SlackWebhookRequest {
	_, color := statusColor(submission.Status)

	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":memo:",
		Text:      ":memo: *SUBMISSION STATUS CHANGED*",
		Attachments: []SlackAttachment{
			{
				Color: color,
				Title: fmt.Sprintf("Submission '%s' is now %s", submission.Title, submission.Status),
				Text:  fmt.Sprintf("Status moved from %s to %s.", previous, submission.Status),
				Fields: []SlackField{
					{Title: "Submission", Value: submission.Title, Short: true},
					{Title: "Status", Value: string(submission.Status), Short: true},
					{Title: "Previous", Value: string(previous), Short: true},
				},
				Footer:    fmt.Sprintf("Project: %s", project.Name),
				Timestamp: now.Unix(),
			},
		},
	}
}

func (n *Notifier) send(ctx context.Context, webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
