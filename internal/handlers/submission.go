package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/events"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CreateSubmissionRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

// UpdateStatusRequest leaves status unvalidated at bind time; the status
// guard reports a missing or unknown value.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) CreateSubmission(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	var body CreateSubmissionRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	project, err := h.rules.ProjectForMember(ctx.Request.Context(), identity, strings.TrimSpace(body.ProjectID))
	if err != nil {
		fail(ctx, err)
		return
	}

	submission := models.Submission{
		ProjectID:   project.ID,
		SubmittedBy: &identity.UserID,
		Title:       body.Title,
		Content:     body.Content,
		Status:      types.StatusPending,
	}

	if err := h.store.CreateSubmission(ctx.Request.Context(), &submission); err != nil {
		fail(ctx, err)
		return
	}

	h.hub.Broadcast(events.Event{
		Type:         events.TypeSubmissionCreated,
		ProjectID:    submission.ProjectID,
		SubmissionID: submission.ID,
		Status:       submission.Status,
	})

	ctx.JSON(http.StatusCreated, submission)
}

func (h *Handler) GetSubmission(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	submissionID, err := utils.Param(ctx, "submission_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	submission, err := h.rules.SubmissionForMember(ctx.Request.Context(), identity, submissionID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, submission)
}

// UpdateSubmissionStatus accepts any valid status regardless of the current
// one.
func (h *Handler) UpdateSubmissionStatus(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	submissionID, err := utils.Param(ctx, "submission_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	var body UpdateStatusRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	submission, status, err := h.rules.StatusChange(ctx.Request.Context(), identity, submissionID, body.Status)
	if err != nil {
		fail(ctx, err)
		return
	}

	previous := submission.Status

	updated, err := h.store.UpdateSubmissionStatus(ctx.Request.Context(), submission.ID, status)
	if err != nil {
		fail(ctx, err)
		return
	}

	h.hub.Broadcast(events.Event{
		Type:         events.TypeSubmissionStatus,
		ProjectID:    updated.ProjectID,
		SubmissionID: updated.ID,
		Status:       updated.Status,
	})
	h.notifyStatusChanged(ctx.Request.Context(), *updated, previous)

	ctx.JSON(http.StatusOK, updated)
}

// notifyStatusChanged posts to the project's webhooks in the background.
// Failures are logged and never retried.
func (h *Handler) notifyStatusChanged(ctx context.Context, submission models.Submission, previous types.SubmissionStatus) {
	if h.notifier == nil {
		return
	}

	project, err := h.store.GetProject(ctx, submission.ProjectID)
	if err != nil {
		log.Warn().Err(err).Str("project_id", submission.ProjectID).Msg("skipping status notification")
		return
	}

	if project.SlackWebhook == "" && project.DiscordWebhook == "" {
		return
	}

	go func() {
		err := h.notifier.SendStatusChangedNotification(context.WithoutCancel(ctx), *project, submission, previous)
		if err != nil {
			log.Error().Err(err).Str("submission_id", submission.ID).Msg("failed to send status notification")
		}
	}()
}

func (h *Handler) DeleteSubmission(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	submissionID, err := utils.Param(ctx, "submission_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	submission, err := h.rules.SubmissionForReviewer(ctx.Request.Context(), identity, submissionID)
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := h.store.DeleteSubmission(ctx.Request.Context(), submission.ID); err != nil {
		fail(ctx, err)
		return
	}

	h.hub.Broadcast(events.Event{
		Type:         events.TypeSubmissionDeleted,
		ProjectID:    submission.ProjectID,
		SubmissionID: submission.ID,
	})

	ctx.Status(http.StatusNoContent)
}
