package handlers

import (
	"net/http"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/events"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/utils"
	"github.com/gin-gonic/gin"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) CreateComment(ctx *gin.Context) {
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

	if err := h.rules.CanComment(identity); err != nil {
		fail(ctx, err)
		return
	}

	var body CommentRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	submission, err := h.rules.CommentTarget(ctx.Request.Context(), identity, submissionID)
	if err != nil {
		fail(ctx, err)
		return
	}

	comment := models.Comment{
		SubmissionID: submission.ID,
		UserID:       &identity.UserID,
		Content:      body.Content,
	}

	if err := h.store.CreateComment(ctx.Request.Context(), &comment); err != nil {
		fail(ctx, err)
		return
	}

	h.hub.Broadcast(events.Event{
		Type:         events.TypeCommentCreated,
		ProjectID:    submission.ProjectID,
		SubmissionID: submission.ID,
		CommentID:    comment.ID,
	})

	ctx.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(ctx *gin.Context) {
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

	comments, err := h.store.ListCommentsBySubmission(ctx.Request.Context(), submission.ID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, comments)
}

// UpdateComment lets any reviewer in the project edit any comment.
func (h *Handler) UpdateComment(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	commentID, err := utils.Param(ctx, "comment_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := h.rules.CanComment(identity); err != nil {
		fail(ctx, err)
		return
	}

	var body CommentRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	comment, submission, err := h.rules.CommentForModeration(ctx.Request.Context(), identity, commentID)
	if err != nil {
		fail(ctx, err)
		return
	}

	updated, err := h.store.UpdateComment(ctx.Request.Context(), comment.ID, body.Content)
	if err != nil {
		fail(ctx, err)
		return
	}

	h.hub.Broadcast(events.Event{
		Type:         events.TypeCommentUpdated,
		ProjectID:    submission.ProjectID,
		SubmissionID: submission.ID,
		CommentID:    updated.ID,
	})

	ctx.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteComment(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	commentID, err := utils.Param(ctx, "comment_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	comment, submission, err := h.rules.CommentForModeration(ctx.Request.Context(), identity, commentID)
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := h.store.DeleteComment(ctx.Request.Context(), comment.ID); err != nil {
		fail(ctx, err)
		return
	}

	h.hub.Broadcast(events.Event{
		Type:         events.TypeCommentDeleted,
		ProjectID:    submission.ProjectID,
		SubmissionID: submission.ID,
		CommentID:    comment.ID,
	})

	ctx.Status(http.StatusNoContent)
}
