package handlers

import (
	"net/http"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateProjectRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    *string `json:"description"`
	SlackWebhook   string  `json:"slack_webhook" binding:"omitempty,http_url"`
	DiscordWebhook string  `json:"discord_webhook" binding:"omitempty,http_url"`
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	projects, err := h.store.ListProjects(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := h.rules.CanCreateProject(identity); err != nil {
		fail(ctx, err)
		return
	}

	var body CreateProjectRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	if body.SlackWebhook != "" || body.DiscordWebhook != "" {
		if err := h.rules.CanConfigureWebhooks(identity); err != nil {
			fail(ctx, err)
			return
		}
	}

	project := models.Project{
		Name:           strings.TrimSpace(body.Name),
		Description:    body.Description,
		CreatedBy:      &identity.UserID,
		SlackWebhook:   body.SlackWebhook,
		DiscordWebhook: body.DiscordWebhook,
	}

	if err := h.store.CreateProject(ctx.Request.Context(), &project); err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// projectForMember resolves the :project_id project for a member.
func (h *Handler) projectForMember(ctx *gin.Context) (*models.Project, error) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	projectID, err := utils.Param(ctx, "project_id")
	if err != nil {
		return nil, err
	}

	return h.rules.ProjectForMember(ctx.Request.Context(), identity, projectID)
}

func (h *Handler) GetProject(ctx *gin.Context) {
	project, err := h.projectForMember(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) ListMembers(ctx *gin.Context) {
	project, err := h.projectForMember(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	members, err := h.store.ListMembers(ctx.Request.Context(), project.ID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// AddMember is idempotent: adding an existing member returns the existing
// row.
func (h *Handler) AddMember(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	projectID, err := utils.Param(ctx, "project_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	var body AddMemberRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	project, user, err := h.rules.MemberToAdd(ctx.Request.Context(), identity, projectID, strings.TrimSpace(body.UserID))
	if err != nil {
		fail(ctx, err)
		return
	}

	member, err := h.store.AddMember(ctx.Request.Context(), project.ID, user.ID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// RemoveMember succeeds whether or not the pair was a member. The project
// creator keeps access through the creator fallback.
func (h *Handler) RemoveMember(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	projectID, err := utils.Param(ctx, "project_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	userID, err := utils.Param(ctx, "user_id")
	if err != nil {
		fail(ctx, err)
		return
	}

	project, err := h.rules.ProjectForMembership(ctx.Request.Context(), identity, projectID)
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := h.store.RemoveMember(ctx.Request.Context(), project.ID, userID); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *Handler) ListProjectSubmissions(ctx *gin.Context) {
	project, err := h.projectForMember(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	submissions, err := h.store.ListSubmissionsByProject(ctx.Request.Context(), project.ID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}
