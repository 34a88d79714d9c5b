package handlers

import (
	"net/http"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/store"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/utils"
	"github.com/gin-gonic/gin"
)

type UpdateUserRequest struct {
	Name     *string     `json:"name" binding:"omitempty,min=1"`
	Email    *string     `json:"email" binding:"omitempty,email"`
	Password *string     `json:"password" binding:"omitempty,min=8"`
	Role     *types.Role `json:"role" binding:"omitempty,oneof=submitter reviewer"`
}

// profileTarget authorizes access to the profile named in the path.
func (h *Handler) profileTarget(ctx *gin.Context) (string, error) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		return "", err
	}

	userID, err := utils.Param(ctx, "user_id")
	if err != nil {
		return "", err
	}

	if err := h.rules.CanAccessProfile(identity, userID); err != nil {
		return "", err
	}

	return userID, nil
}

func (h *Handler) GetUser(ctx *gin.Context) {
	userID, err := h.profileTarget(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	user, err := h.store.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	userID, err := h.profileTarget(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	var body UpdateUserRequest
	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	var update store.UserUpdate

	if body.Role != nil {
		identity, _ := utils.GetIdentity(ctx)
		if err := h.rules.CanChangeRole(identity); err != nil {
			fail(ctx, err)
			return
		}
		update.Role = body.Role
	}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		update.Name = &name
	}

	if body.Email != nil {
		email := normalizeEmail(*body.Email)
		update.Email = &email
	}

	if body.Password != nil {
		passwordHash, err := auth.HashPassword(*body.Password)
		if err != nil {
			fail(ctx, errs.Internal("Failed to hash password", err))
			return
		}
		update.PasswordHash = &passwordHash
	}

	if update.Empty() {
		fail(ctx, errs.InvalidInput("No valid fields to update"))
		return
	}

	user, err := h.store.UpdateUser(ctx.Request.Context(), userID, update)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	userID, err := h.profileTarget(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := h.store.DeleteUser(ctx.Request.Context(), userID); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
