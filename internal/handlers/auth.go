package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/models"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/utils"
	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     types.Role `json:"role" binding:"omitempty,oneof=submitter reviewer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    types.UserResponse `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	role := body.Role
	if role == "" {
		role = h.defaultRole
	}

	passwordHash, err := auth.HashPassword(body.Password)
	if err != nil {
		fail(ctx, errs.Internal("Failed to hash password", err))
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        normalizeEmail(body.Email),
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := h.store.CreateUser(ctx.Request.Context(), &user); err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": user.Public()})
}

// Login answers unknown emails and wrong passwords with the same error.
func (h *Handler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := bindJSON(ctx, &body); err != nil {
		fail(ctx, err)
		return
	}

	user, err := h.store.GetUserByEmail(ctx.Request.Context(), normalizeEmail(body.Email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			err = errs.ErrInvalidCredentials
		}
		fail(ctx, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		fail(ctx, errs.ErrInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

func (h *Handler) Me(ctx *gin.Context) {
	identity, err := utils.GetIdentity(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	user, err := h.store.GetUser(ctx.Request.Context(), identity.UserID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
