package router

import (
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/handlers"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/metrics"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/middleware"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Handler  *handlers.Handler
	Resolver middleware.IdentityResolver
	Metrics  *metrics.Metrics
	Origins  []string
}

func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Logger(deps.Metrics), gin.Recovery(), middleware.Errors(deps.Metrics))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := deps.Handler
	authenticate := middleware.Authenticate(deps.Resolver)
	reviewerOnly := middleware.RequireRole(types.RoleReviewer)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/me", authenticate, h.Me)
		}

		users := api.Group("/users", authenticate)
		{
			users.GET("/:user_id", h.GetUser)
			users.PUT("/:user_id", h.UpdateUser)
			users.DELETE("/:user_id", h.DeleteUser)
		}

		projects := api.Group("/projects", authenticate)
		{
			projects.GET("", h.ListProjects)
			projects.POST("", h.CreateProject)
			projects.GET("/:project_id", h.GetProject)

			projects.GET("/:project_id/members", h.ListMembers)
			projects.POST("/:project_id/members", reviewerOnly, h.AddMember)
			projects.DELETE("/:project_id/members/:user_id", h.RemoveMember)

			projects.GET("/:project_id/submissions", h.ListProjectSubmissions)
			projects.GET("/:project_id/events", h.Events)
		}

		submissions := api.Group("/submissions", authenticate)
		{
			submissions.POST("", h.CreateSubmission)
			submissions.GET("/:submission_id", h.GetSubmission)
			submissions.PATCH("/:submission_id/status", reviewerOnly, h.UpdateSubmissionStatus)
			submissions.DELETE("/:submission_id", h.DeleteSubmission)

			submissions.POST("/:submission_id/comments", h.CreateComment)
			submissions.GET("/:submission_id/comments", h.ListComments)
		}

		comments := api.Group("/comments", authenticate)
		{
			comments.PATCH("/:comment_id", h.UpdateComment)
			comments.DELETE("/:comment_id", h.DeleteComment)
		}
	}

	return r
}
