package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/softdesk-dev/softdesk/internal/handlers"
	"github.com/softdesk-dev/softdesk/internal/middleware"
	"github.com/softdesk-dev/softdesk/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/token", handlers.ObtainToken)
			auth.POST("/token/refresh", handlers.RefreshToken)
		}

		// Registration is the only public user route.
		api.POST("/users", handlers.CreateUser)

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:user_id", handlers.GetUser)
			users.PUT("/:user_id", handlers.UpdateUser)
			users.PATCH("/:user_id", handlers.PatchUser)
			users.DELETE("/:user_id", handlers.DeleteUser)

			// RGPD profile management and right to be forgotten
			users.GET("/:user_id/profile", handlers.Profile)
			users.PUT("/:user_id/profile", handlers.Profile)
			users.PATCH("/:user_id/profile", handlers.Profile)
			users.DELETE("/:user_id/delete_account", handlers.DeleteUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.PATCH("/:project_id", handlers.PatchProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			projects.GET("/:project_id/contributors", handlers.ListContributors)
			projects.POST("/:project_id/add_contributor", handlers.AddContributor)
		}

		issues := api.Group("/issues", middleware.AuthMiddleware())
		{
			issues.POST("", handlers.CreateIssue)
			issues.GET("", handlers.ListIssues)
			issues.GET("/:issue_id", handlers.GetIssue)
			issues.PUT("/:issue_id", handlers.UpdateIssue)
			issues.PATCH("/:issue_id", handlers.PatchIssue)
			issues.DELETE("/:issue_id", handlers.DeleteIssue)

			issues.GET("/:issue_id/comments", handlers.ListIssueComments)
		}

		comments := api.Group("/comments", middleware.AuthMiddleware())
		{
			comments.POST("", handlers.CreateComment)
			comments.GET("", handlers.ListComments)
			comments.GET("/:comment_uuid", handlers.GetComment)
			comments.PUT("/:comment_uuid", handlers.UpdateComment)
			comments.PATCH("/:comment_uuid", handlers.UpdateComment)
			comments.DELETE("/:comment_uuid", handlers.DeleteComment)
		}
	}

	return r
}
