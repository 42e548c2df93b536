package routes

import (
	"crew-management-api/controllers"
	"crew-management-api/middleware"
	"crew-management-api/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Crew Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Submission workflow
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", controllers.CreateSubmission)

				// Only supervisors and admins review
				submissions.PATCH("/:id/claim",
					middleware.RequireRole(services.RoleSupervisor, services.RoleAdmin),
					controllers.ClaimSubmission)
				submissions.PATCH("/:id/review",
					middleware.RequireRole(services.RoleSupervisor, services.RoleAdmin),
					controllers.ReviewSubmission)
			}

			// Submission history per work item
			protected.GET("/assignments/:type/:id/submissions", controllers.GetAssignmentSubmissions)

			// File uploads for submissions
			protected.POST("/files/upload", controllers.UploadFile)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PATCH("/:id/read", controllers.MarkNotificationRead)
			}
		}
	}
}
