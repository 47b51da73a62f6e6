package main

import (
	"fmt"
	"log"
	"net/http"

	"cosaportal/backend/internal/auth"
	"cosaportal/backend/internal/config"
	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "cosaportal/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           COSA Portal API
// @version         1.0
// @description     This is the API for the COSA alumni portal.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := setupRouter()

	fmt.Println("Server is running on " + config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}

// setupRouter wires every route group. Wrong-method requests to a known path
// must answer 405, not 404.
func setupRouter() *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware(), auth.UserMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me/fcm-token", handler.UpdateFCMToken)
		}

		// Directory routes (protected, alumni-visible)
		directoryRoutes := apiV1.Group("/directory")
		directoryRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			directoryRoutes.GET("", handler.SearchDirectory)
			directoryRoutes.GET("/:id", handler.GetDirectoryEntry)
			directoryRoutes.PUT("/me", handler.UpdateMyAlumniProfile)
		}

		// Message routes (protected, any role sends through its own profile)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware(), auth.ProfileMiddleware())
		{
			messageRoutes.POST("", handler.SendMessage)
			messageRoutes.GET("/sent", handler.GetSentMessages)
			messageRoutes.GET("/:id", handler.ViewMessage)
			messageRoutes.POST("/:id/reply", handler.ReplyToMessage)
			messageRoutes.PUT("/:id", handler.EditMessage)
		}

		// Inbox routes (alumni only; alumni are the only recipients)
		inboxRoutes := apiV1.Group("/messages")
		inboxRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			inboxRoutes.GET("/inbox", handler.GetInbox)
			inboxRoutes.DELETE("/:id", handler.DeleteMessage)
			inboxRoutes.POST("/bulk-delete", handler.BulkDeleteMessages)
		}

		// Social graph routes (protected, any role)
		socialRoutes := apiV1.Group("/social")
		socialRoutes.Use(auth.AuthMiddleware(), auth.UserMiddleware())
		{
			socialRoutes.POST("/follow/:id", handler.ToggleFollow)
			socialRoutes.GET("/followers", handler.ListFollowers)
			socialRoutes.GET("/following", handler.ListFollowing)
			socialRoutes.GET("/friends", handler.ListFriends)
			socialRoutes.POST("/friend-requests/:id", handler.SendFriendRequest)
			socialRoutes.POST("/friend-requests/:id/respond", handler.RespondFriendRequest)
			socialRoutes.POST("/friend-requests/:id/cancel", handler.CancelFriendRequest)
		}

		// Notification routes (protected, any role)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware(), auth.UserMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.GET("/stream", handler.StreamNotifications)
			notificationRoutes.POST("/read-all", handler.MarkAllNotificationsRead)
			notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
			notificationRoutes.DELETE("/:id", handler.DeleteNotification)
		}

		// Event routes
		eventRoutes := apiV1.Group("/events")
		eventRoutes.Use(auth.AuthMiddleware(), auth.UserMiddleware())
		{
			eventRoutes.GET("", handler.ListEvents)
			eventRoutes.GET("/:id", handler.GetEvent)
		}
		eventAlumniRoutes := apiV1.Group("/events")
		eventAlumniRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			eventAlumniRoutes.POST("/:id/register", handler.RegisterForEvent)
			eventAlumniRoutes.DELETE("/:id/register", handler.CancelRegistration)
			eventAlumniRoutes.GET("/registrations/mine", handler.ListMyRegistrations)
		}
		eventAdminRoutes := apiV1.Group("/events")
		eventAdminRoutes.Use(auth.AuthMiddleware(), auth.CoordinatorMiddleware())
		{
			eventAdminRoutes.POST("", handler.CreateEvent)
			eventAdminRoutes.PUT("/:id", handler.UpdateEvent)
			eventAdminRoutes.PUT("/:id/status", handler.UpdateEventStatus)
			eventAdminRoutes.GET("/:id/registrations", handler.ListEventRegistrations)
			eventAdminRoutes.PUT("/:id/registrations/:registrationId", handler.UpdateRegistrationStatus)
		}

		// Job routes
		jobRoutes := apiV1.Group("/jobs")
		jobRoutes.Use(auth.AuthMiddleware(), auth.UserMiddleware())
		{
			jobRoutes.GET("", handler.ListJobPostings)
			jobRoutes.GET("/:id", handler.GetJobPosting)
		}
		jobAlumniRoutes := apiV1.Group("/jobs")
		jobAlumniRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			jobAlumniRoutes.POST("", handler.CreateJobPosting)
			jobAlumniRoutes.PUT("/:id", handler.UpdateJobPosting)
			jobAlumniRoutes.DELETE("/:id", handler.CloseJobPosting)
			jobAlumniRoutes.POST("/:id/apply", handler.ApplyForJob)
			jobAlumniRoutes.DELETE("/:id/apply", handler.WithdrawApplication)
			jobAlumniRoutes.GET("/:id/applications", handler.ListJobApplications)
			jobAlumniRoutes.PUT("/:id/applications/:applicationId", handler.UpdateApplicationStatus)
			jobAlumniRoutes.GET("/applications/mine", handler.ListMyApplications)
		}

		// Donation routes
		donationAlumniRoutes := apiV1.Group("/donations")
		donationAlumniRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			donationAlumniRoutes.POST("", handler.CreateDonation)
			donationAlumniRoutes.GET("/mine", handler.ListMyDonations)
		}
		apiV1.GET("/donations/recent", handler.ListRecentDonations)
		donationAdminRoutes := apiV1.Group("/donations")
		donationAdminRoutes.Use(auth.AuthMiddleware(), auth.CoordinatorMiddleware())
		{
			donationAdminRoutes.GET("", handler.ListDonations)
			donationAdminRoutes.PUT("/:id/status", handler.UpdateDonationStatus)
		}

		// Mentorship routes
		mentorshipAlumniRoutes := apiV1.Group("/mentorship")
		mentorshipAlumniRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			mentorshipAlumniRoutes.GET("/mine", handler.ListMyMentorships)
			mentorshipAlumniRoutes.POST("/:id/feedback", handler.SubmitMentorshipFeedback)
		}
		mentorshipAdminRoutes := apiV1.Group("/mentorship")
		mentorshipAdminRoutes.Use(auth.AuthMiddleware(), auth.CoordinatorMiddleware())
		{
			mentorshipAdminRoutes.POST("", handler.CreateMentorship)
			mentorshipAdminRoutes.GET("", handler.ListMentorships)
			mentorshipAdminRoutes.PUT("/:id/status", handler.UpdateMentorshipStatus)
		}

		// News routes (public listing, optional auth for drafts)
		newsRoutes := apiV1.Group("/news")
		{
			newsRoutes.GET("", handler.ListNews)
			newsRoutes.GET("/:slug", auth.OptionalAuthMiddleware(), handler.GetNews)
		}
		newsAdminRoutes := apiV1.Group("/news")
		newsAdminRoutes.Use(auth.AuthMiddleware(), auth.CoordinatorMiddleware())
		{
			newsAdminRoutes.POST("", handler.CreateNews)
			newsAdminRoutes.GET("/all", handler.ListAllNews)
			newsAdminRoutes.PUT("/:id", handler.UpdateNews)
			newsAdminRoutes.POST("/:id/publish", handler.PublishNews)
			newsAdminRoutes.DELETE("/:id", handler.DeleteNews)
		}

		// Feedback routes
		feedbackAlumniRoutes := apiV1.Group("/feedback")
		feedbackAlumniRoutes.Use(auth.AuthMiddleware(), auth.AlumniMiddleware())
		{
			feedbackAlumniRoutes.POST("", handler.SubmitFeedback)
			feedbackAlumniRoutes.GET("/mine", handler.ListMyFeedback)
		}
		feedbackAdminRoutes := apiV1.Group("/feedback")
		feedbackAdminRoutes.Use(auth.AuthMiddleware(), auth.CoordinatorMiddleware())
		{
			feedbackAdminRoutes.GET("", handler.ListFeedback)
			feedbackAdminRoutes.PUT("/:id/reply", handler.ReplyToFeedback)
		}

		// Catalog routes (public reads, authenticated company creation)
		catalogRoutes := apiV1.Group("/catalog")
		{
			catalogRoutes.GET("/graduation-years", handler.ListGraduationYears)
			catalogRoutes.GET("/departments", handler.ListDepartments)
			catalogRoutes.GET("/degrees", handler.ListDegrees)
			catalogRoutes.GET("/companies", handler.ListCompanies)
			catalogRoutes.POST("/companies", auth.AuthMiddleware(), auth.UserMiddleware(), handler.CreateCompany)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.GET("/users", handler.ListUsers)
			adminRoutes.POST("/users", handler.CreateStaffUser)
			adminRoutes.POST("/users/:id/verify", handler.VerifyUser)
			adminRoutes.POST("/users/:id/suspend", handler.SuspendUser)
			adminRoutes.POST("/users/:id/unsuspend", handler.UnsuspendUser)

			// Catalog CRUD
			catalog := adminRoutes.Group("/catalog")
			{
				catalog.POST("/graduation-years", handler.CreateGraduationYear)
				catalog.PUT("/graduation-years/:id", handler.UpdateGraduationYear)
				catalog.POST("/departments", handler.CreateDepartment)
				catalog.PUT("/departments/:id", handler.UpdateDepartment)
				catalog.POST("/degrees", handler.CreateDegree)
				catalog.PUT("/degrees/:id", handler.UpdateDegree)
				catalog.PUT("/companies/:id", handler.UpdateCompany)
			}
		}
	}

	return router
}
