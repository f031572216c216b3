package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/container"
	"github.com/omarhamdan/safra/internal/handlers"
	"github.com/omarhamdan/safra/internal/middleware"
	"github.com/omarhamdan/safra/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     c.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	// Uploaded images and payment proofs are served straight off disk.
	r.Static("/uploads", c.Config.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "safra-api",
			})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(c.AuthService, c.Config.UploadDir))
			auth.POST("/login",
				middleware.LoginRateLimit(c.RedisClient, 10, time.Minute, c.Logger),
				handlers.Login(c.AuthService))
		}

		// Trip search and the office directory are public; everything else
		// requires a token.
		api.GET("/offices", handlers.ListOffices(c.OfficeService))
		api.GET("/buses", handlers.ListBuses(c.BusService))
		api.GET("/buses/:id/seats", handlers.ListSeats(c.BusService))
		api.GET("/trips", handlers.ListTrips(c.TripService))
		api.GET("/trips/:id", handlers.GetTrip(c.TripService))
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(c.Config.JWTSecret))

	staff := []models.Role{models.RoleAdmin, models.RoleOfficeEmployee}

	officeRoutes := protected.Group("/offices")
	officeRoutes.Use(middleware.AllowRoles(models.RoleAdmin))
	{
		officeRoutes.POST("", handlers.CreateOffice(c.OfficeService, c.Config.UploadDir))
		officeRoutes.PUT("/:id", handlers.UpdateOffice(c.OfficeService, c.Config.UploadDir))
		officeRoutes.DELETE("/:id", handlers.DeleteOffice(c.OfficeService))
	}

	busRoutes := protected.Group("/buses")
	busRoutes.Use(middleware.AllowRoles(staff...))
	{
		busRoutes.POST("", handlers.CreateBus(c.BusService))
		busRoutes.PUT("/:id", handlers.UpdateBus(c.BusService))
		busRoutes.DELETE("/:id", handlers.DeleteBus(c.BusService))
		busRoutes.PUT("/:id/seats", handlers.ReplaceSeats(c.BusService))
	}

	tripRoutes := protected.Group("/trips")
	tripRoutes.Use(middleware.AllowRoles(staff...))
	{
		tripRoutes.POST("", handlers.CreateTrip(c.TripService))
		tripRoutes.PUT("/:id", handlers.UpdateTrip(c.TripService))
		tripRoutes.DELETE("/:id", handlers.DeleteTrip(c.TripService))
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("",
			middleware.AllowRoles(models.RoleCustomer),
			handlers.CreateBooking(c.BookingService, c.Config.UploadDir))
		bookingRoutes.GET("", handlers.ListBookings(c.BookingService))
		bookingRoutes.PUT("/cancel/:id", handlers.CancelBooking(c.BookingService))
		bookingRoutes.GET("/:id/ticket", handlers.DownloadTicket(c.TicketService))
	}

	userRoutes := protected.Group("/users")
	{
		userRoutes.GET("", middleware.AllowRoles(models.RoleAdmin), handlers.ListUsers(c.UserService))
		userRoutes.GET("/:id", handlers.GetUser(c.UserService))
		userRoutes.PUT("/:id", handlers.UpdateUser(c.UserService, c.Config.UploadDir))
		userRoutes.DELETE("/:id", middleware.AllowRoles(models.RoleAdmin), handlers.DeleteUser(c.UserService))
	}

	return r
}
