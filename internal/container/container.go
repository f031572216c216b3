package container

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/omarhamdan/safra/internal/config"
	"github.com/omarhamdan/safra/internal/mailer"
	"github.com/omarhamdan/safra/internal/models"
	"github.com/omarhamdan/safra/internal/queue"
	"github.com/omarhamdan/safra/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	MongoDBClient *mongo.Client
	RedisClient   *redis.Client

	Mailer *mailer.Mailer

	AuthService    *services.AuthService
	UserService    *services.UserService
	OfficeService  *services.OfficeService
	BusService     *services.BusService
	TripService    *services.TripService
	BookingService *services.BookingService
	TicketService  *services.TicketService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)

	var ml *mailer.Mailer
	var sender queue.ConfirmationSender
	if cfg.MailConfigured() {
		ml = mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
		sender = ml
	}
	publisher := queue.NewPublisher(cfg.AMQPURL)

	authService := services.NewAuthService(repo, cfg.JWTSecret)
	userService := services.NewUserService(repo, repo)
	officeService := services.NewOfficeService(repo, repo, repo, repo)
	busService := services.NewBusService(repo, repo, repo, repo)
	tripService := services.NewTripService(repo, repo, repo, repo, redisClient, logger)
	bookingService := services.NewBookingService(repo, repo, repo, publisher, sender, logger)
	ticketService := services.NewTicketService(bookingService, repo)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		Mailer:         ml,
		AuthService:    authService,
		UserService:    userService,
		OfficeService:  officeService,
		BusService:     busService,
		TripService:    tripService,
		BookingService: bookingService,
		TicketService:  ticketService,
	}
}
