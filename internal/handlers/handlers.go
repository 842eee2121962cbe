package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/geo"
	"goldconnect/api/internal/middleware"
	"goldconnect/api/internal/repository"
	"goldconnect/api/internal/service"
	"goldconnect/api/internal/storage"
	"goldconnect/api/internal/sync"
)

type HandlerSet struct {
	log            zerolog.Logger
	cfg            *config.AppConfig
	sessionService *service.SessionService
	messageService *service.MessageService
	verifyService  *service.VerifyService
	hub            *sync.Hub
	db             *pgxpool.Pool
	cache          *redis.Client
	users          *repository.UserRepository
	messages       *repository.MessageRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, resolver *geo.Resolver, hub *sync.Hub, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	verifyRepo := repository.NewVerifyRepository(db)

	uploadService := service.NewUploadService(store, cfg, log)
	sessionService := service.NewSessionService(userRepo, resolver, cache, cfg, log)
	messageService := service.NewMessageService(messageRepo, uploadService, hub, cache, cfg, log)
	verifyService := service.NewVerifyService(verifyRepo, log)

	return HandlerSet{
		log:            log,
		cfg:            cfg,
		sessionService: sessionService,
		messageService: messageService,
		verifyService:  verifyService,
		hub:            hub,
		db:             db,
		cache:          cache,
		users:          userRepo,
		messages:       messageRepo,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", h.Login)

	authed := v1.Group("")
	authed.Use(middleware.Auth(h.cfg, h.sessionService))
	{
		authed.POST("/auth/logout", h.Logout)
		authed.GET("/auth/me", h.Me)

		authed.GET("/users", h.ListUsers)

		authed.GET("/messages", h.ListMessages)
		authed.GET("/messages/stream", h.StreamMessages)
		authed.POST("/messages/text", h.SendTextMessage)
		authed.POST("/messages/file", h.SendFileMessage)

		authed.POST("/verify", h.CreateVerify)
	}

	admin := v1.Group("")
	admin.Use(middleware.Auth(h.cfg, h.sessionService), middleware.RequireAdmin())
	{
		admin.DELETE("/messages/:id", h.DeleteMessage)
		admin.GET("/verify", h.ListVerify)
		admin.DELETE("/verify/:id", h.DeleteVerify)
		admin.GET("/admin/activity", h.AdminActivity)
	}
}

// statusFor maps service and repository errors onto HTTP statuses:
// validation 400, missing record 404, media store failure 502,
// anything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrMessageNotFound),
		errors.Is(err, repository.ErrVerifyNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
