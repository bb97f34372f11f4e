package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/foodbao/admin-api/docs"
	"github.com/foodbao/admin-api/internal/api/handler"
	"github.com/foodbao/admin-api/internal/api/middleware"
	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/service"
	"github.com/foodbao/admin-api/internal/infrastructure/cloudinary"
	"github.com/foodbao/admin-api/internal/infrastructure/config"
	mongodb "github.com/foodbao/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/foodbao/admin-api/internal/infrastructure/db/redis"
	"github.com/foodbao/admin-api/internal/infrastructure/notify"
	"github.com/foodbao/admin-api/internal/infrastructure/queue"
	"github.com/foodbao/admin-api/internal/infrastructure/supabase"
	"github.com/foodbao/admin-api/internal/token"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the notification dispatcher, which the caller must Start.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("foodbao"))

	// --- Remote backend ---
	sb, err := supabase.NewClient(supabase.Config{
		URL:        cfg.Supabase.URL,
		ServiceKey: cfg.Supabase.ServiceKey,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	userRepo := supabase.NewUserRepository(sb, cfg.Supabase.UserTable, cfg.Supabase.VerifyRPC)
	catalogRepo := supabase.NewCatalogRepository(sb)
	orderRepo := supabase.NewOrderRepository(sb)

	// --- Local stores ---
	sessionStore := redisdb.NewSessionStore(rdb)
	dedup := redisdb.NewDedupChecker(rdb)
	resetRepo := mongodb.NewResetRepository(db)
	auditLog := mongodb.NewNotificationLog(db)

	// --- Notification pipeline ---
	emailSender := notify.NewSMTPSender(notify.SMTPConfig{
		Host: cfg.Notify.SMTPHost,
		Port: cfg.Notify.SMTPPort,
		User: cfg.Notify.SMTPUser,
		Pass: cfg.Notify.SMTPPass,
		From: cfg.Notify.FromAddress,
	}, log)
	whatsappSender := notify.NewWhatsAppSender(notify.WhatsAppConfig{
		BaseURL: cfg.Notify.WhatsAppURL,
		APIKey:  cfg.Notify.WhatsAppKey,
	}, log)
	// The interface must stay nil when no broker is configured; a typed-nil
	// publisher would pass the service's nil check and crash on first use.
	var outbox service.OutboxPublisher
	if p := queue.NewAMQPPublisher(cfg.Notify.AMQPURL, log); p != nil {
		outbox = p
	}
	notificationService := service.NewNotificationService(emailSender, whatsappSender, dedup, auditLog, outbox, log)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notificationService, log)

	// --- Core services ---
	codec := token.NewCodec()
	authService := service.NewAuthService(userRepo, userRepo, codec, log)
	sessionService := service.NewSessionService(sessionStore, userRepo, log)
	resetService := service.NewResetService(userRepo, resetRepo, dispatcher, log)
	catalogService := service.NewCatalogService(catalogRepo, log)
	orderService := service.NewOrderService(orderRepo, log)

	media := cloudinary.NewClient(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	}, log)
	mediaService := service.NewMediaService(media, cfg.Cloudinary.Folder, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessionService, cfg)
	sessionHandler := handler.NewSessionHandler(sessionService)
	resetHandler := handler.NewResetHandler(resetService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	mediaHandler := handler.NewMediaHandler(mediaService)

	authRequired := middleware.Auth(codec)
	withIdentity := middleware.Identity(sessionStore)

	// --- Auth and session ---
	e.POST("/api/auth", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register, authRequired, middleware.RBAC(domain.RoleAdmin))
	e.POST("/api/session", sessionHandler.Start)
	e.GET("/api/session/validate", sessionHandler.Validate)
	e.GET("/api/session/credit-status", sessionHandler.CreditStatus)
	e.POST("/api/logout", sessionHandler.Logout)

	// --- Password reset (unauthenticated) ---
	e.POST("/api/request-password-reset", resetHandler.Request)
	e.POST("/api/verify-reset-code", resetHandler.VerifyCode)
	e.POST("/api/reset-password", resetHandler.ResetPassword)

	// --- Data proxy ---
	v1 := e.Group("/api/v1", authRequired, withIdentity)

	clients := v1.Group("/clients", middleware.RBAC(domain.RoleAdmin, domain.RoleAgent))
	clients.GET("", catalogHandler.ListClients)
	clients.POST("", catalogHandler.CreateClient)
	clients.GET("/:id", catalogHandler.GetClient)
	clients.PUT("/:id", catalogHandler.UpdateClient)
	clients.DELETE("/:id", catalogHandler.DeleteClient, middleware.RBAC(domain.RoleAdmin))

	v1.GET("/categories", catalogHandler.ListCategories)
	v1.POST("/categories", catalogHandler.CreateCategory)
	v1.PUT("/categories/:id", catalogHandler.UpdateCategory)
	v1.DELETE("/categories/:id", catalogHandler.DeleteCategory)

	v1.GET("/menu", catalogHandler.ListMenuItems)
	v1.POST("/menu", catalogHandler.CreateMenuItem)
	v1.GET("/menu/:id", catalogHandler.GetMenuItem)
	v1.PUT("/menu/:id", catalogHandler.UpdateMenuItem)
	v1.DELETE("/menu/:id", catalogHandler.DeleteMenuItem)

	v1.GET("/orders", orderHandler.ListOrders)
	v1.POST("/orders", orderHandler.CreateOrder)
	v1.GET("/orders/:id", orderHandler.GetOrder)
	v1.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	v1.DELETE("/orders/:id", orderHandler.DeleteOrder, middleware.RBAC(domain.RoleAdmin))

	v1.POST("/images", mediaHandler.Upload)
	v1.DELETE("/images/:id", mediaHandler.Delete)

	// --- Health probes and observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, dispatcher, nil
}
