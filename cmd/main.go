package main

import (
	"nestify/internal/handler"
	"nestify/internal/middleware"
	"nestify/internal/model"
	"nestify/pkg/config"
	"nestify/pkg/database"
	"nestify/pkg/googleauth"
	"nestify/pkg/jwtutil"
	"nestify/pkg/logger"
	"nestify/pkg/otp"
	"nestify/prometheus"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting Nestify API...", cfg.LogConfig()...)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Pick the OTP store: redis when configured, in-memory otherwise.
	// The in-memory store is per-instance and for development only.
	var otpStore otp.Store
	if cfg.OTP.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.OTP.RedisAddr,
			Password: cfg.OTP.RedisPassword,
			DB:       cfg.OTP.RedisDB,
		})
		otpStore = otp.NewRedisStore(client, cfg.OTP.TTL)
		log.Info("OTP store backed by redis", zap.String("addr", cfg.OTP.RedisAddr))
	} else {
		otpStore = otp.NewMemoryStore(cfg.OTP.TTL)
		log.Warn("OTP store is in-memory, codes will not survive a restart")
	}
	handler.InitAuth(otpStore, googleauth.NewClient(&cfg.Google, log))

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendURL, "http://localhost:5173"},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/api/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/otp/send", handler.SendOTP)
	auth.POST("/otp/verify", handler.VerifyOTP)
	auth.GET("/google/url", handler.GoogleLoginURL)
	auth.GET("/google/callback", handler.GoogleCallback)
	auth.GET("/me", handler.GetMe, middleware.AuthMiddleware)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)

	societies := api.Group("/societies")
	societies.GET("", handler.ListSocieties)
	societies.POST("", handler.CreateSociety, middleware.RequireRole(model.RoleAdmin))
	societies.GET("/:id", handler.GetSociety)
	societies.GET("/:id/towers", handler.ListTowers)
	societies.POST("/towers", handler.CreateTower, middleware.RequireRole(model.RoleAdmin))
	societies.GET("/towers/:id/flats", handler.ListFlats)
	societies.POST("/flats", handler.CreateFlat, middleware.RequireRole(model.RoleAdmin))

	residents := api.Group("/residents")
	residents.GET("", handler.ListResidents)
	residents.GET("/:id", handler.GetResident)
	residents.PUT("/:id", handler.UpdateResident, middleware.RequireRole(model.RoleAdmin))
	residents.POST("/:id/assign-flat", handler.AssignFlat, middleware.RequireRole(model.RoleAdmin))
	residents.POST("/:id/move-out", handler.MoveOut, middleware.RequireRole(model.RoleAdmin))

	maintenance := api.Group("/maintenance")
	maintenance.GET("/invoices", handler.ListInvoices)
	maintenance.POST("/invoices", handler.CreateInvoice,
		middleware.RequireRole(model.RoleAdmin, model.RoleTreasurer))
	maintenance.GET("/payments", handler.ListPayments)
	maintenance.POST("/payments", handler.RecordPayment)

	complaints := api.Group("/complaints")
	complaints.GET("", handler.ListComplaints)
	complaints.POST("", handler.CreateComplaint)
	complaints.PUT("/:id", handler.UpdateComplaint)

	visitors := api.Group("/visitors")
	visitors.GET("", handler.ListVisitors)
	visitors.POST("", handler.AddVisitor)
	visitors.PUT("/:id/approve", handler.ApproveVisitor)
	visitors.PUT("/:id/checkout", handler.CheckoutVisitor)

	notices := api.Group("/notices")
	notices.GET("", handler.ListNotices)
	notices.POST("", handler.CreateNotice, middleware.RequireRole(model.RoleAdmin))
	notices.DELETE("/:id", handler.DeleteNotice, middleware.RequireRole(model.RoleAdmin))

	bookings := api.Group("/bookings")
	bookings.GET("", handler.ListBookings)
	bookings.POST("", handler.CreateBooking)
	bookings.DELETE("/:id", handler.CancelBooking)

	polls := api.Group("/polls")
	polls.GET("", handler.ListPolls)
	polls.POST("", handler.CreatePoll, middleware.RequireRole(model.RoleAdmin))
	polls.POST("/:id/vote", handler.CastVote)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/admin", handler.AdminDashboard)
	dashboard.GET("/resident", handler.ResidentDashboard)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
