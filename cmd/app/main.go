package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"apnadoctor/cmd/fx/account_fx"
	"apnadoctor/cmd/fx/ai_fx"
	"apnadoctor/cmd/fx/analytics_fx"
	"apnadoctor/cmd/fx/assistant_fx"
	"apnadoctor/cmd/fx/channels_fx"
	"apnadoctor/cmd/fx/config_fx"
	"apnadoctor/cmd/fx/consent_fx"
	"apnadoctor/cmd/fx/controllers_fx"
	"apnadoctor/cmd/fx/db_fx"
	"apnadoctor/cmd/fx/mail_fx"
	"apnadoctor/cmd/fx/memcache_fx"
	"apnadoctor/cmd/fx/notification_fx"
	"apnadoctor/cmd/fx/scheduler_fx"
	"apnadoctor/cmd/fx/storage_fx"
	"apnadoctor/cmd/fx/symptoms_fx"
	"apnadoctor/cmd/fx/upload_fx"
	"apnadoctor/internal/api/controllers"
	"apnadoctor/internal/config"
	"apnadoctor/internal/services"
	mem "apnadoctor/pkg/memcache"
	"apnadoctor/pkg/middleware"
	"apnadoctor/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		storage_fx.Module,
		mail_fx.Module,
		channels_fx.Module,
		ai_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		symptoms_fx.Module,
		analytics_fx.Module,
		consent_fx.Module,
		notification_fx.Module,
		upload_fx.Module,
		assistant_fx.Module,
		scheduler_fx.Module,
		controllers_fx.Module,

		fx.Invoke(ConfigureValidation),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ConfigureValidation(cfg config.Config) error {
	utils.ExposeErrorDetail(!cfg.IsProduction())
	return utils.RegisterValidators()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

// Routes groups every controller the router mounts.
type Routes struct {
	fx.In

	Health        *controllers.HealthController
	Account       *controllers.AccountController
	Symptom       *controllers.SymptomController
	Consent       *controllers.ConsentController
	Notification  *controllers.NotificationController
	Schedule      *controllers.ScheduledNotificationController
	Upload        *controllers.UploadController
	Report        *controllers.ReportController
	Doctor        *controllers.DoctorController
	Chat          *controllers.ChatController
	Analytics     *controllers.AnalyticsController
	JWTManager    *utils.JWTManager
	RevokedTokens mem.RevokedTokenStore
}

func ProvideRouter(cfg config.Config, routes Routes) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = services.MaxUploadSize
	r.Use(middleware.TraceIDMiddleware())
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMin, cfg.LoginRatePerMin/2+1)
	RegisterRoutes(r, routes, loginLimiter)

	return r
}

func RegisterRoutes(r *gin.Engine, routes Routes, loginLimiter *middleware.RateLimiter) {
	api := r.Group("/api")
	api.GET("/health", routes.Health.Health)

	authRequired := middleware.JWTAuthMiddleware(routes.JWTManager, routes.RevokedTokens)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", routes.Account.Register)
	authGroup.POST("/login", middleware.RateLimit(loginLimiter), routes.Account.Login)
	authGroup.POST("/create-admin", routes.Account.CreateAdmin)
	authGroup.GET("/me", authRequired, routes.Account.Me)
	authGroup.PUT("/profile", authRequired, routes.Account.UpdateProfile)
	authGroup.PUT("/change-password", authRequired, routes.Account.ChangePassword)
	authGroup.POST("/logout", authRequired, routes.Account.Logout)

	protected := api.Group("", authRequired)

	symptomsGroup := protected.Group("/symptoms")
	symptomsGroup.POST("/analyze", routes.Symptom.Analyze)
	symptomsGroup.GET("/history", routes.Symptom.History)
	symptomsGroup.GET("/:id", routes.Symptom.GetSession)
	symptomsGroup.DELETE("/:id", routes.Symptom.DeleteSession)

	consentGroup := protected.Group("/consent")
	consentGroup.POST("", routes.Consent.Record)
	consentGroup.GET("/check", routes.Consent.Check)

	notificationsGroup := protected.Group("/notifications")
	notificationsGroup.GET("", routes.Notification.List)
	notificationsGroup.PUT("/read-all", routes.Notification.MarkAllRead)
	notificationsGroup.PUT("/:id/read", routes.Notification.MarkRead)
	notificationsGroup.DELETE("/:id", routes.Notification.Delete)
	notificationsGroup.DELETE("", routes.Notification.DeleteAll)
	notificationsGroup.POST("/test-email", routes.Notification.SendTestEmail)

	scheduleGroup := protected.Group("/scheduled-notifications")
	scheduleGroup.GET("", routes.Schedule.List)
	scheduleGroup.POST("", routes.Schedule.Create)
	scheduleGroup.PUT("/:id", routes.Schedule.Update)
	scheduleGroup.PATCH("/:id/toggle", routes.Schedule.Toggle)
	scheduleGroup.DELETE("/:id", routes.Schedule.Delete)

	uploadGroup := protected.Group("/upload")
	uploadGroup.POST("/upload", routes.Upload.Upload)
	uploadGroup.POST("/analyze/:id", routes.Upload.Analyze)
	uploadGroup.GET("/reports", routes.Upload.ListReports)
	uploadGroup.DELETE("/reports/:id", routes.Upload.DeleteReport)
	uploadGroup.GET("/reports/:id/download", routes.Upload.Download)
	uploadGroup.GET("/history-pdf", routes.Upload.HistoryPDF)

	protected.GET("/reports/generate/:sessionId", routes.Report.Generate)
	protected.GET("/doctors/search", routes.Doctor.Search)
	protected.POST("/chat", routes.Chat.Chat)
	protected.GET("/analytics/dashboard", routes.Analytics.GetDashboard)
}
