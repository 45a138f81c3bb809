package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"vendors-backend/internal/config"
	"vendors-backend/internal/features/audit_logs"
	memberships_controllers "vendors-backend/internal/features/memberships/controllers"
	memberships_roles "vendors-backend/internal/features/memberships/roles"
	memberships_services "vendors-backend/internal/features/memberships/services"
	system_healthcheck "vendors-backend/internal/features/system/healthcheck"
	users_controllers "vendors-backend/internal/features/users/controllers"
	users_middleware "vendors-backend/internal/features/users/middleware"
	users_services "vendors-backend/internal/features/users/services"
	vendors_controllers "vendors-backend/internal/features/vendors/controllers"
	"vendors-backend/internal/storage"
	env_utils "vendors-backend/internal/util/env"
	files_utils "vendors-backend/internal/util/files"
	"vendors-backend/internal/util/logger"
	metrics_utils "vendors-backend/internal/util/metrics"
	_ "vendors-backend/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Vendors Backend API
// @version 1.0
// @description Vendor directory with per-vendor team memberships
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	err := files_utils.EnsureDirectories([]string{
		config.GetEnv().DataFolder,
	})
	if err != nil {
		log.Error("Failed to ensure directories", "error", err)
		os.Exit(1)
	}

	runMigrations(log)

	setUpDependencies()

	err = users_services.GetUserService().CreateInitialAdmin()
	if err != nil {
		log.Error("Failed to create initial admin", "error", err)
		os.Exit(1)
	}

	handlePasswordReset(log)

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(gzip.DefaultCompression))
	ginApp.Use(metrics_utils.Middleware())

	enableCors(ginApp)
	setUpRoutes(ginApp)

	startServerWithGracefulShutdown(log, ginApp)
}

func handlePasswordReset(log *slog.Logger) {
	newPassword := flag.String("new-password", "", "Set a new password for the user")
	email := flag.String("email", "", "Email of the user to reset password")

	flag.Parse()

	if *newPassword == "" {
		return
	}

	log.Info("Found reset password command - resetting password...")

	if *email == "" {
		log.Info("No email provided, please provide an email via --email=\"some@email.com\" flag")
		os.Exit(1)
	}

	resetPassword(*email, *newPassword, log)
}

func resetPassword(email string, newPassword string, log *slog.Logger) {
	log.Info("Resetting password...")

	err := users_services.GetUserService().ChangeUserPasswordByEmail(email, newPassword)
	if err != nil {
		log.Error("Failed to reset password", "error", err)
		os.Exit(1)
	}

	log.Info("Password reset successfully")
	os.Exit(0)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	cfg := config.GetEnv()

	host := ""
	if cfg.EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              host + ":" + cfg.HTTPPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("Vendors backend is running!", "http", "http://localhost:"+cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	r.GET("/metrics", metrics_utils.Handler())

	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	userService := users_services.GetUserService()
	userController := users_controllers.GetUserController()

	// Public routes
	userController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	// Vendor routes are readable anonymously; each handler decides what
	// an anonymous caller may do
	vendorRoutes := v1.Group("")
	vendorRoutes.Use(users_middleware.OptionalAuthMiddleware(userService))

	vendors_controllers.GetVendorController().RegisterRoutes(vendorRoutes)
	memberships_controllers.GetMembershipController().RegisterRoutes(vendorRoutes)
	audit_logs.GetAuditLogController().RegisterRoutes(vendorRoutes)

	// Protected routes
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(userService))

	userController.RegisterProtectedRoutes(protected)
}

func setUpDependencies() {
	configureRolePolicy()

	audit_logs.SetupDependencies()
	memberships_services.SetupDependencies()
}

func configureRolePolicy() {
	extraRoles := config.GetEnv().VendorExtraRoles
	if len(extraRoles) == 0 {
		return
	}

	memberships_services.ConfigureRolePolicy(memberships_roles.WithExtraRoles(extraRoles))
	logger.GetLogger().Info("Vendor role catalog extended", "roles", extraRoles)
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	if err := storage.Migrate(storage.GetDb()); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
			},
		}))
	}
}
