package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nanotasks/internal/auth"
	"nanotasks/internal/config"
	"nanotasks/internal/database"
	"nanotasks/internal/handlers"
	"nanotasks/internal/jobs"
	"nanotasks/internal/models"
	"nanotasks/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize services
	ledgerService := services.NewLedgerService(db)
	notificationService := services.NewNotificationService(db)
	userService := services.NewUserService(db, cfg.App.WorkerSignupBonus, cfg.App.BuyerSignupBonus)
	taskService := services.NewTaskService(db, ledgerService)
	submissionService := services.NewSubmissionService(db, ledgerService, notificationService)
	withdrawalService := services.NewWithdrawalService(db, ledgerService, notificationService)
	paymentService := services.NewPaymentService(db, ledgerService)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService, ledgerService)
	taskHandler := handlers.NewTaskHandler(taskService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	statsHandler := handlers.NewStatsHandler(statsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Start stats snapshot job
	snapshotJob := jobs.NewStatsSnapshotJob(db)
	snapshotJob.Start(time.Duration(cfg.App.StatsSnapshotMinutes) * time.Minute)
	log.Println("Stats snapshot job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth route
	router.POST("/auth/token", authHandler.Token)

	// Protected API routes
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/users/me", authHandler.Me)
		api.GET("/users/me/transactions", userHandler.LedgerHistory)
		api.GET("/workers/top", userHandler.TopWorkers)

		// Task routes
		api.GET("/tasks", taskHandler.ListOpenTasks)
		api.GET("/tasks/mine", auth.RequireRole(models.RoleBuyer), taskHandler.ListMyTasks)
		api.GET("/tasks/:id", taskHandler.GetTask)
		api.POST("/tasks", auth.RequireRole(models.RoleBuyer), taskHandler.CreateTask)
		api.PATCH("/tasks/:id", auth.RequireRole(models.RoleBuyer), taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", auth.RequireRole(models.RoleBuyer, models.RoleAdmin), taskHandler.DeleteTask)

		// Submission routes
		api.POST("/submissions", auth.RequireRole(models.RoleWorker), submissionHandler.Submit)
		api.GET("/submissions/worker", auth.RequireRole(models.RoleWorker), submissionHandler.ListMySubmissions)
		api.GET("/submissions/buyer", auth.RequireRole(models.RoleBuyer), submissionHandler.ListReceivedSubmissions)
		api.PATCH("/submissions/:id/approve", auth.RequireRole(models.RoleBuyer, models.RoleAdmin), submissionHandler.Approve)
		api.PATCH("/submissions/:id/reject", auth.RequireRole(models.RoleBuyer, models.RoleAdmin), submissionHandler.Reject)

		// Withdrawal routes
		api.POST("/withdrawals", auth.RequireRole(models.RoleWorker), withdrawalHandler.Request)
		api.GET("/withdrawals", auth.RequireRole(models.RoleWorker), withdrawalHandler.ListMine)
		api.GET("/withdrawals/pending", auth.RequireRole(models.RoleAdmin), withdrawalHandler.ListPending)
		api.PATCH("/withdrawals/:id/approve", auth.RequireRole(models.RoleAdmin), withdrawalHandler.Approve)
		api.PATCH("/withdrawals/:id/reject", auth.RequireRole(models.RoleAdmin), withdrawalHandler.Reject)

		// Payment routes
		api.GET("/payments/packages", paymentHandler.CoinPackages)
		api.POST("/payments", auth.RequireRole(models.RoleBuyer), paymentHandler.RecordCharge)
		api.GET("/payments", auth.RequireRole(models.RoleBuyer), paymentHandler.ListMine)

		// Stats routes
		api.GET("/stats/admin", auth.RequireRole(models.RoleAdmin), statsHandler.AdminStats)
		api.GET("/stats/buyer", auth.RequireRole(models.RoleBuyer), statsHandler.BuyerStats)
		api.GET("/stats/worker", auth.RequireRole(models.RoleWorker), statsHandler.WorkerStats)

		// Notification routes
		api.GET("/notifications", notificationHandler.List)
		api.PATCH("/notifications/read", notificationHandler.MarkAllRead)
	}

	// Admin user management routes
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.PATCH("/users/:id/role", userHandler.UpdateRole)
		admin.DELETE("/users/:id", userHandler.DeleteUser)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
