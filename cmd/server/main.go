package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Philipkwofie/referwin/internal/config"
	"github.com/Philipkwofie/referwin/internal/handler"
	"github.com/Philipkwofie/referwin/internal/middleware"
	"github.com/Philipkwofie/referwin/internal/repository"
	"github.com/Philipkwofie/referwin/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Create services
	accountSvc := service.NewAccountService(repo, cfg.Rewards)
	referralSvc := service.NewReferralService(repo, cfg.Rewards)
	rewardSvc := service.NewRewardService(repo, cfg.Rewards)
	withdrawalSvc := service.NewWithdrawalService(repo)
	notificationSvc := service.NewNotificationService(repo)
	adSvc := service.NewAdService(repo)
	linkPostSvc := service.NewLinkPostService(repo)
	adminSvc := service.NewAdminService(repo)

	// Wire cross-service dependencies (to avoid circular constructors)
	accountSvc.SetReferralService(referralSvc)
	withdrawalSvc.SetNotificationService(notificationSvc)
	adminSvc.SetReferralService(referralSvc)
	adminSvc.SetRewardService(rewardSvc)

	// Create handlers
	h := handler.New(cfg, accountSvc, referralSvc, rewardSvc, withdrawalSvc, notificationSvc, adSvc, linkPostSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, referralSvc, withdrawalSvc, notificationSvc, adSvc, linkPostSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Public API
	api := app.Group("/api")
	api.Post("/signup", h.Signup)
	api.Post("/login", h.Login)
	api.Post("/logout/:account_id", h.Logout)
	api.Get("/dashboard/:account_id", h.GetDashboard)
	api.Post("/change-password/:account_id", h.ChangePassword)
	api.Get("/notifications/:account_id", h.GetNotifications)

	// Earning
	api.Get("/ads", h.GetActiveAds)
	api.Get("/linkposts/today", h.GetTodayLinkPost)
	api.Post("/user/earn-ad/:account_id", h.EarnFromAd)
	api.Post("/user/earn-link/:account_id", h.EarnFromLink)

	// Withdrawals
	api.Post("/withdraw/:account_id", h.RequestWithdrawal)
	api.Get("/withdrawals/:account_id", h.GetWithdrawals)

	// Admin panel routes
	api.Post("/admin/login", adminHandler.Login)

	admin := app.Group("/api/admin", middleware.AdminAuth(adminSvc))
	admin.Post("/logout", adminHandler.Logout)
	admin.Get("/session-check", adminHandler.SessionCheck)
	admin.Get("/check-role", adminHandler.CheckRole)

	// Admin - Accounts
	admin.Get("/users", adminHandler.ListAccounts)
	admin.Get("/stats", adminHandler.GetStats)
	admin.Get("/online-users", adminHandler.OnlineAccounts)
	admin.Post("/activate/:account_id", adminHandler.ActivateAccount)
	admin.Post("/deactivate/:account_id", adminHandler.DeactivateAccount)
	admin.Post("/reward/:username", adminHandler.RewardAccount)

	// Admin - Referrals
	admin.Get("/leaderboard", adminHandler.GetLeaderboard)
	admin.Get("/user-downlines/:username", adminHandler.GetAccountDownlines)

	// Admin - Withdrawals
	admin.Get("/withdrawals", adminHandler.ListWithdrawals)
	admin.Post("/withdrawals/:withdrawal_id/pay", adminHandler.PayWithdrawal)

	// Admin - Ads
	admin.Get("/ads", adminHandler.ListAds)
	admin.Post("/ads", adminHandler.CreateAd)
	admin.Put("/ads/:ad_id", adminHandler.UpdateAd)
	admin.Delete("/ads/:ad_id", adminHandler.DeleteAd)

	// Admin - Link posts
	admin.Get("/linkposts", adminHandler.ListLinkPosts)
	admin.Post("/linkposts", adminHandler.CreateLinkPost)
	admin.Put("/linkposts/:post_id", adminHandler.UpdateLinkPost)
	admin.Delete("/linkposts/:post_id", adminHandler.DeleteLinkPost)

	// Admin - Notifications
	admin.Post("/send-notification", adminHandler.SendBroadcast)
	admin.Post("/send-individual-notification", adminHandler.SendIndividualNotification)
	admin.Get("/all-messages", adminHandler.ListAllNotifications)
	admin.Get("/message-stats", adminHandler.NotificationStats)
	admin.Post("/clear-old-messages", adminHandler.TrimOldNotifications)

	// Admin - Settings and logs
	admin.Get("/whatsapp", adminHandler.GetWhatsAppNumber)
	admin.Get("/logs", adminHandler.GetLogs)

	// Master-only routes
	admin.Post("/whatsapp", middleware.MasterAuth(), adminHandler.SetWhatsAppNumber)
	admin.Get("/admins", middleware.MasterAuth(), adminHandler.ListAdmins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
