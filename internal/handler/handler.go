package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Philipkwofie/referwin/internal/config"
	"github.com/Philipkwofie/referwin/internal/service"
)

var validate = validator.New()

type Handler struct {
	cfg             *config.Config
	accountSvc      *service.AccountService
	referralSvc     *service.ReferralService
	rewardSvc       *service.RewardService
	withdrawalSvc   *service.WithdrawalService
	notificationSvc *service.NotificationService
	adSvc           *service.AdService
	linkPostSvc     *service.LinkPostService
}

func New(
	cfg *config.Config,
	accountSvc *service.AccountService,
	referralSvc *service.ReferralService,
	rewardSvc *service.RewardService,
	withdrawalSvc *service.WithdrawalService,
	notificationSvc *service.NotificationService,
	adSvc *service.AdService,
	linkPostSvc *service.LinkPostService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		accountSvc:      accountSvc,
		referralSvc:     referralSvc,
		rewardSvc:       rewardSvc,
		withdrawalSvc:   withdrawalSvc,
		notificationSvc: notificationSvc,
		adSvc:           adSvc,
		linkPostSvc:     linkPostSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
