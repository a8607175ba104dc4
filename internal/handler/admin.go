package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/middleware"
	"github.com/Philipkwofie/referwin/internal/model"
	"github.com/Philipkwofie/referwin/internal/repository"
	"github.com/Philipkwofie/referwin/internal/service"
)

// AdminHandler handles the admin panel API.
type AdminHandler struct {
	adminSvc        *service.AdminService
	referralSvc     *service.ReferralService
	withdrawalSvc   *service.WithdrawalService
	notificationSvc *service.NotificationService
	adSvc           *service.AdService
	linkPostSvc     *service.LinkPostService
}

func NewAdminHandler(
	adminSvc *service.AdminService,
	referralSvc *service.ReferralService,
	withdrawalSvc *service.WithdrawalService,
	notificationSvc *service.NotificationService,
	adSvc *service.AdService,
	linkPostSvc *service.LinkPostService,
) *AdminHandler {
	return &AdminHandler{
		adminSvc:        adminSvc,
		referralSvc:     referralSvc,
		withdrawalSvc:   withdrawalSvc,
		notificationSvc: notificationSvc,
		adSvc:           adSvc,
		linkPostSvc:     linkPostSvc,
	}
}

// --- Sessions ---

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username and password are required",
		})
	}

	admin, token, err := h.adminSvc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "server error during admin login",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"role":    admin.Role,
	})
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if err := h.adminSvc.Logout(c.Context(), middleware.GetAdminID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to log out",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged out successfully",
	})
}

func (h *AdminHandler) SessionCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "admin session is active",
	})
}

func (h *AdminHandler) CheckRole(c *fiber.Ctx) error {
	admin := middleware.GetAdmin(c)
	return c.JSON(fiber.Map{
		"role": admin.Role,
	})
}

func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.adminSvc.ListAdmins(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch admins",
		})
	}
	return c.JSON(fiber.Map{"admins": admins})
}

// --- Accounts ---

func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.adminSvc.ListAccounts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch users",
		})
	}
	return c.JSON(fiber.Map{"users": accounts})
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.adminSvc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) OnlineAccounts(c *fiber.Ctx) error {
	stats, err := h.adminSvc.OnlineAccounts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch online users",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) ActivateAccount(c *fiber.Ctx) error {
	return h.setActivation(c, true)
}

func (h *AdminHandler) DeactivateAccount(c *fiber.Ctx) error {
	return h.setActivation(c, false)
}

func (h *AdminHandler) setActivation(c *fiber.Ctx, activated bool) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	adminID := middleware.GetAdminID(c)
	if activated {
		err = h.adminSvc.ActivateAccount(c.Context(), adminID, accountID)
	} else {
		err = h.adminSvc.DeactivateAccount(c.Context(), adminID, accountID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update account",
		})
	}

	message := "user deactivated successfully"
	if activated {
		message = "user activated successfully"
	}
	return c.JSON(fiber.Map{"message": message})
}

type RewardRequest struct {
	Amount float64 `json:"amount"`
}

func (h *AdminHandler) RewardAccount(c *fiber.Ctx) error {
	var req RewardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reward amount",
		})
	}

	account, err := h.adminSvc.RewardAccount(c.Context(), middleware.GetAdminID(c), c.Params("username"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid reward amount",
			})
		case errors.Is(err, repository.ErrAccountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to reward user",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("successfully rewarded %s with %.2f", account.Username, req.Amount),
	})
}

// --- Referrals ---

func (h *AdminHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	leaderboard, err := h.referralSvc.Leaderboard(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch leaderboard",
		})
	}
	return c.JSON(fiber.Map{"leaderboard": leaderboard})
}

func (h *AdminHandler) GetAccountDownlines(c *fiber.Ctx) error {
	summary, downlines, err := h.referralSvc.ComputeDownlines(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch downlines",
		})
	}

	return c.JSON(fiber.Map{
		"user":      summary,
		"downlines": downlines,
	})
}

// --- Withdrawals ---

func (h *AdminHandler) ListWithdrawals(c *fiber.Ctx) error {
	withdrawals, err := h.withdrawalSvc.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch withdrawals",
		})
	}
	return c.JSON(fiber.Map{"withdrawals": withdrawals})
}

func (h *AdminHandler) PayWithdrawal(c *fiber.Ctx) error {
	withdrawalID, err := uuid.Parse(c.Params("withdrawal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid withdrawal id",
		})
	}

	if _, err := h.withdrawalSvc.MarkPaid(c.Context(), withdrawalID); err != nil {
		switch {
		case errors.Is(err, repository.ErrWithdrawalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "withdrawal not found",
			})
		case errors.Is(err, repository.ErrWithdrawalNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "withdrawal has already been paid",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update withdrawal",
		})
	}

	return c.JSON(fiber.Map{"message": "withdrawal marked as paid"})
}

// --- Ads ---

type AdRequest struct {
	Title    string `json:"title" validate:"required"`
	Platform string `json:"platform"`
	URL      string `json:"url" validate:"required,url"`
	IsActive bool   `json:"is_active"`
}

func (h *AdminHandler) ListAds(c *fiber.Ctx) error {
	ads, err := h.adSvc.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch ads",
		})
	}
	return c.JSON(fiber.Map{"ads": ads})
}

func (h *AdminHandler) CreateAd(c *fiber.Ctx) error {
	var req AdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ad := &model.Ad{
		Title:    req.Title,
		Platform: req.Platform,
		URL:      req.URL,
		IsActive: req.IsActive,
	}
	if err := h.adSvc.Create(c.Context(), ad); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create ad",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "ad created successfully",
		"ad":      ad,
	})
}

func (h *AdminHandler) UpdateAd(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("ad_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid ad id",
		})
	}

	var req AdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ad := &model.Ad{
		ID:       adID,
		Title:    req.Title,
		Platform: req.Platform,
		URL:      req.URL,
		IsActive: req.IsActive,
	}
	if err := h.adSvc.Update(c.Context(), ad); err != nil {
		if errors.Is(err, repository.ErrAdNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "ad not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update ad",
		})
	}

	return c.JSON(fiber.Map{"message": "ad updated successfully"})
}

func (h *AdminHandler) DeleteAd(c *fiber.Ctx) error {
	adID, err := uuid.Parse(c.Params("ad_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid ad id",
		})
	}

	if err := h.adSvc.Delete(c.Context(), adID); err != nil {
		if errors.Is(err, repository.ErrAdNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "ad not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete ad",
		})
	}

	return c.JSON(fiber.Map{"message": "ad deleted successfully"})
}

// --- Link posts ---

type LinkPostRequest struct {
	Day      string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Platform string `json:"platform"`
	Link     string `json:"link" validate:"required,url"`
	AutoPost bool   `json:"auto_post"`
}

func (h *AdminHandler) ListLinkPosts(c *fiber.Ctx) error {
	posts, err := h.linkPostSvc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch link posts",
		})
	}
	return c.JSON(fiber.Map{"linkPosts": posts})
}

func (h *AdminHandler) CreateLinkPost(c *fiber.Ctx) error {
	var req LinkPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	post := &model.LinkPost{
		Day:      req.Day,
		Platform: req.Platform,
		Link:     req.Link,
		AutoPost: req.AutoPost,
	}
	if err := h.linkPostSvc.Create(c.Context(), post); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create link post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "link post created successfully",
		"linkPost": post,
	})
}

func (h *AdminHandler) UpdateLinkPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid link post id",
		})
	}

	var req LinkPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	post := &model.LinkPost{
		ID:       postID,
		Day:      req.Day,
		Platform: req.Platform,
		Link:     req.Link,
		AutoPost: req.AutoPost,
	}
	if err := h.linkPostSvc.Update(c.Context(), post); err != nil {
		if errors.Is(err, repository.ErrLinkPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "link post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update link post",
		})
	}

	return c.JSON(fiber.Map{"message": "link post updated"})
}

func (h *AdminHandler) DeleteLinkPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid link post id",
		})
	}

	if err := h.linkPostSvc.Delete(c.Context(), postID); err != nil {
		if errors.Is(err, repository.ErrLinkPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "link post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete link post",
		})
	}

	return c.JSON(fiber.Map{"message": "link post deleted"})
}

// --- Notifications ---

type BroadcastRequest struct {
	Message string `json:"message"`
}

type IndividualNotificationRequest struct {
	AccountID uuid.UUID `json:"userId"`
	Message   string    `json:"message"`
}

type TrimNotificationsRequest struct {
	KeepCount int `json:"keepCount"`
}

func (h *AdminHandler) SendBroadcast(c *fiber.Ctx) error {
	var req BroadcastRequest
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	recipients, err := h.notificationSvc.Broadcast(c.Context(), req.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to send notification",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "broadcast notification sent to all users",
		"recipients": recipients,
	})
}

func (h *AdminHandler) SendIndividualNotification(c *fiber.Ctx) error {
	var req IndividualNotificationRequest
	if err := c.BodyParser(&req); err != nil || req.AccountID == uuid.Nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user id and message are required",
		})
	}

	if err := h.notificationSvc.Send(c.Context(), req.AccountID, req.Message, nil); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to send message",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "individual message sent successfully",
	})
}

func (h *AdminHandler) ListAllNotifications(c *fiber.Ctx) error {
	notifications, err := h.notificationSvc.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch messages",
		})
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *AdminHandler) NotificationStats(c *fiber.Ctx) error {
	stats, err := h.notificationSvc.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch message stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminHandler) TrimOldNotifications(c *fiber.Ctx) error {
	var req TrimNotificationsRequest
	_ = c.BodyParser(&req)

	deleted, err := h.notificationSvc.TrimOld(c.Context(), req.KeepCount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to clear old notifications",
		})
	}

	return c.JSON(fiber.Map{
		"message": "old notifications cleared successfully",
		"deleted": deleted,
	})
}

// --- Settings ---

type WhatsAppRequest struct {
	Number string `json:"number" validate:"required"`
}

func (h *AdminHandler) GetWhatsAppNumber(c *fiber.Ctx) error {
	number, err := h.adminSvc.GetWhatsAppNumber(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get WhatsApp number",
		})
	}
	return c.JSON(fiber.Map{"number": number})
}

func (h *AdminHandler) SetWhatsAppNumber(c *fiber.Ctx) error {
	var req WhatsAppRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.adminSvc.SetWhatsAppNumber(c.Context(), middleware.GetAdminID(c), req.Number); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update WhatsApp number",
		})
	}

	return c.JSON(fiber.Map{"message": "WhatsApp number updated successfully"})
}

// --- Logs ---

func (h *AdminHandler) GetLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	logs, err := h.adminSvc.GetLogs(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch logs",
		})
	}
	return c.JSON(fiber.Map{"logs": logs})
}
