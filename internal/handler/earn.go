package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Philipkwofie/referwin/internal/repository"
	"github.com/Philipkwofie/referwin/internal/service"
)

type EarnAdRequest struct {
	AdID uuid.UUID `json:"adId"`
}

type WithdrawRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) GetActiveAds(c *fiber.Ctx) error {
	ads, err := h.adSvc.ListActive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch ads",
		})
	}
	return c.JSON(fiber.Map{"ads": ads})
}

func (h *Handler) GetTodayLinkPost(c *fiber.Ctx) error {
	post, err := h.linkPostSvc.Today(c.Context(), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrLinkPostNotFound) {
			return c.JSON(fiber.Map{"linkPost": nil})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch link post",
		})
	}
	return c.JSON(fiber.Map{"linkPost": post})
}

// EarnFromAd grants the ad-watch reward, once per ad per UTC day.
func (h *Handler) EarnFromAd(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	var req EarnAdRequest
	if err := c.BodyParser(&req); err != nil || req.AdID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ad id is required",
		})
	}

	amount, balance, err := h.rewardSvc.ClaimAdReward(c.Context(), accountID, req.AdID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateClaim):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "you have already earned from this ad today",
			})
		case errors.Is(err, repository.ErrAdNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "ad not found",
			})
		case errors.Is(err, repository.ErrAccountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		case errors.Is(err, service.ErrAdInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "ad is not active",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "error processing earnings",
		})
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Ad watched! You earned %s %.2f!", h.cfg.Rewards.Currency, amount),
		"earned":   amount,
		"earnings": balance,
	})
}

// EarnFromLink grants the daily link-view reward, once per UTC day.
func (h *Handler) EarnFromLink(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	amount, balance, err := h.rewardSvc.ClaimLinkReward(c.Context(), accountID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateClaim):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "you have already earned from the daily link today",
			})
		case errors.Is(err, repository.ErrAccountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "error processing link earnings",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "link viewed successfully",
		"earned":   amount,
		"earnings": balance,
	})
}

// RequestWithdrawal debits the balance and queues a pending payout.
func (h *Handler) RequestWithdrawal(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	withdrawal, err := h.withdrawalSvc.Request(c.Context(), accountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid withdrawal amount",
			})
		case errors.Is(err, repository.ErrInsufficientBalance):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "insufficient balance",
			})
		case errors.Is(err, repository.ErrAccountNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process withdrawal",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "withdrawal request submitted successfully",
		"withdrawal": withdrawal,
	})
}

func (h *Handler) GetWithdrawals(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("account_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid account id",
		})
	}

	withdrawals, err := h.withdrawalSvc.ListForAccount(c.Context(), accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch withdrawals",
		})
	}

	return c.JSON(fiber.Map{"withdrawals": withdrawals})
}
