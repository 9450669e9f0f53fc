package controllers

import (
	"fmt"
	"time"

	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	"github.com/rashinkp/byway-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetBalance returns the user's wallet balance
func GetBalance(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Balance fetched successfully!", fiber.Map{
		"balance": user.MainBalance,
	})
}

// Deposit credits the wallet after verifying the gateway payment. The
// same gateway reference can only be credited once.
func Deposit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	request := c.Locals("validatedDeposit").(*struct {
		Gateway   string `json:"gateway"`
		PaymentID string `json:"paymentId"`
	})

	// Idempotency on the gateway reference
	var existing models.WalletTransaction
	if err := database.Database.Db.Where("payment_id = ? AND is_deleted = ?", request.PaymentID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This payment has already been credited!", nil)
	}

	var amount float64
	var raw string
	var err error
	switch request.Gateway {
	case "stripe":
		amount, raw, err = utils.VerifyStripePayment(request.PaymentID)
	case "paypal":
		amount, raw, err = utils.CapturePayPalOrder(request.PaymentID)
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported payment gateway!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to verify payment!", nil)
	}
	if amount <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment amount must be positive!", nil)
	}

	balanceBefore := user.MainBalance
	balanceAfter := balanceBefore + amount

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("main_balance", balanceAfter).Error; err != nil {
			return err
		}

		walletTx := models.WalletTransaction{
			UserID:             userID,
			TransactionType:    models.TransactionTypeDeposit,
			Amount:             amount,
			BalanceBefore:      balanceBefore,
			BalanceAfter:       balanceAfter,
			Status:             models.TransactionStatusCompleted,
			Description:        fmt.Sprintf("Wallet deposit via %s", request.Gateway),
			PaymentGateway:     request.Gateway,
			PaymentID:          request.PaymentID,
			PaymentStatus:      "success",
			PaymentResponseRaw: raw,
			TransactionDate:    time.Now(),
		}
		return tx.Create(&walletTx).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to credit wallet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet credited successfully!", fiber.Map{
		"balance": balanceAfter,
		"amount":  amount,
	})
}

// TransactionHistory lists the user's wallet transactions with pagination
func TransactionHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	request := c.Locals("validatedPagination").(*struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	})

	offset := (request.Page - 1) * request.Limit

	var total int64
	database.Database.Db.Model(&models.WalletTransaction{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&total)

	var transactions []models.WalletTransaction
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("transaction_date desc").Limit(request.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch transactions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Transactions fetched successfully!", fiber.Map{
		"transactions": transactions,
		"total":        total,
		"page":         request.Page,
		"limit":        request.Limit,
	})
}
