package controllers

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rashinkp/byway-sub000/database"
	"github.com/rashinkp/byway-sub000/middleware"
	"github.com/rashinkp/byway-sub000/models"
	cartModels "github.com/rashinkp/byway-sub000/models/cart"
	courseModels "github.com/rashinkp/byway-sub000/models/course"
	"github.com/rashinkp/byway-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errDuplicatePayment aborts a checkout whose gateway reference already paid
// for another order.
var errDuplicatePayment = errors.New("payment reference already used")

// newOrderNumber generates a readable unique order reference
func newOrderNumber() string {
	source := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("ORD-%d-%04d", time.Now().Unix(), source.Intn(10000))
}

// Checkout turns the user's cart into a paid order. Payment is taken
// from the wallet or verified against the gateway reference supplied
// by the client.
func Checkout(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	request := c.Locals("validatedCheckout").(*struct {
		PaymentMethod string `json:"paymentMethod"`
		PaymentID     string `json:"paymentId"`
	})

	var items []cartModels.CartItem
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&items).Error; err != nil || len(items) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your cart is empty!", nil)
	}

	// Drop items the user got enrolled in since adding them
	lines := make([]cartModels.CartItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		var enrollment courseModels.Enrollment
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, item.CourseID, false).First(&enrollment).Error; err == nil {
			continue
		}
		lines = append(lines, item)
		total += item.PriceSnapshot
	}
	if len(lines) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already enrolled in all cart courses!", nil)
	}

	paymentID := request.PaymentID
	gateway := ""
	paymentRaw := ""

	switch request.PaymentMethod {
	case cartModels.PaymentMethodWallet:
		if user.MainBalance < total {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Insufficient wallet balance!", nil)
		}
	case cartModels.PaymentMethodStripe:
		if paymentID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment reference is required!", nil)
		}
		gateway = "stripe"
		paid, raw, err := utils.VerifyStripePayment(paymentID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to verify payment with Stripe!", nil)
		}
		paymentRaw = raw
		if paid < total {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment amount does not cover the order total!", nil)
		}
	case cartModels.PaymentMethodPayPal:
		if paymentID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment reference is required!", nil)
		}
		gateway = "paypal"
		paid, raw, err := utils.CapturePayPalOrder(paymentID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to capture PayPal order!", nil)
		}
		paymentRaw = raw
		if paid < total {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment amount does not cover the order total!", nil)
		}
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unsupported payment method!", nil)
	}

	var paymentRef *string
	if paymentID != "" {
		paymentRef = &paymentID
	}

	order := cartModels.Order{
		UserID:        userID,
		OrderNumber:   newOrderNumber(),
		TotalAmount:   total,
		PaymentMethod: request.PaymentMethod,
		PaymentID:     paymentRef,
		Status:        cartModels.OrderStatusPaid,
	}

	balanceBefore := user.MainBalance

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		// A gateway reference buys exactly one order. The unique index on
		// payment_id backstops this check under concurrency.
		if paymentRef != nil {
			var count int64
			if err := tx.Model(&cartModels.Order{}).Where("payment_id = ?", paymentID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errDuplicatePayment
			}
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			var course courseModels.Course
			if err := tx.Where("id = ?", line.CourseID).First(&course).Error; err != nil {
				return err
			}

			orderItem := cartModels.OrderItem{
				OrderID:     order.ID,
				CourseID:    line.CourseID,
				CourseTitle: course.Title,
				Price:       line.PriceSnapshot,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			enrollment := courseModels.Enrollment{
				UserID:       userID,
				CourseID:     line.CourseID,
				Status:       "ENROLLED",
				AccessStatus: "ACTIVE",
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}

			// Clear the cart line
			if err := tx.Model(&cartModels.CartItem{}).Where("id = ?", line.ID).Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		if request.PaymentMethod == cartModels.PaymentMethodWallet {
			user.MainBalance -= total
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("main_balance", user.MainBalance).Error; err != nil {
				return err
			}
		}

		walletTx := models.WalletTransaction{
			UserID:             userID,
			TransactionType:    models.TransactionTypePurchase,
			Amount:             total,
			BalanceBefore:      balanceBefore,
			BalanceAfter:       user.MainBalance,
			Status:             models.TransactionStatusCompleted,
			Description:        fmt.Sprintf("Purchase of %d course(s)", len(lines)),
			PaymentGateway:     gateway,
			PaymentID:          paymentID,
			PaymentStatus:      "success",
			PaymentResponseRaw: paymentRaw,
			ReferenceType:      "order",
			ReferenceID:        order.ID,
			ReferenceName:      order.OrderNumber,
			TransactionDate:    time.Now(),
		}
		return tx.Create(&walletTx).Error
	})
	if errors.Is(err, errDuplicatePayment) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This payment has already been used!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Checkout failed!", nil)
	}

	utils.SendOrderEmail(user.Email, user.Name, order.OrderNumber, total)

	database.Database.Db.Preload("Items").First(&order, order.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Checkout completed successfully!", order)
}

// GetOrderHistory lists the user's past orders
func GetOrderHistory(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var orders []cartModels.Order
	if err := database.Database.Db.Preload("Items").Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
		"orders": orders,
		"total":  len(orders),
	})
}
