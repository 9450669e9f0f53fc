package walletRoutes

import (
	controllers "github.com/rashinkp/byway-sub000/controllers/wallet"
	"github.com/rashinkp/byway-sub000/middleware"
	validators "github.com/rashinkp/byway-sub000/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

func SetupWalletRoutes(app *fiber.App) {
	walletGroup := app.Group("/wallet", middleware.JWTMiddleware)

	walletGroup.Get("/balance", controllers.GetBalance)
	walletGroup.Post("/deposit", validators.Deposit(), controllers.Deposit)
	walletGroup.Get("/transactions", validators.Pagination(), controllers.TransactionHistory)
}
