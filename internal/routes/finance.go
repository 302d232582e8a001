package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runFinanceRouter(secure *echo.Group, transactionService services.TransactionServiceInterface, logger *zap.Logger) {
	transactionController := controllers.NewTransactionController(transactionService, logger)

	// the fiscal council reads the ledger it oversees but never writes to it
	finance := authz.RequireAnyPolicy(logger, authz.PolicyFinance, authz.PolicyConselhoFiscal)
	secure.GET("/finance/transactions", transactionController.GetTransactions, finance)
	secure.GET("/finance/transactions/:id", transactionController.FindTransaction, finance)
	secure.GET("/finance/balance", transactionController.GetBalance, finance)

	tesouraria := authz.RequirePolicy(authz.PolicyTesouraria, logger)
	secure.POST("/finance/transactions", transactionController.CreateTransaction, tesouraria)
	secure.PUT("/finance/transactions/:id", transactionController.UpdateTransaction, tesouraria)
	secure.DELETE("/finance/transactions/:id", transactionController.DeleteTransaction, tesouraria)
}
