package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const purchaseDateLayout = "2006-01-02 15:04:05"

// PurchaseRequest defines the structure for purchase creation requests.
// PurchaseDate uses the "2006-01-02 15:04:05" layout.
type PurchaseRequest struct {
	CustomerID   uint    `json:"customer_id" validate:"required"`
	PurchaseDate string  `json:"purchase_date" validate:"required"`
	TotalAmount  float64 `json:"total_amount" validate:"required,gte=0"`
}

// CreatePurchase handles creating a new purchase header
func CreatePurchase(c echo.Context) error {
	log := logger.FromContext(c)

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	purchaseDate, err := time.Parse(purchaseDateLayout, req.PurchaseDate)
	if err != nil {
		log.Warn("Invalid purchase date",
			zap.String("purchase_date", req.PurchaseDate),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid purchase_date, expected YYYY-MM-DD HH:MM:SS",
		})
	}

	purchase := model.Purchase{
		CustomerID:   req.CustomerID,
		PurchaseDate: purchaseDate,
		TotalAmount:  req.TotalAmount,
	}

	result := database.GetDB().Create(&purchase)
	if result.Error != nil {
		log.Error("Failed to create purchase",
			zap.Uint("customer_id", req.CustomerID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create purchase",
		})
	}

	log.Info("Purchase created successfully",
		zap.Uint("purchase_id", purchase.ID),
		zap.Uint("customer_id", purchase.CustomerID))
	return c.JSON(http.StatusCreated, purchase)
}
