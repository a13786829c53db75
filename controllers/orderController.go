package controllers

import (
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/davidkiarie/trendora-api/initializers"
	"github.com/davidkiarie/trendora-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxOrderNumberAttempts bounds the regenerate-on-collision loop at checkout.
const maxOrderNumberAttempts = 5

func generateOrderNumber() string {
	uid := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(uid[:]))[:6]
}

// newOrderNumber is swapped out in tests to force collisions.
var newOrderNumber = generateOrderNumber

// Checkout turns the client's checkout payload into an order plus its
// denormalized line items. The order and all items are written in one
// transaction, and the order number is regenerated on a uniqueness collision.
func Checkout(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input struct {
		TotalPrice      decimal.Decimal    `json:"total_price"`
		ShippingAddress datatypes.JSON     `json:"shipping_address"`
		Items           []models.OrderItem `json:"items"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(input.Items) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order must contain at least one item")
		return
	}
	if !input.TotalPrice.IsPositive() {
		sendErrorResponse(ctx, http.StatusBadRequest, "Total price must be greater than zero")
		return
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := models.Order{
		UserID:          userID,
		TotalPrice:      input.TotalPrice,
		ShippingAddress: input.ShippingAddress,
		Status:          models.OrderStatusPending,
		PaymentStatus:   "Pending",
	}

	created := false
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		order.OrderNumber = newOrderNumber()
		err := tx.Create(&order).Error
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		tx.Rollback()
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}
	if !created {
		tx.Rollback()
		log.Println("Order number collision persisted after", maxOrderNumberAttempts, "attempts")
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	for _, item := range input.Items {
		item.ID = 0
		item.OrderID = order.ID
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			log.Println("Order item creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order items")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Checkout commit error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"order_number": order.OrderNumber,
		"id":           order.ID,
	})
}

// GetOrders returns all of the caller's orders, newest first.
func GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetTrackedOrders returns the caller's orders that are still in flight,
// newest first. Cancelled orders are included on purpose so the user sees the
// cancellation; only Delivered is excluded.
func GetTrackedOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("Items").
		Where("user_id = ? AND status <> ?", userID, models.OrderStatusDelivered).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus moves an order along its status lifecycle. Transitions
// outside the allowed graph are rejected.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	if !models.IsValidOrderStatus(orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	if !order.CanTransitionTo(orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest,
			"Cannot move order from "+order.Status+" to "+orderStatusData.Status)
		return
	}

	if result := initializers.DB.Model(&order).Update("status", orderStatusData.Status); result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}
