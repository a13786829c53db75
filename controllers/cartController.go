package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/davidkiarie/trendora-api/initializers"
	"github.com/davidkiarie/trendora-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// getOrCreateCart returns the user's cart, creating an empty one on first
// access. Registration already creates a cart, so this mostly just reads.
func getOrCreateCart(userID uint) (models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	return cart, err
}

// findOwnedCartItem loads a cart item only if it belongs to the given user's
// cart. A valid item id owned by someone else is indistinguishable from an
// unknown id: both come back as gorm.ErrRecordNotFound.
func findOwnedCartItem(userID uint, itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := initializers.DB.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	return item, err
}

func loadCartItem(itemID uint) (models.CartItem, error) {
	var item models.CartItem
	err := initializers.DB.
		Preload("Product").
		Preload("Product.Sizes").
		Preload("Product.Colors").
		Preload("Size").
		Preload("Color").
		First(&item, itemID).Error
	return item, err
}

// GetCart returns the cart with its items and a total computed live from
// current product prices.
func GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	if err := initializers.DB.
		Preload("Items.Product").
		Preload("Items.Product.Sizes").
		Preload("Items.Product.Colors").
		Preload("Items.Size").
		Preload("Items.Color").
		First(&cart, cart.ID).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	totalPrice := decimal.Zero
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		totalPrice = totalPrice.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":          cart.ID,
		"user_id":     cart.UserID,
		"items":       cart.Items,
		"total_price": totalPrice,
	})
}

// GetCartCount returns the sum of the quantities of all items in the cart,
// used for the cart badge.
func GetCartCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	var count int64
	if err := initializers.DB.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count cart items")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"count": count})
}

// AddCartItem adds a (product, size, color) line to the cart. If the same
// combination is already present the quantity is bumped with a single
// database-side increment, so concurrent adds cannot drop an update.
func AddCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		SizeID    uint `json:"size_id" binding:"required"`
		ColorID   uint `json:"color_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Product, size, and color are required")
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	if err := initializers.DB.First(&models.Product{}, input.ProductID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}
	if err := initializers.DB.First(&models.Size{}, input.SizeID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Size not found")
		return
	}
	if err := initializers.DB.First(&models.Color{}, input.ColorID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Color not found")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	lineFilter := initializers.DB.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND size_id = ? AND color_id = ?",
			cart.ID, input.ProductID, input.SizeID, input.ColorID)

	result := lineFilter.UpdateColumn("quantity", gorm.Expr("quantity + ?", input.Quantity))
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	if result.RowsAffected == 0 {
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			SizeID:    input.SizeID,
			ColorID:   input.ColorID,
			Quantity:  input.Quantity,
		}
		err := initializers.DB.Create(&item).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent add of the same line;
			// fall back to the increment.
			err = initializers.DB.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ? AND size_id = ? AND color_id = ?",
					cart.ID, input.ProductID, input.SizeID, input.ColorID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", input.Quantity)).Error
		}
		if err != nil {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add cart item")
			return
		}
	}

	var item models.CartItem
	if err := initializers.DB.
		Preload("Product").
		Preload("Product.Sizes").
		Preload("Product.Colors").
		Preload("Size").
		Preload("Color").
		Where("cart_id = ? AND product_id = ? AND size_id = ? AND color_id = ?",
			cart.ID, input.ProductID, input.SizeID, input.ColorID).
		First(&item).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// UpdateCartItem changes the quantity and/or swaps size or color on a cart
// item the caller owns.
func UpdateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var input struct {
		Quantity *int  `json:"quantity"`
		SizeID   *uint `json:"size_id"`
		ColorID  *uint `json:"color_id"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := findOwnedCartItem(userID, uint(itemID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
		}
		return
	}

	if input.Quantity != nil {
		if *input.Quantity < 1 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		item.Quantity = *input.Quantity
	}
	if input.SizeID != nil {
		if err := initializers.DB.First(&models.Size{}, *input.SizeID).Error; err != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Size not found")
			return
		}
		item.SizeID = *input.SizeID
		item.Size = nil
	}
	if input.ColorID != nil {
		if err := initializers.DB.First(&models.Color{}, *input.ColorID).Error; err != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Color not found")
			return
		}
		item.ColorID = *input.ColorID
		item.Color = nil
	}

	if err := initializers.DB.Save(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusBadRequest, "An item with this size and color is already in the cart")
			return
		}
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart item")
		return
	}

	updated, err := loadCartItem(item.ID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// RemoveCartItem hard-deletes a cart item the caller owns.
func RemoveCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid item ID")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	result := initializers.DB.
		Where("id = ? AND cart_id = ?", itemID, cart.ID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true})
}
