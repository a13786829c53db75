package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Trendora API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

CATALOG
- GET "/products" - Get all products (optional ?category=men|women|kids)
- GET "/products/:id" - Get product by ID
- GET "/colors" - Get all colors
- GET "/sizes" - Get all sizes
- GET "/banners" - Get all banners
- GET "/trending" - Get trending items

CART
- GET "/cart/" - Get cart with computed total
- GET "/cart/count/" - Get cart item count
- POST "/cart/add/" - Add item to cart
- POST "/cart/update/:itemId/" - Update a cart item
- DELETE "/cart/remove/:itemId/" - Remove a cart item

ORDERS
- POST "/checkout/" - Create a new order
- GET "/orders/" - Get your orders
- GET "/track-orders/" - Track undelivered orders

CONTACT
- POST "/contact/" - Submit the contact form`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
