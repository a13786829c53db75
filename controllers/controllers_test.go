package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidkiarie/trendora-api/initializers"
	"github.com/davidkiarie/trendora-api/middlewares"
	"github.com/davidkiarie/trendora-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Color{},
		&models.Size{},
		&models.Product{},
		&models.ProductImage{},
		&models.Banner{},
		&models.TrendingItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	initializers.DB = db
	return db
}

// newTestRouter wires the handlers under test the same way routes/ does,
// without importing the routes package from inside this one.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	server := gin.New()

	server.POST("/auth/signup", Signup)
	server.POST("/auth/login", Login)

	server.GET("/products", GetProducts)
	server.GET("/products/:id", GetProduct)
	server.GET("/colors", GetColors)
	server.GET("/sizes", GetSizes)
	server.GET("/banners", GetBanners)
	server.GET("/trending", GetTrendingItems)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	admin.POST("/products", CreateProduct)
	admin.PUT("/products/:id", UpdateProduct)
	admin.DELETE("/products/:id", DeleteProduct)
	admin.POST("/colors", CreateColor)
	admin.DELETE("/colors/:id", DeleteColor)
	admin.POST("/sizes", CreateSize)
	admin.DELETE("/sizes/:id", DeleteSize)

	cart := server.Group("/cart", middlewares.RequireAuth())
	cart.GET("/", GetCart)
	cart.GET("/count/", GetCartCount)
	cart.POST("/add/", AddCartItem)
	cart.POST("/update/:itemId/", UpdateCartItem)
	cart.DELETE("/remove/:itemId/", RemoveCartItem)

	server.POST("/checkout/", middlewares.RequireAuth(), Checkout)
	server.GET("/orders/", middlewares.RequireAuth(), GetOrders)
	server.GET("/track-orders/", middlewares.RequireAuth(), GetTrackedOrders)
	server.PATCH("/orders/:orderId/status", middlewares.RequireAuth(), middlewares.RequireAdmin(), UpdateOrderStatus)

	server.POST("/contact/", SubmitContactForm)

	return server
}

func performRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func createTestUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Fullname: "Test User", Email: email, Password: "not-a-real-hash", Role: role}
	require.NoError(t, initializers.DB.Create(&user).Error)
	require.NoError(t, initializers.DB.Create(&models.Cart{UserID: user.ID}).Error)

	token, err := generateJWT(user)
	require.NoError(t, err)
	return user, token
}

func createTestVariants(t *testing.T) (models.Size, models.Color) {
	t.Helper()

	size := models.Size{Value: "41"}
	require.NoError(t, initializers.DB.Create(&size).Error)
	color := models.Color{Name: "Navy", Hex: "#1a2b3c"}
	require.NoError(t, initializers.DB.Create(&color).Error)
	return size, color
}

func createTestProduct(t *testing.T, name string, price string, size models.Size, color models.Color) models.Product {
	t.Helper()

	priceDec, err := decimal.NewFromString(price)
	require.NoError(t, err)

	product := models.Product{
		Name:     name,
		SubName:  "Runner",
		Price:    priceDec,
		Category: models.CategoryMen,
		Colors:   []models.Color{color},
		Sizes:    []models.Size{size},
	}
	require.NoError(t, initializers.DB.Create(&product).Error)
	return product
}
