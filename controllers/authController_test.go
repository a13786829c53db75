package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/davidkiarie/trendora-api/initializers"
	"github.com/davidkiarie/trendora-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupPayload = `{"fullname": "Jane Doe", "email": "jane@example.com", "password": "s3cret-pass"}`

func TestSignupCreatesUserWithCart(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter(t)

	recorder := performRequest(router, http.MethodPost, "/auth/signup", signupPayload, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var user models.User
	require.NoError(t, initializers.DB.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	var cart models.Cart
	require.NoError(t, initializers.DB.Where("user_id = ?", user.ID).First(&cart).Error)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter(t)

	recorder := performRequest(router, http.MethodPost, "/auth/signup", signupPayload, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/auth/signup", signupPayload, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var count int64
	require.NoError(t, initializers.DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSignupValidation(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing fullname", body: `{"email": "jane@example.com", "password": "s3cret-pass"}`},
		{name: "malformed email", body: `{"fullname": "Jane Doe", "email": "nope", "password": "s3cret-pass"}`},
		{name: "short password", body: `{"fullname": "Jane Doe", "email": "jane@example.com", "password": "short"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := performRequest(router, http.MethodPost, "/auth/signup", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter(t)

	recorder := performRequest(router, http.MethodPost, "/auth/signup", signupPayload, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/auth/login",
		`{"email": "jane@example.com", "password": "s3cret-pass"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, decodeBody(t, recorder)["token"])

	recorder = performRequest(router, http.MethodPost, "/auth/login",
		`{"email": "jane@example.com", "password": "wrong-pass"}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/auth/login",
		`{"email": "nobody@example.com", "password": "s3cret-pass"}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// TestShoppingFlow walks the happy path: sign up, log in, fill the cart,
// check out, then find the order in the history.
func TestShoppingFlow(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter(t)

	size, color := createTestVariants(t)
	product := createTestProduct(t, "Air Strider", "59.99", size, color)

	recorder := performRequest(router, http.MethodPost, "/auth/signup", signupPayload, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(router, http.MethodPost, "/auth/login",
		`{"email": "jane@example.com", "password": "s3cret-pass"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	token := decodeBody(t, recorder)["token"].(string)

	addBody := fmt.Sprintf(`{"product_id": %d, "size_id": %d, "color_id": %d, "quantity": 2}`,
		product.ID, size.ID, color.ID)
	recorder = performRequest(router, http.MethodPost, "/cart/add/", addBody, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(router, http.MethodGet, "/cart/", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "119.98", decodeBody(t, recorder)["total_price"])

	checkoutBody := fmt.Sprintf(`{
		"total_price": "119.98",
		"shipping_address": {"name": "Jane Doe", "city": "Nairobi"},
		"items": [
			{"product_id": %d, "product_name": "Air Strider", "sub_name": "Runner", "unit_price": "59.99", "quantity": 2, "size": "41", "color": "Navy"}
		]
	}`, product.ID)
	recorder = performRequest(router, http.MethodPost, "/checkout/", checkoutBody, token)
	require.Equal(t, http.StatusCreated, recorder.Code)
	orderNumber := decodeBody(t, recorder)["order_number"]

	recorder = performRequest(router, http.MethodGet, "/orders/", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	orders := decodeBody(t, recorder)["orders"].([]any)
	require.Len(t, orders, 1)
	placed := orders[0].(map[string]any)
	assert.Equal(t, orderNumber, placed["order_number"])
	assert.Equal(t, models.OrderStatusPending, placed["status"])
	assert.Len(t, placed["items"].([]any), 1)
}
