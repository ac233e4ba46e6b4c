package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/router"
	"github.com/quickbite/backend/storage"
	"github.com/quickbite/backend/utils"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Seller{},
		&models.DeliveryPartner{},
		&models.Category{},
		&models.FoodItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryAssignment{},
		&models.Payment{},
		&models.Review{},
	))

	uploadDir := t.TempDir()
	images, err := storage.NewLocalStore(uploadDir, "http://test")
	require.NoError(t, err)

	return router.SetupRouter(db, nil, images, uploadDir), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, utils.JSONResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.JSONResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func registerCustomer(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/register/customer", "", gin.H{
		"name":     "Asha",
		"email":    email,
		"password": "secret123",
		"address":  "5 Rose Street",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	return data["token"].(string)
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	r, _ := newTestServer(t)

	token := registerCustomer(t, r, "flow@test.com")
	require.NotEmpty(t, token)

	// Duplicate registration is rejected.
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/auth/register/customer", "", gin.H{
		"name":     "Asha",
		"email":    "flow@test.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login with the right role succeeds.
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "flow@test.com",
		"password": "secret123",
		"role":     "customer",
	})
	require.Equal(t, http.StatusOK, w.Code)
	loginToken := resp.Data.(map[string]interface{})["token"].(string)

	// Wrong password fails.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "flow@test.com",
		"password": "wrong",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The email is not registered as a seller.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "flow@test.com",
		"password": "secret123",
		"role":     "seller",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/profile", loginToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := resp.Data.(map[string]interface{})
	assert.Equal(t, "flow@test.com", profile["email"])
	assert.Equal(t, "customer", profile["role"])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGatesSellerRoutes(t *testing.T) {
	r, _ := newTestServer(t)

	customerToken := registerCustomer(t, r, "gate@test.com")

	// A customer token cannot reach seller routes.
	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/seller/orders", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCartAndCheckoutOverHTTP(t *testing.T) {
	r, db := newTestServer(t)

	token := registerCustomer(t, r, "http-cart@test.com")

	seller := models.Seller{Name: "HTTP Kitchen", Email: "httpkitchen@test.com", Password: "x", Status: models.SellerOpen}
	require.NoError(t, db.Create(&seller).Error)
	category := models.Category{Name: "Mains", SellerID: seller.ID}
	require.NoError(t, db.Create(&category).Error)
	food := models.FoodItem{Name: "Ramen", CategoryID: category.ID, SellerID: seller.ID, Price: 180, IsAvailable: true}
	require.NoError(t, db.Create(&food).Error)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", token, gin.H{
		"food_item_id": food.ID,
		"quantity":     2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 2, cart["total_items"])
	assert.EqualValues(t, 360, cart["total_amount"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/orders", token, gin.H{
		"delivery_address": "5 Rose Street",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := resp.Data.(map[string]interface{})
	assert.Equal(t, "placed", order["status"])
	assert.EqualValues(t, 360, order["subtotal"])
	assert.InDelta(t, 418, order["total_price"].(float64), 0.001) // 360 + 40 fee + 18 tax
}

func TestPublicBrowsingNeedsNoToken(t *testing.T) {
	r, db := newTestServer(t)

	seller := models.Seller{Name: "Open Kitchen", Email: "openkitchen@test.com", Password: "x", Status: models.SellerOpen}
	require.NoError(t, db.Create(&seller).Error)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/restaurants?status=open", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sellers := resp.Data.([]interface{})
	assert.Len(t, sellers, 1)
}
