package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/router"
	"github.com/bigboyapp/restaurant-backend/utils"
)

func setupIntegrationEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	autoMigrate(db)
	return db, router.SetupRouter(db)
}

type apiClient struct {
	t      *testing.T
	r      *gin.Engine
	token  string
	tenant string
}

func (a *apiClient) do(method, path string, payload interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(a.t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	if a.tenant != "" {
		req.Header.Set("X-Tenant-ID", a.tenant)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp.Data.(map[string]interface{})
	return data
}

// Walks the whole flow a restaurant goes through on day one: sign up, set up
// a table and a menu, take orders for a registered customer, settle the
// table, and watch loyalty state land on the customer's side.
func TestRestaurantOrderAndLoyaltyFlow(t *testing.T) {
	db, r := setupIntegrationEnv(t)

	anon := &apiClient{t: t, r: r}

	// Restaurant signs up; the owner account shares the tenant email.
	w := anon.do(http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Warung Integrasi",
		"email":    "owner@integrasi.example",
		"password": "rahasia-1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	tenantSlug, _ := dataOf(t, w)["slug"].(string)
	assert.Equal(t, "warung-integrasi", tenantSlug)

	w = anon.do(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "owner@integrasi.example",
		"password": "rahasia-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	ownerToken, _ := dataOf(t, w)["access_token"].(string)

	owner := &apiClient{t: t, r: r, token: ownerToken, tenant: tenantSlug}

	// Owner sets up a table and a dish.
	w = owner.do(http.MethodPost, "/api/v1/tables", gin.H{"number": 9, "capacity": 4})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = owner.do(http.MethodPost, "/api/v1/dishes", gin.H{
		"name":  "Nasi Goreng Spesial",
		"price": 75_000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	dishID := uint(dataOf(t, w)["id"].(float64))

	// A customer registers through the mobile surface.
	w = anon.do(http.MethodPost, "/api/v1/customer/register", gin.H{
		"name":     "Putri",
		"email":    "putri@example.com",
		"password": "rahasia-2",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	customerID := uint(dataOf(t, w)["id"].(float64))

	w = anon.do(http.MethodPost, "/api/v1/customer/login", gin.H{
		"email":    "putri@example.com",
		"password": "rahasia-2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	customerToken, _ := dataOf(t, w)["access_token"].(string)

	// Staff takes two orders for the table, one linked to the customer.
	w = owner.do(http.MethodPost, "/api/v1/orders", gin.H{
		"table_number": 9,
		"orders": []gin.H{
			{"dish_id": dishID, "quantity": 2, "customer_id": customerID},
			{"dish_id": dishID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Catalog edits after ordering must not move the ordered price.
	assert.NoError(t, db.Model(&models.Dish{}).Where("id = ?", dishID).
		Update("price", 90_000).Error)

	// Settle the table.
	w = owner.do(http.MethodPost, "/api/v1/orders/pay", gin.H{"table_number": 9})
	assert.Equal(t, http.StatusOK, w.Code)

	// Paying twice is a caller error.
	w = owner.do(http.MethodPost, "/api/v1/orders/pay", gin.H{"table_number": 9})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Only the customer-linked order accrues, at the snapshot price:
	// 2 * 75000 spending, 1% points.
	customer := &apiClient{t: t, r: r, token: customerToken}
	w = customer.do(http.MethodGet, "/api/v1/customer/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	me := dataOf(t, w)
	assert.Equal(t, float64(150_000), me["total_spending"])
	assert.Equal(t, float64(1_500), me["points"])
	assert.Equal(t, string(models.TierIron), me["membership_tier"])

	w = customer.do(http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	history := dataOf(t, w)
	assert.Equal(t, float64(1), history["total"])
	items, _ := history["items"].([]interface{})
	if assert.Len(t, items, 1) {
		visit, _ := items[0].(map[string]interface{})
		assert.Equal(t, float64(150_000), visit["total_amount"])
	}

	w = customer.do(http.MethodGet, "/api/v1/membership", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	membership := dataOf(t, w)
	assert.Equal(t, string(models.TierSilver), membership["next_tier"])
	assert.Equal(t, float64(models.SilverThreshold-150_000), membership["remaining_to_next_tier"])

	// Staff listing sees both orders paid.
	w = owner.do(http.MethodGet, fmt.Sprintf("/api/v1/orders?status=%s", models.OrderPaid), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), dataOf(t, w)["total"])
}

// A second restaurant's staff must see none of the first restaurant's data.
func TestTenantIsolationAcrossRestaurants(t *testing.T) {
	_, r := setupIntegrationEnv(t)
	anon := &apiClient{t: t, r: r}

	setup := func(name, email string) *apiClient {
		w := anon.do(http.MethodPost, "/api/v1/auth/register", gin.H{
			"name": name, "email": email, "password": "rahasia-1",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		slug, _ := dataOf(t, w)["slug"].(string)

		w = anon.do(http.MethodPost, "/api/v1/auth/login", gin.H{
			"email": email, "password": "rahasia-1",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		token, _ := dataOf(t, w)["access_token"].(string)
		return &apiClient{t: t, r: r, token: token, tenant: slug}
	}

	ownerA := setup("Resto A", "a@example.com")
	ownerB := setup("Resto B", "b@example.com")

	w := ownerA.do(http.MethodPost, "/api/v1/dishes", gin.H{"name": "Rendang", "price": 80_000})
	assert.Equal(t, http.StatusCreated, w.Code)
	dishID := uint(dataOf(t, w)["id"].(float64))

	// B cannot order A's dish: scoped lookup reads as not found.
	w = ownerB.do(http.MethodPost, "/api/v1/orders", gin.H{
		"orders": []gin.H{{"dish_id": dishID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A's staff token presented under B's tenant context is rejected.
	crossed := &apiClient{t: t, r: r, token: ownerA.token, tenant: ownerB.tenant}
	w = crossed.do(http.MethodPost, "/api/v1/dishes", gin.H{"name": "Sate", "price": 40_000})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
