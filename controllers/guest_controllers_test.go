package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/services"
	"github.com/bigboyapp/restaurant-backend/utils"
)

func guestTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewGuestController(db, services.NewOrderService(db, services.NewLoyaltyService(db)))
	guest := r.Group("/api/v1/guest")
	guest.POST("/login", ctrl.Login)
	guest.POST("/refresh-token", ctrl.RefreshToken)
	guest.GET("/me", middlewares.GuestAuth(db), ctrl.Me)
	guest.POST("/orders", middlewares.GuestAuth(db), ctrl.CreateOrders)
	guest.GET("/orders", middlewares.GuestAuth(db), ctrl.ListOrders)
	return r
}

func seedTableWithQR(t *testing.T, db *gorm.DB, slug string, status models.TenantStatus) (*models.Tenant, *models.Table) {
	t.Helper()
	tenant := models.Tenant{
		Name:   slug,
		Slug:   slug,
		Email:  slug + "@example.com",
		Status: status,
	}
	assert.NoError(t, db.Create(&tenant).Error)
	table := models.Table{
		Number:   4,
		TenantID: tenant.ID,
		Capacity: 4,
		Status:   models.TableAvailable,
		Token:    utils.GenerateQRToken(),
	}
	assert.NoError(t, db.Create(&table).Error)
	return &tenant, &table
}

func TestGuestLoginBootstrapsSessionFromQRToken(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)
	tenant, table := seedTableWithQR(t, db, "warung-qr", models.TenantActive)

	w := postJSON(t, r, "/api/v1/guest/login", gin.H{
		"token": table.Token,
		"name":  "Meja Empat",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])

	var guest models.Guest
	assert.NoError(t, db.First(&guest).Error)
	assert.Equal(t, tenant.ID, guest.TenantID)
	assert.Equal(t, "Meja Empat", guest.Name)
	assert.Equal(t, table.Number, *guest.TableNumber)
	assert.NotNil(t, guest.RefreshToken)
}

func TestGuestLoginRejectsUnknownQRToken(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)

	w := postJSON(t, r, "/api/v1/guest/login", gin.H{
		"token": "not-a-real-token",
		"name":  "Anon",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuestLoginRejectsSuspendedRestaurant(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)
	_, table := seedTableWithQR(t, db, "warung-beku", models.TenantSuspended)

	w := postJSON(t, r, "/api/v1/guest/login", gin.H{
		"token": table.Token,
		"name":  "Anon",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuestRefreshRotationInvalidatesOldToken(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)
	_, table := seedTableWithQR(t, db, "warung-rotasi", models.TenantActive)

	w := postJSON(t, r, "/api/v1/guest/login", gin.H{
		"token": table.Token,
		"name":  "Tamu",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	oldRefresh, _ := decodeData(t, w)["refresh_token"].(string)

	w = postJSON(t, r, "/api/v1/guest/refresh-token", gin.H{"refresh_token": oldRefresh}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	newRefresh, _ := decodeData(t, w)["refresh_token"].(string)
	assert.NotEqual(t, oldRefresh, newRefresh)

	// The guest row now stores the rotated token only.
	w = postJSON(t, r, "/api/v1/guest/refresh-token", gin.H{"refresh_token": oldRefresh}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuestOrdersForOwnTableOnly(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)
	tenant, table := seedTableWithQR(t, db, "warung-mandiri", models.TenantActive)

	dish := models.Dish{TenantID: tenant.ID, Name: "Es Campur", Price: 20_000, Status: models.DishAvailable}
	assert.NoError(t, db.Create(&dish).Error)

	w := postJSON(t, r, "/api/v1/guest/login", gin.H{
		"token": table.Token,
		"name":  "Tamu Mandiri",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	access, _ := decodeData(t, w)["access_token"].(string)
	authHeader := map[string]string{"Authorization": "Bearer " + access}

	// Item-level table/customer overrides are ignored in the guest flow.
	otherTable := 99
	w = postJSON(t, r, "/api/v1/guest/orders", gin.H{
		"orders": []gin.H{
			{"dish_id": dish.ID, "quantity": 2, "table_number": otherTable, "customer_id": 1},
		},
	}, authHeader)
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.First(&order).Error)
	assert.Equal(t, table.Number, *order.TableNumber)
	assert.NotNil(t, order.GuestID)
	assert.Nil(t, order.CustomerID)

	// The guest sees their own orders.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/guest/orders", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Es Campur")
}

func TestGuestOrderEndpointRejectsCustomerToken(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)

	customer := models.Customer{Name: "Putra", Email: "putra@example.com", Password: "x"}
	assert.NoError(t, db.Create(&customer).Error)
	token, err := utils.GenerateToken(utils.DomainAccess, customer.ID, utils.RoleClaimCustomer, nil, customer.ID)
	assert.NoError(t, err)

	w := postJSON(t, r, "/api/v1/guest/orders", gin.H{
		"orders": []gin.H{{"dish_id": 1, "quantity": 1}},
	}, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuestRefreshRejectsStaffRefreshToken(t *testing.T) {
	db := setupControllerTestDB(t)
	r := guestTestRouter(db)

	token, err := utils.GenerateToken(utils.DomainRefresh, 1, string(models.RoleOwner), nil, 0)
	assert.NoError(t, err)

	w := postJSON(t, r, "/api/v1/guest/refresh-token", gin.H{"refresh_token": token}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
