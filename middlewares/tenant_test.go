package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

func setupMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}, &models.Account{}, &models.Customer{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTenant(t *testing.T, db *gorm.DB, slug string, status models.TenantStatus) *models.Tenant {
	t.Helper()
	tenant := models.Tenant{
		Name:   slug,
		Slug:   slug,
		Email:  slug + "@example.com",
		Status: status,
	}
	assert.NoError(t, db.Create(&tenant).Error)
	return &tenant
}

// tenantProbe reports the resolved tenant id, or 0 when nothing attached.
func tenantProbe(db *gorm.DB, path string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TenantResolver(db))
	r.GET(path, func(c *gin.Context) {
		var id uint
		if tenant, ok := CurrentTenant(c); ok {
			id = tenant.ID
		}
		utils.RespondJSON(c, http.StatusOK, strconv.FormatUint(uint64(id), 10), nil)
	})
	return r
}

func resolvedTenantID(t *testing.T, r *gin.Engine, path, hint string) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if hint != "" {
		req.Header.Set("X-Tenant-ID", hint)
	}
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var body utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestTenantResolverAttachesActiveTenantByID(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	tenant := seedTenant(t, db, "warung-sate", models.TenantActive)

	r := tenantProbe(db, "/api/v1/dishes")
	got := resolvedTenantID(t, r, "/api/v1/dishes", strconv.FormatUint(uint64(tenant.ID), 10))
	assert.Equal(t, strconv.FormatUint(uint64(tenant.ID), 10), got)
}

func TestTenantResolverAttachesActiveTenantBySlug(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	tenant := seedTenant(t, db, "warung-bakso", models.TenantActive)

	r := tenantProbe(db, "/api/v1/dishes")
	got := resolvedTenantID(t, r, "/api/v1/dishes", "warung-bakso")
	assert.Equal(t, strconv.FormatUint(uint64(tenant.ID), 10), got)
}

func TestTenantResolverIgnoresSuspendedTenant(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	seedTenant(t, db, "warung-tutup", models.TenantSuspended)

	r := tenantProbe(db, "/api/v1/dishes")
	got := resolvedTenantID(t, r, "/api/v1/dishes", "warung-tutup")
	assert.Equal(t, "0", got)
}

func TestTenantResolverIgnoresUnknownHint(t *testing.T) {
	db := setupMiddlewareTestDB(t)

	r := tenantProbe(db, "/api/v1/dishes")
	got := resolvedTenantID(t, r, "/api/v1/dishes", "no-such-tenant")
	assert.Equal(t, "0", got)
}

func TestTenantResolverSkipsExemptPaths(t *testing.T) {
	db := setupMiddlewareTestDB(t)
	tenant := seedTenant(t, db, "warung-exempt", models.TenantActive)

	r := tenantProbe(db, "/api/v1/auth/login")
	got := resolvedTenantID(t, r, "/api/v1/auth/login", strconv.FormatUint(uint64(tenant.ID), 10))
	assert.Equal(t, "0", got)
}
