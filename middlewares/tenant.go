package middlewares

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/config"
	"github.com/bigboyapp/restaurant-backend/models"
)

// Paths that never take part in tenant resolution: health, auth and the
// customer/guest/mobile surfaces are tenant-independent by design.
var tenantExemptPrefixes = []string{
	"/health",
	"/static",
	"/api/v1/auth",
	"/api/v1/customer",
	"/api/v1/guest",
	"/api/v1/mobile",
}

// TenantResolver looks up the tenant hint (header value, falling back to the
// configured default) and attaches the tenant to the request context only if
// it resolves to an Active tenant. Anything else attaches nothing: absence
// of a tenant context is not an error.
func TenantResolver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range tenantExemptPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		hint := c.GetHeader(config.TenantHeader())
		if hint == "" {
			hint = config.DefaultTenant()
		}
		if hint == "" {
			c.Next()
			return
		}

		var tenant models.Tenant
		var err error
		if id, convErr := strconv.ParseUint(hint, 10, 64); convErr == nil {
			err = db.First(&tenant, uint(id)).Error
		} else {
			err = db.Where("slug = ?", hint).First(&tenant).Error
		}
		if err != nil || tenant.Status != models.TenantActive {
			c.Next()
			return
		}

		c.Set(ctxTenantKey, &tenant)
		c.Next()
	}
}
