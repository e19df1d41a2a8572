package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/bigboyapp/restaurant-backend/models"
)

// Context keys set by the auth/tenant middlewares. Everything downstream
// reads principals through the typed getters instead of raw c.Get calls.
const (
	ctxStaffKey    = "current_staff"
	ctxCustomerKey = "current_customer"
	ctxGuestKey    = "current_guest"
	ctxTenantKey   = "current_tenant"
)

// CurrentStaff returns the authenticated staff account, if any.
func CurrentStaff(c *gin.Context) (*models.Account, bool) {
	v, ok := c.Get(ctxStaffKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*models.Account)
	return account, ok
}

// CurrentCustomer returns the authenticated customer, if any.
func CurrentCustomer(c *gin.Context) (*models.Customer, bool) {
	v, ok := c.Get(ctxCustomerKey)
	if !ok {
		return nil, false
	}
	customer, ok := v.(*models.Customer)
	return customer, ok
}

// CurrentGuest returns the authenticated guest, if any.
func CurrentGuest(c *gin.Context) (*models.Guest, bool) {
	v, ok := c.Get(ctxGuestKey)
	if !ok {
		return nil, false
	}
	guest, ok := v.(*models.Guest)
	return guest, ok
}

// CurrentTenant returns the resolved tenant context, if any. Tenant-scoped
// handlers treat absence as "no tenant", never as an error.
func CurrentTenant(c *gin.Context) (*models.Tenant, bool) {
	v, ok := c.Get(ctxTenantKey)
	if !ok {
		return nil, false
	}
	tenant, ok := v.(*models.Tenant)
	return tenant, ok
}
