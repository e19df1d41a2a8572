package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/services"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type GuestController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewGuestController(db *gorm.DB, orders *services.OrderService) *GuestController {
	return &GuestController{DB: db, Orders: orders}
}

type guestLoginRequest struct {
	Token string `json:"token" binding:"required"`
	Name  string `json:"name" binding:"required"`
}

// Login bootstraps a guest session from a table QR token. The guest row
// holds its own refresh token and expiry; there is no password credential.
func (gc *GuestController) Login(c *gin.Context) {
	var body guestLoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	var table models.Table
	if err := gc.DB.Where("token = ?", body.Token).First(&table).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("invalid QR code"))
		return
	}

	var tenant models.Tenant
	if err := gc.DB.First(&tenant, table.TenantID).Error; err != nil || tenant.Status != models.TenantActive {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}

	tableNumber := table.Number
	guest := models.Guest{
		TenantID:    table.TenantID,
		Name:        body.Name,
		TableNumber: &tableNumber,
	}
	if err := gc.DB.Create(&guest).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	accessToken, refreshToken, err := gc.issueGuestTokens(&guest)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Guest login successful", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"guest": gin.H{
			"id":           guest.ID,
			"name":         guest.Name,
			"tenant_id":    guest.TenantID,
			"table_number": guest.TableNumber,
		},
		"restaurant": gin.H{
			"id":   tenant.ID,
			"name": tenant.Name,
			"slug": tenant.Slug,
		},
	})
}

func (gc *GuestController) issueGuestTokens(guest *models.Guest) (string, string, error) {
	tenantID := guest.TenantID
	accessToken, err := utils.GenerateToken(utils.DomainAccess, guest.ID, utils.RoleClaimGuest, &tenantID, 0)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateToken(utils.DomainRefresh, guest.ID, utils.RoleClaimGuest, &tenantID, 0)
	if err != nil {
		return "", "", err
	}

	expiresAt := time.Now().Add(utils.GuestRefreshTokenTTL)
	guest.RefreshToken = &refreshToken
	guest.RefreshTokenExpiresAt = &expiresAt
	if err := gc.DB.Save(guest).Error; err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RefreshToken rotates a guest session. The presented token must match the
// one stored on the guest row, so rotated-out tokens fail.
func (gc *GuestController) RefreshToken(c *gin.Context) {
	var body refreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	claims, err := utils.ParseToken(body.RefreshToken, utils.DomainRefresh)
	if err != nil || claims.Role != utils.RoleClaimGuest {
		utils.RespondAppError(c, utils.AuthenticationError("invalid refresh token"))
		return
	}
	guestID, err := utils.SubjectID(claims)
	if err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("invalid refresh token"))
		return
	}

	var guest models.Guest
	if err := gc.DB.First(&guest, guestID).Error; err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("guest session not found"))
		return
	}
	if guest.RefreshToken == nil || *guest.RefreshToken != body.RefreshToken ||
		guest.RefreshTokenExpiresAt == nil || guest.RefreshTokenExpiresAt.Before(time.Now()) {
		utils.RespondAppError(c, utils.AuthenticationError("refresh token expired or invalid"))
		return
	}

	accessToken, refreshToken, err := gc.issueGuestTokens(&guest)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

// Me returns the authenticated guest session.
func (gc *GuestController) Me(c *gin.Context) {
	guest, ok := middlewares.CurrentGuest(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current guest", guest)
}

// CreateOrders lets the guest order for their own table.
func (gc *GuestController) CreateOrders(c *gin.Context) {
	guest, ok := middlewares.CurrentGuest(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}

	var body services.CreateOrdersInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	orders, err := gc.Orders.CreateGuestOrders(guest, body)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Orders created", orders)
}

// ListOrders returns the guest session's own orders.
func (gc *GuestController) ListOrders(c *gin.Context) {
	guest, ok := middlewares.CurrentGuest(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}

	var orders []models.Order
	if err := gc.DB.Preload("DishSnapshot").
		Where("guest_id = ?", guest.ID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Guest orders", orders)
}
