package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

// MobileController serves the public mobile-app surface: restaurant
// discovery and QR resolution. No principal required.
type MobileController struct {
	DB *gorm.DB
}

func NewMobileController(db *gorm.DB) *MobileController {
	return &MobileController{DB: db}
}

// ListRestaurants lists active tenants.
func (mc *MobileController) ListRestaurants(c *gin.Context) {
	page, limit := pagination(c, 20)

	query := mc.DB.Model(&models.Tenant{}).Where("status = ?", models.TenantActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	var tenants []models.Tenant
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&tenants).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of restaurants", gin.H{
		"items": tenants,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (mc *MobileController) GetRestaurant(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("restaurant_id"))
	var tenant models.Tenant
	if err := mc.DB.First(&tenant, id).Error; err != nil || tenant.Status != models.TenantActive {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", tenant)
}

type scanRequest struct {
	Token string `json:"token" binding:"required"`
}

// ScanQR resolves a table QR token to its restaurant and table.
func (mc *MobileController) ScanQR(c *gin.Context) {
	var body scanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	var table models.Table
	if err := mc.DB.Where("token = ?", body.Token).First(&table).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("invalid QR code"))
		return
	}
	var tenant models.Tenant
	if err := mc.DB.First(&tenant, table.TenantID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "QR code resolved", gin.H{
		"restaurant": gin.H{
			"id":      tenant.ID,
			"name":    tenant.Name,
			"slug":    tenant.Slug,
			"logo":    tenant.Logo,
			"address": tenant.Address,
		},
		"table": gin.H{
			"number":   table.Number,
			"capacity": table.Capacity,
			"status":   table.Status,
		},
		"token": body.Token,
	})
}
