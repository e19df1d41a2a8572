package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

// ListHistory returns the authenticated customer's visit history, newest
// first. History rows are written only by the accrual engine.
func (hc *HistoryController) ListHistory(c *gin.Context) {
	customer, ok := middlewares.CurrentCustomer(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}
	page, limit := pagination(c, 20)

	query := hc.DB.Model(&models.CustomerHistory{}).Where("customer_id = ?", customer.ID)
	if tenantID, err := strconv.ParseUint(c.Query("tenant_id"), 10, 64); err == nil {
		query = query.Where("tenant_id = ?", uint(tenantID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	var history []models.CustomerHistory
	if err := query.Order("visit_date DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&history).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Visit history", gin.H{
		"items": history,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
