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

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (tc *TableController) ListTables(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("tenant_id = ?", *staff.TenantID).
		Order("number ASC").Find(&tables).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTable(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	number, _ := strconv.Atoi(c.Param("table_number"))
	var table models.Table
	if err := tc.DB.Where("number = ? AND tenant_id = ?", number, *staff.TenantID).
		First(&table).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

type tableRequest struct {
	Number   int `json:"number" binding:"required"`
	Capacity int `json:"capacity" binding:"required"`
}

// CreateTable adds a table with a freshly generated QR token. Table numbers
// are tenant-local; duplicates within the tenant are a conflict.
func (tc *TableController) CreateTable(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	var body tableRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}
	if body.Number < 1 || body.Capacity < 1 {
		utils.RespondAppError(c, utils.ValidationError("number and capacity must be positive"))
		return
	}

	var existing models.Table
	if err := tc.DB.Where("number = ? AND tenant_id = ?", body.Number, *staff.TenantID).
		First(&existing).Error; err == nil {
		utils.RespondAppError(c, utils.ConflictError("table number already exists"))
		return
	}

	table := models.Table{
		Number:   body.Number,
		TenantID: *staff.TenantID,
		Capacity: body.Capacity,
		Status:   models.TableAvailable,
		Token:    utils.GenerateQRToken(),
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	number, _ := strconv.Atoi(c.Param("table_number"))
	var table models.Table
	if err := tc.DB.Where("number = ? AND tenant_id = ?", number, *staff.TenantID).
		First(&table).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("table not found"))
		return
	}

	type updateRequest struct {
		Capacity   *int    `json:"capacity"`
		Status     *string `json:"status"`
		ResetToken bool    `json:"reset_token"`
	}
	var body updateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	if body.Capacity != nil {
		if *body.Capacity < 1 {
			utils.RespondAppError(c, utils.ValidationError("capacity must be positive"))
			return
		}
		table.Capacity = *body.Capacity
	}
	if body.Status != nil {
		status := models.TableStatus(*body.Status)
		switch status {
		case models.TableAvailable, models.TableOccupied, models.TableReserved, models.TableCleaning:
			table.Status = status
		default:
			utils.RespondAppError(c, utils.ValidationError("invalid table status"))
			return
		}
	}
	if body.ResetToken {
		table.Token = utils.GenerateQRToken()
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	number, _ := strconv.Atoi(c.Param("table_number"))
	var table models.Table
	if err := tc.DB.Where("number = ? AND tenant_id = ?", number, *staff.TenantID).
		First(&table).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("table not found"))
		return
	}

	if err := tc.DB.Where("number = ? AND tenant_id = ?", number, *staff.TenantID).
		Delete(&models.Table{}).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}
