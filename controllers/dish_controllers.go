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

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

func pagination(c *gin.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// ListDishes is public: the mobile app browses menus before any login.
// Tenant scoping comes from an explicit query param or the resolved tenant.
func (dc *DishController) ListDishes(c *gin.Context) {
	page, limit := pagination(c, 50)

	query := dc.DB.Model(&models.Dish{})
	if tenantID, err := strconv.ParseUint(c.Query("tenant_id"), 10, 64); err == nil {
		query = query.Where("tenant_id = ?", uint(tenantID))
	} else if tenant, ok := middlewares.CurrentTenant(c); ok {
		query = query.Where("tenant_id = ?", tenant.ID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	var dishes []models.Dish
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&dishes).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of dishes", gin.H{
		"items": dishes,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (dc *DishController) GetDish(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("dish_id"))
	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("dish not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish detail", dish)
}

type dishRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

func (dc *DishController) CreateDish(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	var body dishRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}
	if body.Price <= 0 {
		utils.RespondAppError(c, utils.ValidationError("price must be positive"))
		return
	}
	status := models.DishStatus(body.Status)
	if body.Status == "" {
		status = models.DishAvailable
	} else if status != models.DishAvailable && status != models.DishUnavailable && status != models.DishOutOfStock {
		utils.RespondAppError(c, utils.ValidationError("invalid dish status"))
		return
	}

	dish := models.Dish{
		TenantID:    *staff.TenantID,
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		Image:       body.Image,
		Category:    body.Category,
		Status:      status,
	}
	if err := dc.DB.Create(&dish).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	id, _ := strconv.Atoi(c.Param("dish_id"))
	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("dish not found"))
		return
	}
	if dish.TenantID != *staff.TenantID {
		utils.RespondAppError(c, utils.AuthorizationError("no access to this dish"))
		return
	}

	type updateRequest struct {
		Name        *string `json:"name"`
		Price       *int64  `json:"price"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
		Category    *string `json:"category"`
		Status      *string `json:"status"`
	}
	var body updateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	if body.Name != nil {
		dish.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price <= 0 {
			utils.RespondAppError(c, utils.ValidationError("price must be positive"))
			return
		}
		dish.Price = *body.Price
	}
	if body.Description != nil {
		dish.Description = *body.Description
	}
	if body.Image != nil {
		dish.Image = *body.Image
	}
	if body.Category != nil {
		dish.Category = *body.Category
	}
	if body.Status != nil {
		status := models.DishStatus(*body.Status)
		if status != models.DishAvailable && status != models.DishUnavailable && status != models.DishOutOfStock {
			utils.RespondAppError(c, utils.ValidationError("invalid dish status"))
			return
		}
		dish.Status = status
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	id, _ := strconv.Atoi(c.Param("dish_id"))
	var dish models.Dish
	if err := dc.DB.First(&dish, id).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("dish not found"))
		return
	}
	if dish.TenantID != *staff.TenantID {
		utils.RespondAppError(c, utils.AuthorizationError("no access to this dish"))
		return
	}

	if err := dc.DB.Delete(&dish).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", nil)
}
