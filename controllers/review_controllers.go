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

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

type reviewRequest struct {
	TenantID uint   `json:"tenant_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
}

// CreateReview lets a customer rate a restaurant they visited.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	customer, ok := middlewares.CurrentCustomer(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}

	var body reviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		utils.RespondAppError(c, utils.ValidationError("rating must be between 1 and 5"))
		return
	}

	var tenant models.Tenant
	if err := rc.DB.First(&tenant, body.TenantID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}

	review := models.Review{
		CustomerID: customer.ID,
		TenantID:   tenant.ID,
		Rating:     body.Rating,
		Comment:    body.Comment,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Review created", review)
}

// ListRestaurantReviews is public.
func (rc *ReviewController) ListRestaurantReviews(c *gin.Context) {
	restaurantID, _ := strconv.Atoi(c.Param("restaurant_id"))
	page, limit := pagination(c, 20)

	query := rc.DB.Model(&models.Review{}).Where("tenant_id = ?", restaurantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	var reviews []models.Review
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&reviews).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reviews", gin.H{
		"items": reviews,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
