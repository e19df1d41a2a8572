package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

type reservationRequest struct {
	TenantID    uint   `json:"tenant_id" binding:"required"`
	PartySize   int    `json:"party_size" binding:"required"`
	ReservedFor string `json:"reserved_for" binding:"required"`
	Notes       string `json:"notes"`
}

// CreateReservation books a visit at a restaurant for the customer.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	customer, ok := middlewares.CurrentCustomer(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}

	var body reservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}
	if body.PartySize < 1 {
		utils.RespondAppError(c, utils.ValidationError("party_size must be positive"))
		return
	}
	reservedFor, err := time.Parse(time.RFC3339, body.ReservedFor)
	if err != nil {
		utils.RespondAppError(c, utils.ValidationError("unparsable reserved_for date"))
		return
	}

	var tenant models.Tenant
	if err := rc.DB.First(&tenant, body.TenantID).Error; err != nil || tenant.Status != models.TenantActive {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}

	reservation := models.Reservation{
		CustomerID:  customer.ID,
		TenantID:    tenant.ID,
		PartySize:   body.PartySize,
		ReservedFor: reservedFor,
		Notes:       body.Notes,
		Status:      models.ReservationPending,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// ListReservations returns the customer's own reservations.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	customer, ok := middlewares.CurrentCustomer(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}
	page, limit := pagination(c, 20)

	query := rc.DB.Model(&models.Reservation{}).Where("customer_id = ?", customer.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	var reservations []models.Reservation
	if err := query.Order("reserved_for DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&reservations).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", gin.H{
		"items": reservations,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
