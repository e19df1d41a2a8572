package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/services"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService) *OrderController {
	return &OrderController{DB: db, Orders: orders}
}

// CreateOrders creates a batch of orders, one snapshot each.
func (oc *OrderController) CreateOrders(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)

	var body services.CreateOrdersInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	orders, err := oc.Orders.CreateOrders(staff, body)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Orders created", orders)
}

// ListOrders lists the tenant's orders with optional filters.
func (oc *OrderController) ListOrders(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}
	page, limit := pagination(c, 10)

	query := oc.DB.Model(&models.Order{}).Where("tenant_id = ?", *staff.TenantID)
	if tableNumber, err := strconv.Atoi(c.Query("table_number")); err == nil {
		query = query.Where("table_number = ?", tableNumber)
	}
	if status := c.Query("status"); status != "" {
		parsed, parseErr := models.ParseOrderStatus(status)
		if parseErr != nil {
			utils.RespondAppError(c, utils.ValidationError(parseErr.Error()))
			return
		}
		query = query.Where("status = ?", parsed)
	}
	if from := c.Query("from_date"); from != "" {
		t, parseErr := time.Parse(time.RFC3339, from)
		if parseErr != nil {
			utils.RespondAppError(c, utils.ValidationError("unparsable from_date"))
			return
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := c.Query("to_date"); to != "" {
		t, parseErr := time.Parse(time.RFC3339, to)
		if parseErr != nil {
			utils.RespondAppError(c, utils.ValidationError("unparsable to_date"))
			return
		}
		query = query.Where("created_at <= ?", t)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	var orders []models.Order
	if err := query.Preload("DishSnapshot").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", gin.H{
		"items": orders,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	if staff.TenantID == nil {
		utils.RespondAppError(c, utils.AuthorizationError("user must belong to a tenant"))
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))
	var order models.Order
	if err := oc.DB.Preload("DishSnapshot").First(&order, id).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("order not found"))
		return
	}
	if order.TenantID != *staff.TenantID {
		utils.RespondAppError(c, utils.AuthorizationError("no access to this order"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder sets status/handler through the state machine.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body services.UpdateOrderInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	order, err := oc.Orders.UpdateOrder(staff, uint(id), body)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", gin.H{
		"id":               order.ID,
		"status":           order.Status,
		"order_handler_id": order.OrderHandlerID,
	})
}

type payRequest struct {
	TableNumber int `json:"table_number" binding:"required"`
}

// PayOrders settles every unpaid order on a table.
func (oc *OrderController) PayOrders(c *gin.Context) {
	staff, _ := middlewares.CurrentStaff(c)

	var body payRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	orders, err := oc.Orders.PayByTable(staff, body.TableNumber)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	paid := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		paid = append(paid, gin.H{
			"id":               order.ID,
			"status":           order.Status,
			"order_handler_id": order.OrderHandlerID,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Orders paid", paid)
}
