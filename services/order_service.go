package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

// OrderService owns the order lifecycle: creation with price snapshots,
// status transitions and the pay-by-table batch transition. Every mutation
// re-checks tenant ownership against the acting staff account.
type OrderService struct {
	DB      *gorm.DB
	Loyalty *LoyaltyService
}

func NewOrderService(db *gorm.DB, loyalty *LoyaltyService) *OrderService {
	return &OrderService{DB: db, Loyalty: loyalty}
}

type OrderItemInput struct {
	DishID      uint   `json:"dish_id"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
	TableNumber *int   `json:"table_number,omitempty"`
	GuestID     *uint  `json:"guest_id,omitempty"`
	CustomerID  *uint  `json:"customer_id,omitempty"`
}

type CreateOrdersInput struct {
	TableNumber *int             `json:"table_number,omitempty"`
	Orders      []OrderItemInput `json:"orders"`
}

type UpdateOrderInput struct {
	Status         *string `json:"status,omitempty"`
	OrderHandlerID *uint   `json:"order_handler_id,omitempty"`
}

func staffTenant(staff *models.Account) (uint, error) {
	if staff == nil {
		return 0, utils.AuthenticationError("authentication required")
	}
	if staff.TenantID == nil {
		return 0, utils.AuthorizationError("user must belong to a tenant")
	}
	return *staff.TenantID, nil
}

// CreateOrders creates one order per item, snapshotting each dish's current
// fields. The batch is atomic: any failed lookup or validation rolls back
// every order in it. A dish outside the acting tenant reads as not found.
func (s *OrderService) CreateOrders(staff *models.Account, input CreateOrdersInput) ([]models.Order, error) {
	tenantID, err := staffTenant(staff)
	if err != nil {
		return nil, err
	}
	return s.createBatch(tenantID, input)
}

// CreateGuestOrders lets a guest session order for its own table. The
// tenant and table come from the guest row; item-level overrides are
// ignored so a guest cannot order onto another table or principal.
func (s *OrderService) CreateGuestOrders(guest *models.Guest, input CreateOrdersInput) ([]models.Order, error) {
	if guest == nil {
		return nil, utils.AuthenticationError("authentication required")
	}

	guestID := guest.ID
	input.TableNumber = guest.TableNumber
	for i := range input.Orders {
		input.Orders[i].GuestID = &guestID
		input.Orders[i].CustomerID = nil
		input.Orders[i].TableNumber = nil
	}
	return s.createBatch(guest.TenantID, input)
}

func (s *OrderService) createBatch(tenantID uint, input CreateOrdersInput) ([]models.Order, error) {
	if len(input.Orders) == 0 {
		return nil, utils.ValidationError("orders must not be empty")
	}

	var created []models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range input.Orders {
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			if quantity < 1 {
				return utils.ValidationError("quantity must be a positive integer")
			}

			var dish models.Dish
			if findErr := tx.Where("id = ? AND tenant_id = ?", item.DishID, tenantID).
				First(&dish).Error; findErr != nil {
				return utils.NotFoundError(fmt.Sprintf("dish %d not found", item.DishID))
			}

			snapshot := models.SnapshotOf(&dish)
			if createErr := tx.Create(&snapshot).Error; createErr != nil {
				return createErr
			}

			tableNumber := item.TableNumber
			if tableNumber == nil {
				tableNumber = input.TableNumber
			}

			order := models.Order{
				TenantID:       tenantID,
				GuestID:        item.GuestID,
				CustomerID:     item.CustomerID,
				TableNumber:    tableNumber,
				DishSnapshotID: snapshot.ID,
				Quantity:       quantity,
				Notes:          item.Notes,
				Status:         models.OrderPending,
			}
			if createErr := tx.Create(&order).Error; createErr != nil {
				return createErr
			}
			order.DishSnapshot = snapshot
			created = append(created, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateOrder sets status and/or handler on an order owned by the staff's
// tenant. Touching an order attributes it to the toucher unless an explicit
// handler override is supplied.
func (s *OrderService) UpdateOrder(staff *models.Account, orderID uint, input UpdateOrderInput) (*models.Order, error) {
	tenantID, err := staffTenant(staff)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		return nil, utils.NotFoundError("order not found")
	}
	if order.TenantID != tenantID {
		return nil, utils.AuthorizationError("no access to this order")
	}

	if input.Status != nil {
		status, parseErr := models.ParseOrderStatus(*input.Status)
		if parseErr != nil {
			return nil, utils.ValidationError(parseErr.Error())
		}
		order.Status = status
	}
	if input.OrderHandlerID != nil {
		order.OrderHandlerID = input.OrderHandlerID
	} else {
		handlerID := staff.ID
		order.OrderHandlerID = &handlerID
	}

	if err := s.DB.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// PayByTable transitions every unpaid order on the table to Paid, then runs
// loyalty accrual once per order that belongs to an identified customer.
// Accrual failures are logged and swallowed: payment stands, and the engine
// stays independently retriable. An already-settled table is a caller error.
func (s *OrderService) PayByTable(staff *models.Account, tableNumber int) ([]models.Order, error) {
	tenantID, err := staffTenant(staff)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if findErr := tx.Where("tenant_id = ? AND table_number = ? AND status <> ?",
			tenantID, tableNumber, models.OrderPaid).
			Order("id ASC").Find(&orders).Error; findErr != nil {
			return findErr
		}
		if len(orders) == 0 {
			return utils.NotFoundError("no unpaid orders found for this table")
		}

		handlerID := staff.ID
		for i := range orders {
			orders[i].Status = models.OrderPaid
			orders[i].OrderHandlerID = &handlerID
			if saveErr := tx.Save(&orders[i]).Error; saveErr != nil {
				return saveErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		if order.CustomerID == nil {
			continue
		}
		if accrueErr := s.Loyalty.Accrue(order.ID, *order.CustomerID); accrueErr != nil {
			utils.ErrorLogger.Printf("loyalty accrual failed for order %d: %v", order.ID, accrueErr)
		}
	}
	return orders, nil
}
