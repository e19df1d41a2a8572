package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
)

// LoyaltyService turns paid orders into visit history, spend, points and
// tier updates. Accrual is idempotent per order and each order is its own
// unit of work, so a retried payment batch cannot double-count.
type LoyaltyService struct {
	DB *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{DB: db}
}

// PointsRate is the divisor applied to each paid amount: 1 point per 100
// minor units, truncated.
const PointsRate = 100

// Accrue records one paid order against the customer's loyalty state.
// Calling it again with the same order id is a no-op.
func (s *LoyaltyService) Accrue(orderID, customerID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if order.Status != models.OrderPaid {
			return nil
		}

		var snapshot models.DishSnapshot
		if err := tx.First(&snapshot, order.DishSnapshotID).Error; err != nil {
			return err
		}

		// Already accrued for this order.
		var count int64
		if err := tx.Model(&models.CustomerHistory{}).
			Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		amount := snapshot.Price * int64(order.Quantity)

		if err := s.upsertVisit(tx, &order, &snapshot, customerID, amount); err != nil {
			return err
		}

		return s.applySpending(tx, customerID, amount)
	})
}

// upsertVisit merges the order into the customer's visit row for the current
// UTC calendar day, creating it if absent. The unique (customer, tenant,
// visit_day) index backstops the race between two concurrent payments; a
// conflicting insert is retried as a merge.
func (s *LoyaltyService) upsertVisit(tx *gorm.DB, order *models.Order, snapshot *models.DishSnapshot, customerID uint, amount int64) error {
	day := time.Now().UTC().Format(models.VisitDayFormat)

	var history models.CustomerHistory
	err := tx.Where("customer_id = ? AND tenant_id = ? AND visit_day = ?",
		customerID, order.TenantID, day).First(&history).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		visitDate := order.CreatedAt
		if visitDate.IsZero() {
			visitDate = time.Now().UTC()
		}
		dishIDs := models.UintSlice{}
		if snapshot.DishID != nil {
			dishIDs = append(dishIDs, *snapshot.DishID)
		}
		orderID := order.ID
		history = models.CustomerHistory{
			CustomerID:  customerID,
			TenantID:    order.TenantID,
			OrderID:     &orderID,
			DishIDs:     dishIDs,
			TotalAmount: amount,
			VisitDate:   visitDate,
			VisitDay:    day,
		}
		if createErr := tx.Create(&history).Error; createErr != nil {
			// Lost the race to a sibling payment: merge into its row.
			if findErr := tx.Where("customer_id = ? AND tenant_id = ? AND visit_day = ?",
				customerID, order.TenantID, day).First(&history).Error; findErr != nil {
				return createErr
			}
			return s.mergeVisit(tx, &history, order, snapshot, amount)
		}
		return nil
	}
	if err != nil {
		return err
	}
	return s.mergeVisit(tx, &history, order, snapshot, amount)
}

func (s *LoyaltyService) mergeVisit(tx *gorm.DB, history *models.CustomerHistory, order *models.Order, snapshot *models.DishSnapshot, amount int64) error {
	if snapshot.DishID != nil && !history.DishIDs.Contains(*snapshot.DishID) {
		history.DishIDs = append(history.DishIDs, *snapshot.DishID)
	}
	history.TotalAmount += amount
	orderID := order.ID
	history.OrderID = &orderID
	return tx.Save(history).Error
}

func (s *LoyaltyService) applySpending(tx *gorm.DB, customerID uint, amount int64) error {
	var customer models.Customer
	if err := tx.First(&customer, customerID).Error; err != nil {
		return err
	}

	customer.TotalSpending += amount
	customer.Points += amount / PointsRate
	customer.MembershipTier = models.TierForSpending(customer.TotalSpending)

	return tx.Save(&customer).Error
}
