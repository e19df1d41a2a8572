package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

func setupLoyaltyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Tenant{}, &models.Customer{}, &models.Dish{},
		&models.DishSnapshot{}, &models.Order{}, &models.CustomerHistory{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTenantAndCustomer(t *testing.T, db *gorm.DB, spending int64) (*models.Tenant, *models.Customer) {
	t.Helper()
	tenant := models.Tenant{Name: "Big Boy", Slug: "big-boy", Email: "bigboy@example.com", Status: models.TenantActive}
	assert.NoError(t, db.Create(&tenant).Error)
	customer := models.Customer{
		Name:           "An",
		Email:          "an@example.com",
		Password:       "x",
		MembershipTier: models.TierForSpending(spending),
		TotalSpending:  spending,
	}
	assert.NoError(t, db.Create(&customer).Error)
	return &tenant, &customer
}

// createPaidOrder snapshots a dish priced at price and creates a Paid order
// of the given quantity for the customer.
func createPaidOrder(t *testing.T, db *gorm.DB, tenant *models.Tenant, customer *models.Customer, price int64, quantity int) *models.Order {
	t.Helper()
	dish := models.Dish{TenantID: tenant.ID, Name: "Pho", Price: price, Status: models.DishAvailable}
	assert.NoError(t, db.Create(&dish).Error)
	snapshot := models.SnapshotOf(&dish)
	assert.NoError(t, db.Create(&snapshot).Error)

	customerID := customer.ID
	order := models.Order{
		TenantID:       tenant.ID,
		CustomerID:     &customerID,
		DishSnapshotID: snapshot.ID,
		Quantity:       quantity,
		Status:         models.OrderPaid,
	}
	assert.NoError(t, db.Create(&order).Error)
	return &order
}

func TestAccrueUpdatesSpendingPointsAndTier(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 950_000)
	order := createPaidOrder(t, db, tenant, customer, 100_000, 1)

	svc := NewLoyaltyService(db)
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))

	var got models.Customer
	assert.NoError(t, db.First(&got, customer.ID).Error)
	assert.Equal(t, int64(1_050_000), got.TotalSpending)
	assert.Equal(t, int64(1_000), got.Points)
	assert.Equal(t, models.TierSilver, got.MembershipTier)

	var history models.CustomerHistory
	assert.NoError(t, db.Where("customer_id = ?", customer.ID).First(&history).Error)
	assert.Equal(t, int64(100_000), history.TotalAmount)
	assert.Equal(t, tenant.ID, history.TenantID)
	assert.NotNil(t, history.OrderID)
	assert.Equal(t, order.ID, *history.OrderID)
}

func TestAccrueIsIdempotentPerOrder(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 0)
	order := createPaidOrder(t, db, tenant, customer, 50_000, 2)

	svc := NewLoyaltyService(db)
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))

	var got models.Customer
	assert.NoError(t, db.First(&got, customer.ID).Error)
	assert.Equal(t, int64(100_000), got.TotalSpending)
	assert.Equal(t, int64(1_000), got.Points)

	var count int64
	assert.NoError(t, db.Model(&models.CustomerHistory{}).
		Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAccrueMergesSameDayVisits(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 0)
	first := createPaidOrder(t, db, tenant, customer, 30_000, 1)
	second := createPaidOrder(t, db, tenant, customer, 45_000, 2)

	svc := NewLoyaltyService(db)
	assert.NoError(t, svc.Accrue(first.ID, customer.ID))
	assert.NoError(t, svc.Accrue(second.ID, customer.ID))

	var histories []models.CustomerHistory
	assert.NoError(t, db.Where("customer_id = ?", customer.ID).Find(&histories).Error)
	assert.Len(t, histories, 1)
	assert.Equal(t, int64(30_000+90_000), histories[0].TotalAmount)
	assert.Len(t, histories[0].DishIDs, 2)

	// Pointer is last-writer-wins; set and sum are additive.
	assert.NotNil(t, histories[0].OrderID)
	assert.Equal(t, second.ID, *histories[0].OrderID)
}

func TestAccrueOpensNewRowForNewDay(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 0)

	// A visit row from yesterday must not absorb today's payment.
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	old := models.CustomerHistory{
		CustomerID:  customer.ID,
		TenantID:    tenant.ID,
		DishIDs:     models.UintSlice{99},
		TotalAmount: 10_000,
		VisitDate:   yesterday,
		VisitDay:    yesterday.Format(models.VisitDayFormat),
	}
	assert.NoError(t, db.Create(&old).Error)

	order := createPaidOrder(t, db, tenant, customer, 20_000, 1)
	svc := NewLoyaltyService(db)
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))

	var count int64
	assert.NoError(t, db.Model(&models.CustomerHistory{}).
		Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var untouched models.CustomerHistory
	assert.NoError(t, db.First(&untouched, old.ID).Error)
	assert.Equal(t, int64(10_000), untouched.TotalAmount)
}

func TestAccrueDeduplicatesDishIDs(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 0)

	dish := models.Dish{TenantID: tenant.ID, Name: "Bun Cha", Price: 40_000, Status: models.DishAvailable}
	assert.NoError(t, db.Create(&dish).Error)

	svc := NewLoyaltyService(db)
	customerID := customer.ID
	for i := 0; i < 2; i++ {
		snapshot := models.SnapshotOf(&dish)
		assert.NoError(t, db.Create(&snapshot).Error)
		order := models.Order{
			TenantID:       tenant.ID,
			CustomerID:     &customerID,
			DishSnapshotID: snapshot.ID,
			Quantity:       1,
			Status:         models.OrderPaid,
		}
		assert.NoError(t, db.Create(&order).Error)
		assert.NoError(t, svc.Accrue(order.ID, customer.ID))
	}

	var history models.CustomerHistory
	assert.NoError(t, db.Where("customer_id = ?", customer.ID).First(&history).Error)
	assert.Equal(t, models.UintSlice{dish.ID}, history.DishIDs)
	assert.Equal(t, int64(80_000), history.TotalAmount)
}

func TestAccrueSkipsUnpaidOrder(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 0)
	order := createPaidOrder(t, db, tenant, customer, 25_000, 1)
	assert.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderPending).Error)

	svc := NewLoyaltyService(db)
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))

	var got models.Customer
	assert.NoError(t, db.First(&got, customer.ID).Error)
	assert.Equal(t, int64(0), got.TotalSpending)

	var count int64
	assert.NoError(t, db.Model(&models.CustomerHistory{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAccrueHandlesMultiTierJump(t *testing.T) {
	db := setupLoyaltyTestDB(t)
	tenant, customer := seedTenantAndCustomer(t, db, 0)
	// One payment large enough to jump Iron -> Diamond in a single step.
	order := createPaidOrder(t, db, tenant, customer, 12_000_000, 1)

	svc := NewLoyaltyService(db)
	assert.NoError(t, svc.Accrue(order.ID, customer.ID))

	var got models.Customer
	assert.NoError(t, db.First(&got, customer.ID).Error)
	assert.Equal(t, models.TierDiamond, got.MembershipTier)
	assert.Equal(t, int64(120_000), got.Points)
}
