package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quickbite/backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One in-memory connection; a second would see an empty database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Seller{},
		&models.DeliveryPartner{},
		&models.Category{},
		&models.FoodItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryAssignment{},
		&models.Payment{},
		&models.Review{},
	)
	require.NoError(t, err)

	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		Name:     "Test Customer",
		Email:    email,
		Password: "hashed",
		Address:  "12 Test Lane",
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedSeller(t *testing.T, db *gorm.DB, email, status string) *models.Seller {
	t.Helper()
	s := &models.Seller{
		Name:     "Test Kitchen",
		Email:    email,
		Password: "hashed",
		Status:   status,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedPartner(t *testing.T, db *gorm.DB, email string, available bool) *models.DeliveryPartner {
	t.Helper()
	p := &models.DeliveryPartner{
		Name:        "Test Rider",
		Email:       email,
		Phone:       "9999999999",
		Password:    "hashed",
		VehicleType: "bike",
		IsAvailable: available,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedFoodItem(t *testing.T, db *gorm.DB, seller *models.Seller, name string, price float64, available bool) *models.FoodItem {
	t.Helper()

	category := &models.Category{Name: "Mains", SellerID: seller.ID}
	require.NoError(t, db.Create(category).Error)

	f := &models.FoodItem{
		Name:        name,
		CategoryID:  category.ID,
		SellerID:    seller.ID,
		Price:       price,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

// seedOrder creates an order directly in the given status.
func seedOrder(t *testing.T, db *gorm.DB, customerID, sellerID uint, status string) *models.Order {
	t.Helper()
	o := &models.Order{
		OrderNumber:     models.GenerateOrderNumber(),
		CustomerID:      customerID,
		SellerID:        sellerID,
		Status:          status,
		Subtotal:        300,
		DeliveryFee:     DeliveryFee,
		TaxAmount:       15,
		TotalPrice:      355,
		TotalItems:      2,
		DeliveryAddress: "12 Test Lane",
		PaymentStatus:   models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}
