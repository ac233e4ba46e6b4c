package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/backend/models"
)

func TestAddItemCreatesCartLazily(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart1@test.com")
	seller := seedSeller(t, db, "kitchen1@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Paneer Wrap", 120, true)

	line, err := svc.AddItem(customer.ID, food.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 120.0, line.Price)

	var carts []models.Cart
	require.NoError(t, db.Where("customer_id = ?", customer.ID).Find(&carts).Error)
	assert.Len(t, carts, 1)
}

func TestAddItemMergesQuantityAndRefreshesPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart2@test.com")
	seller := seedSeller(t, db, "kitchen2@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Dal Bowl", 90, true)

	_, err := svc.AddItem(customer.ID, food.ID, 1)
	require.NoError(t, err)

	// Price change between adds; the line copy must follow.
	require.NoError(t, db.Model(food).Update("price", 110).Error)

	line, err := svc.AddItem(customer.ID, food.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, 110.0, line.Price)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemRejectsUnavailableFood(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart3@test.com")
	seller := seedSeller(t, db, "kitchen3@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Sold Out Special", 150, false)

	_, err := svc.AddItem(customer.ID, food.ID, 1)
	assert.ErrorContains(t, err, "not available")
}

func TestAddItemRejectsClosedRestaurant(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart4@test.com")
	seller := seedSeller(t, db, "kitchen4@test.com", models.SellerClosed)
	food := seedFoodItem(t, db, seller, "Late Night Roll", 80, true)

	_, err := svc.AddItem(customer.ID, food.ID, 1)
	assert.ErrorContains(t, err, "closed")
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart5@test.com")
	_, err := svc.AddItem(customer.ID, 1, 0)
	assert.ErrorContains(t, err, "quantity")
}

func TestGetGroupsByRestaurantWithTotals(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart6@test.com")
	sellerA := seedSeller(t, db, "kitchenA@test.com", models.SellerOpen)
	sellerB := seedSeller(t, db, "kitchenB@test.com", models.SellerOpen)
	foodA := seedFoodItem(t, db, sellerA, "Biryani", 200, true)
	foodB := seedFoodItem(t, db, sellerB, "Momos", 60, true)

	_, err := svc.AddItem(customer.ID, foodA.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(customer.ID, foodB.ID, 2)
	require.NoError(t, err)

	view, err := svc.Get(customer.ID)
	require.NoError(t, err)
	assert.Len(t, view.Restaurants, 2)
	assert.Equal(t, 320.0, view.TotalAmount)
	assert.Equal(t, 3, view.TotalItems)

	var sum float64
	var items int
	for _, group := range view.Restaurants {
		sum += group.Subtotal
		items += group.TotalItems
	}
	assert.Equal(t, view.TotalAmount, sum)
	assert.Equal(t, view.TotalItems, items)
}

func TestUpdateItemRejectsForeignLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	owner := seedCustomer(t, db, "cart7@test.com")
	other := seedCustomer(t, db, "cart8@test.com")
	seller := seedSeller(t, db, "kitchen7@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Thali", 180, true)

	line, err := svc.AddItem(owner.ID, food.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(other.ID, line.ID, 5)
	assert.ErrorContains(t, err, "not found")
}

func TestClearEmptiesCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	customer := seedCustomer(t, db, "cart9@test.com")
	seller := seedSeller(t, db, "kitchen9@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Chaat", 70, true)

	_, err := svc.AddItem(customer.ID, food.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(customer.ID))

	view, err := svc.Get(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Restaurants)
	assert.Zero(t, view.TotalItems)
}
