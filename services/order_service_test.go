package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/backend/models"
)

func TestCheckoutComputesTotalsAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order1@test.com")
	seller := seedSeller(t, db, "orderkitchen1@test.com", models.SellerOpen)
	garlicBread := seedFoodItem(t, db, seller, "Garlic Bread", 100, true)
	pizza := seedFoodItem(t, db, seller, "Pizza", 150, true)

	_, err := carts.AddItem(customer.ID, garlicBread.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(customer.ID, pizza.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(customer.ID, &CheckoutInput{DeliveryAddress: "42 Oak Street"})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPlaced, order.Status)
	assert.Equal(t, 350.0, order.Subtotal)
	assert.Equal(t, 40.0, order.DeliveryFee)
	assert.InDelta(t, 17.5, order.TaxAmount, 0.001)
	assert.InDelta(t, 407.5, order.TotalPrice, 0.001)
	assert.Equal(t, 3, order.TotalItems)
	assert.Equal(t, "42 Oak Street", order.DeliveryAddress)
	assert.Len(t, order.OrderItems, 2)
	assert.Contains(t, order.OrderNumber, "ORD")

	// The cart must be empty after a successful checkout.
	view, err := carts.Get(customer.ID)
	require.NoError(t, err)
	assert.Zero(t, view.TotalItems)
}

func TestCheckoutUsesProfileAddressAsFallback(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order2@test.com")
	seller := seedSeller(t, db, "orderkitchen2@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Burger", 150, true)

	_, err := carts.AddItem(customer.ID, food.ID, 1)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(customer.ID, &CheckoutInput{})
	require.NoError(t, err)
	assert.Equal(t, customer.Address, order.DeliveryAddress)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order3@test.com")
	_, err := orders.CreateFromCart(customer.ID, &CheckoutInput{DeliveryAddress: "x"})
	assert.ErrorContains(t, err, "cart is empty")
}

func TestCheckoutRejectsMixedRestaurants(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order4@test.com")
	sellerA := seedSeller(t, db, "orderkitchen4a@test.com", models.SellerOpen)
	sellerB := seedSeller(t, db, "orderkitchen4b@test.com", models.SellerOpen)
	foodA := seedFoodItem(t, db, sellerA, "Noodles", 130, true)
	foodB := seedFoodItem(t, db, sellerB, "Sushi", 400, true)

	_, err := carts.AddItem(customer.ID, foodA.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddItem(customer.ID, foodB.ID, 1)
	require.NoError(t, err)

	_, err = orders.CreateFromCart(customer.ID, &CheckoutInput{DeliveryAddress: "x"})
	assert.ErrorContains(t, err, "same restaurant")

	// A failed checkout must not drain the cart.
	view, err := carts.Get(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalItems)
}

func TestCheckoutSnapshotsLivePrice(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order5@test.com")
	seller := seedSeller(t, db, "orderkitchen5@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Curry", 200, true)

	_, err := carts.AddItem(customer.ID, food.ID, 1)
	require.NoError(t, err)

	// Menu price changes between add and checkout; the order charges the
	// current price.
	require.NoError(t, db.Model(food).Update("price", 220).Error)

	order, err := orders.CreateFromCart(customer.ID, &CheckoutInput{DeliveryAddress: "x"})
	require.NoError(t, err)
	assert.Equal(t, 220.0, order.Subtotal)
	assert.Equal(t, 220.0, order.OrderItems[0].Price)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order6@test.com")
	seller := seedSeller(t, db, "orderkitchen6@test.com", models.SellerOpen)
	order := seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)

	updated, err := orders.UpdateStatus(seller.ID, order.ID, models.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, updated.Status)

	// Skipping a step is rejected.
	_, err = orders.UpdateStatus(seller.ID, order.ID, models.OrderDelivered)
	assert.ErrorContains(t, err, "cannot transition")
}

func TestUpdateStatusRejectsPlacedToOutForDelivery(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order7@test.com")
	seller := seedSeller(t, db, "orderkitchen7@test.com", models.SellerOpen)
	order := seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)

	_, err := orders.UpdateStatus(seller.ID, order.ID, models.OrderOutForDelivery)
	assert.ErrorContains(t, err, "cannot transition")
}

func TestUpdateStatusRejectsForeignSeller(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order8@test.com")
	seller := seedSeller(t, db, "orderkitchen8@test.com", models.SellerOpen)
	other := seedSeller(t, db, "orderkitchen8b@test.com", models.SellerOpen)
	order := seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)

	_, err := orders.UpdateStatus(other.ID, order.ID, models.OrderPreparing)
	assert.ErrorContains(t, err, "not found")
}

func TestCustomerCancelOnlyEarly(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order9@test.com")
	seller := seedSeller(t, db, "orderkitchen9@test.com", models.SellerOpen)

	placed := seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)
	cancelled, err := orders.Cancel(customer.ID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// Cancelling again is a conflict, not a no-op.
	_, err = orders.Cancel(customer.ID, placed.ID)
	assert.ErrorContains(t, err, "cannot be cancelled")

	outForDelivery := seedOrder(t, db, customer.ID, seller.ID, models.OrderOutForDelivery)
	_, err = orders.Cancel(customer.ID, outForDelivery.ID)
	assert.ErrorContains(t, err, "cannot be cancelled")
}

func TestDetailEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order10@test.com")
	stranger := seedCustomer(t, db, "order10b@test.com")
	seller := seedSeller(t, db, "orderkitchen10@test.com", models.SellerOpen)
	order := seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)

	_, err := orders.Detail(RoleCustomer, customer.ID, order.ID)
	require.NoError(t, err)

	_, err = orders.Detail(RoleCustomer, stranger.ID, order.ID)
	assert.ErrorContains(t, err, "access denied")

	_, err = orders.Detail(RoleSeller, seller.ID, order.ID)
	require.NoError(t, err)
}

func TestStatsForSellerCountsDeliveredRevenue(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, nil)

	customer := seedCustomer(t, db, "order11@test.com")
	seller := seedSeller(t, db, "orderkitchen11@test.com", models.SellerOpen)

	seedOrder(t, db, customer.ID, seller.ID, models.OrderDelivered)
	seedOrder(t, db, customer.ID, seller.ID, models.OrderDelivered)
	seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)
	seedOrder(t, db, customer.ID, seller.ID, models.OrderCancelled)

	stats, err := orders.StatsForSeller(seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalOrders)
	assert.EqualValues(t, 2, stats.CompletedOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.CancelledOrders)
	assert.Equal(t, 710.0, stats.Revenue)
}
