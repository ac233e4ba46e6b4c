package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/backend/models"
)

func TestCreateReviewUpdatesSellerRating(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customerA := seedCustomer(t, db, "rev1a@test.com")
	customerB := seedCustomer(t, db, "rev1b@test.com")
	seller := seedSeller(t, db, "revkitchen1@test.com", models.SellerOpen)

	_, err := reviews.Create(customerA.ID, &ReviewInput{SellerID: seller.ID, Rating: 4})
	require.NoError(t, err)
	_, err = reviews.Create(customerB.ID, &ReviewInput{SellerID: seller.ID, Rating: 5})
	require.NoError(t, err)

	var fresh models.Seller
	require.NoError(t, db.First(&fresh, seller.ID).Error)
	require.NotNil(t, fresh.Rating)
	assert.Equal(t, 4.5, *fresh.Rating)
}

func TestRatingRoundsToOneDecimal(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	seller := seedSeller(t, db, "revkitchen2@test.com", models.SellerOpen)
	ratings := []int{5, 4, 4} // mean 4.333... -> 4.3
	for i, r := range ratings {
		customer := seedCustomer(t, db, "rev2"+string(rune('a'+i))+"@test.com")
		_, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, Rating: r})
		require.NoError(t, err)
	}

	var fresh models.Seller
	require.NoError(t, db.First(&fresh, seller.ID).Error)
	require.NotNil(t, fresh.Rating)
	assert.Equal(t, 4.3, *fresh.Rating)
}

func TestCreateReviewWithFoodItemUpdatesBothRatings(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev3@test.com")
	seller := seedSeller(t, db, "revkitchen3@test.com", models.SellerOpen)
	food := seedFoodItem(t, db, seller, "Kebab", 140, true)

	_, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, FoodItemID: &food.ID, Rating: 3})
	require.NoError(t, err)

	var freshFood models.FoodItem
	require.NoError(t, db.First(&freshFood, food.ID).Error)
	require.NotNil(t, freshFood.Rating)
	assert.Equal(t, 3.0, *freshFood.Rating)
}

func TestCreateReviewRejectsForeignFoodItem(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev4@test.com")
	sellerA := seedSeller(t, db, "revkitchen4a@test.com", models.SellerOpen)
	sellerB := seedSeller(t, db, "revkitchen4b@test.com", models.SellerOpen)
	foodOfB := seedFoodItem(t, db, sellerB, "Falafel", 110, true)

	_, err := reviews.Create(customer.ID, &ReviewInput{SellerID: sellerA.ID, FoodItemID: &foodOfB.ID, Rating: 4})
	assert.ErrorContains(t, err, "invalid food item")
}

func TestOrderReviewRequiresDelivery(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev5@test.com")
	seller := seedSeller(t, db, "revkitchen5@test.com", models.SellerOpen)
	order := seedOrder(t, db, customer.ID, seller.ID, models.OrderPlaced)

	_, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, OrderID: &order.ID, Rating: 5})
	assert.ErrorContains(t, err, "not been delivered")
}

func TestOrderReviewedOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev6@test.com")
	seller := seedSeller(t, db, "revkitchen6@test.com", models.SellerOpen)
	order := seedOrder(t, db, customer.ID, seller.ID, models.OrderDelivered)

	_, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, OrderID: &order.ID, Rating: 5})
	require.NoError(t, err)

	_, err = reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, OrderID: &order.ID, Rating: 2})
	assert.ErrorContains(t, err, "already reviewed")
}

func TestUpdateReviewRecomputesRating(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev7@test.com")
	seller := seedSeller(t, db, "revkitchen7@test.com", models.SellerOpen)

	review, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, Rating: 2})
	require.NoError(t, err)

	_, err = reviews.Update(customer.ID, review.ID, 5, nil)
	require.NoError(t, err)

	var fresh models.Seller
	require.NoError(t, db.First(&fresh, seller.ID).Error)
	require.NotNil(t, fresh.Rating)
	assert.Equal(t, 5.0, *fresh.Rating)
}

func TestDeleteLastReviewClearsRating(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev8@test.com")
	seller := seedSeller(t, db, "revkitchen8@test.com", models.SellerOpen)

	review, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, Rating: 4})
	require.NoError(t, err)

	var rated models.Seller
	require.NoError(t, db.First(&rated, seller.ID).Error)
	require.NotNil(t, rated.Rating)

	require.NoError(t, reviews.Delete(customer.ID, review.ID))

	var cleared models.Seller
	require.NoError(t, db.First(&cleared, seller.ID).Error)
	assert.Nil(t, cleared.Rating)
}

func TestReviewValidation(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	customer := seedCustomer(t, db, "rev9@test.com")
	seller := seedSeller(t, db, "revkitchen9@test.com", models.SellerOpen)

	_, err := reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, Rating: 0})
	assert.Error(t, err)

	_, err = reviews.Create(customer.ID, &ReviewInput{SellerID: seller.ID, Rating: 6})
	assert.Error(t, err)

	_, err = reviews.Create(customer.ID, &ReviewInput{Rating: 3})
	assert.Error(t, err)
}

func TestDeleteForeignReviewRejected(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)

	owner := seedCustomer(t, db, "rev10@test.com")
	other := seedCustomer(t, db, "rev10b@test.com")
	seller := seedSeller(t, db, "revkitchen10@test.com", models.SellerOpen)

	review, err := reviews.Create(owner.ID, &ReviewInput{SellerID: seller.ID, Rating: 4})
	require.NoError(t, err)

	err = reviews.Delete(other.ID, review.ID)
	assert.ErrorContains(t, err, "not found")
}
