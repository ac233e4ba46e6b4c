package services

import (
	"database/sql"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

type ReviewInput struct {
	SellerID   uint   `json:"seller_id"`
	FoodItemID *uint  `json:"food_item_id"`
	OrderID    *uint  `json:"order_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Create validates the review's references and writes it together with
// the recomputed aggregate ratings in one transaction.
func (s *ReviewService) Create(customerID uint, in *ReviewInput) (*models.Review, error) {
	if in.SellerID == 0 || in.Rating < 1 || in.Rating > 5 {
		return nil, utils.ValidationError("seller id and rating between 1 and 5 are required")
	}

	var review models.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var seller models.Seller
		if err := tx.First(&seller, in.SellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("seller not found")
			}
			return utils.UpstreamError(err)
		}

		if in.FoodItemID != nil {
			var food models.FoodItem
			if err := tx.First(&food, *in.FoodItemID).Error; err != nil || food.SellerID != in.SellerID {
				return utils.ValidationError("invalid food item")
			}
		}

		if in.OrderID != nil {
			var order models.Order
			if err := tx.First(&order, *in.OrderID).Error; err != nil ||
				order.CustomerID != customerID || order.SellerID != in.SellerID {
				return utils.ValidationError("invalid order")
			}
			if order.Status != models.OrderDelivered {
				return utils.StateConflictError("cannot review an order that has not been delivered")
			}

			var existing models.Review
			err := tx.Where("order_id = ?", *in.OrderID).First(&existing).Error
			if err == nil {
				return utils.StateConflictError("you have already reviewed this order")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.UpstreamError(err)
			}
		}

		review = models.Review{
			CustomerID: customerID,
			SellerID:   in.SellerID,
			FoodItemID: in.FoodItemID,
			OrderID:    in.OrderID,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return utils.UpstreamError(err)
		}

		return s.recompute(tx, in.SellerID, in.FoodItemID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Update changes a customer's own review and refreshes the aggregates.
func (s *ReviewService) Update(customerID, reviewID uint, rating int, comment *string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.ValidationError("rating between 1 and 5 is required")
	}

	var review models.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND customer_id = ?", reviewID, customerID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("review not found")
			}
			return utils.UpstreamError(err)
		}

		review.Rating = rating
		if comment != nil {
			review.Comment = *comment
		}
		if err := tx.Save(&review).Error; err != nil {
			return utils.UpstreamError(err)
		}

		return s.recompute(tx, review.SellerID, review.FoodItemID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a customer's own review and refreshes the aggregates;
// the last review for a target clears its rating entirely.
func (s *ReviewService) Delete(customerID, reviewID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("id = ? AND customer_id = ?", reviewID, customerID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("review not found")
			}
			return utils.UpstreamError(err)
		}

		if err := tx.Delete(&review).Error; err != nil {
			return utils.UpstreamError(err)
		}

		return s.recompute(tx, review.SellerID, review.FoodItemID)
	})
}

// BySeller lists reviews for a restaurant, newest first.
func (s *ReviewService) BySeller(sellerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.Where("seller_id = ?", sellerID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return reviews, nil
}

// ByFoodItem lists reviews for one dish, newest first.
func (s *ReviewService) ByFoodItem(foodItemID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.Where("food_item_id = ?", foodItemID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return reviews, nil
}

// ByCustomer lists the customer's own reviews, newest first.
func (s *ReviewService) ByCustomer(customerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return reviews, nil
}

// recompute rewrites the derived mean rating for the seller and, when
// referenced, the food item, within the caller's transaction so the
// aggregate never drifts from the contributing reviews.
func (s *ReviewService) recompute(tx *gorm.DB, sellerID uint, foodItemID *uint) error {
	if err := recomputeRating(tx, &models.Seller{}, "seller_id", sellerID); err != nil {
		return err
	}
	if foodItemID != nil {
		if err := recomputeRating(tx, &models.FoodItem{}, "food_item_id", *foodItemID); err != nil {
			return err
		}
	}
	return nil
}

func recomputeRating(tx *gorm.DB, target interface{}, column string, id uint) error {
	var avg sql.NullFloat64
	err := tx.Model(&models.Review{}).
		Where(column+" = ?", id).
		Select("AVG(rating)").Scan(&avg).Error
	if err != nil {
		return utils.UpstreamError(err)
	}

	var value interface{}
	if avg.Valid {
		value = math.Round(avg.Float64*10) / 10
	} else {
		value = nil // no reviews left: clear the rating
	}

	if err := tx.Model(target).Where("id = ?", id).Update("rating", value).Error; err != nil {
		return utils.UpstreamError(err)
	}
	return nil
}
