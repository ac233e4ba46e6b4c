package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// CartLine is one cart row in the grouped cart view.
type CartLine struct {
	ID          uint    `json:"id"`
	FoodItemID  uint    `json:"food_item_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
	ImageURL    string  `json:"image_url"`
	IsAvailable bool    `json:"is_available"`
}

// RestaurantGroup presents the cart lines of one restaurant with its
// own subtotal. Multiple restaurants may coexist in the cart at the
// data level; checkout rejects mixed carts.
type RestaurantGroup struct {
	RestaurantID   uint       `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Status         string     `json:"status"`
	Items          []CartLine `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	TotalItems     int        `json:"total_items"`
}

type CartView struct {
	CartID      uint              `json:"cart_id"`
	Restaurants []RestaurantGroup `json:"restaurants"`
	TotalAmount float64           `json:"total_amount"`
	TotalItems  int               `json:"total_items"`
}

// activeCart fetches or lazily creates the customer's cart. FirstOrCreate
// with the unique index on customer_id keeps concurrent first-adds from
// racing two carts into existence.
func (s *CartService) activeCart(tx *gorm.DB, customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where(models.Cart{CustomerID: customerID}).
		Attrs(models.Cart{Status: models.CartActive}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return &cart, nil
}

// Get returns the cart grouped by restaurant with per-restaurant and
// grand totals.
func (s *CartService) Get(customerID uint) (*CartView, error) {
	cart, err := s.activeCart(s.DB, customerID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := s.DB.Preload("FoodItem").Preload("FoodItem.Seller").
		Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}

	view := &CartView{CartID: cart.ID, Restaurants: []RestaurantGroup{}}
	groupIdx := map[uint]int{}

	for _, item := range items {
		seller := item.FoodItem.Seller
		idx, ok := groupIdx[seller.ID]
		if !ok {
			view.Restaurants = append(view.Restaurants, RestaurantGroup{
				RestaurantID:   seller.ID,
				RestaurantName: seller.Name,
				Status:         seller.Status,
				Items:          []CartLine{},
			})
			idx = len(view.Restaurants) - 1
			groupIdx[seller.ID] = idx
		}

		lineTotal := item.Price * float64(item.Quantity)
		view.Restaurants[idx].Items = append(view.Restaurants[idx].Items, CartLine{
			ID:          item.ID,
			FoodItemID:  item.FoodItemID,
			Name:        item.FoodItem.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
			ImageURL:    item.FoodItem.ImageURL,
			IsAvailable: item.FoodItem.IsAvailable,
		})
		view.Restaurants[idx].Subtotal += lineTotal
		view.Restaurants[idx].TotalItems += item.Quantity
		view.TotalAmount += lineTotal
		view.TotalItems += item.Quantity
	}

	return view, nil
}

// AddItem appends a food item to the cart or merges the quantity into an
// existing line, refreshing the price copy either way.
func (s *CartService) AddItem(customerID, foodItemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.ValidationError("quantity must be at least 1")
	}

	var food models.FoodItem
	if err := s.DB.Preload("Seller").First(&food, foodItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("food item not found")
		}
		return nil, utils.UpstreamError(err)
	}
	if !food.IsAvailable {
		return nil, utils.StateConflictError("food item is not available")
	}
	if food.Seller.Status != models.SellerOpen {
		return nil, utils.StateConflictError("restaurant is currently closed")
	}

	var line models.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.activeCart(tx, customerID)
		if err != nil {
			return err
		}

		err = tx.Where("cart_id = ? AND food_item_id = ?", cart.ID, foodItemID).First(&line).Error
		switch {
		case err == nil:
			line.Quantity += quantity
			line.Price = food.Price
			if err := tx.Save(&line).Error; err != nil {
				return utils.UpstreamError(err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.CartItem{
				CartID:     cart.ID,
				FoodItemID: foodItemID,
				Quantity:   quantity,
				Price:      food.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return utils.UpstreamError(err)
			}
		default:
			return utils.UpstreamError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// UpdateItem replaces the quantity of a cart line.
func (s *CartService) UpdateItem(customerID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.ValidationError("quantity must be at least 1")
	}

	line, err := s.ownedItem(customerID, itemID)
	if err != nil {
		return nil, err
	}

	line.Quantity = quantity
	if err := s.DB.Save(line).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	return line, nil
}

// RemoveItem deletes one cart line.
func (s *CartService) RemoveItem(customerID, itemID uint) error {
	line, err := s.ownedItem(customerID, itemID)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(line).Error; err != nil {
		return utils.UpstreamError(err)
	}
	return nil
}

// Clear deletes every line in the customer's cart.
func (s *CartService) Clear(customerID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.activeCart(tx, customerID)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return utils.UpstreamError(err)
		}
		return nil
	})
}

func (s *CartService) ownedItem(customerID, itemID uint) (*models.CartItem, error) {
	var line models.CartItem
	err := s.DB.Joins("Cart").
		Where("cart_items.id = ? AND Cart.customer_id = ?", itemID, customerID).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("cart item not found")
		}
		return nil, utils.UpstreamError(err)
	}
	return &line, nil
}
