package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quickbite/backend/events"
	"github.com/quickbite/backend/feed"
	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

// Pricing constants applied at checkout.
const (
	DeliveryFee = 40.0
	TaxRate     = 0.05
)

type OrderService struct {
	DB        *gorm.DB
	Publisher *events.Publisher
}

func NewOrderService(db *gorm.DB, pub *events.Publisher) *OrderService {
	return &OrderService{DB: db, Publisher: pub}
}

type CheckoutInput struct {
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

// CreateFromCart materializes the customer's cart into an immutable
// order snapshot. Order, item snapshots, and cart clearing commit in one
// transaction; a failure anywhere rolls everything back.
func (s *OrderService) CreateFromCart(customerID uint, in *CheckoutInput) (*models.Order, error) {
	var order models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("customer_id = ?", customerID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ValidationError("cart is empty")
		}
		if err != nil {
			return utils.UpstreamError(err)
		}

		var items []models.CartItem
		if err := tx.Preload("FoodItem").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return utils.UpstreamError(err)
		}
		if len(items) == 0 {
			return utils.ValidationError("cart is empty")
		}

		sellerID := items[0].FoodItem.SellerID
		for _, item := range items {
			if item.FoodItem.SellerID != sellerID {
				return utils.StateConflictError("all items must be from the same restaurant")
			}
		}

		var seller models.Seller
		if err := tx.First(&seller, sellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("restaurant not found")
			}
			return utils.UpstreamError(err)
		}

		address := in.DeliveryAddress
		if address == "" {
			var customer models.Customer
			if err := tx.First(&customer, customerID).Error; err == nil {
				address = customer.Address
			}
		}
		if address == "" {
			return utils.ValidationError("delivery address is required")
		}

		var subtotal float64
		var totalItems int
		for _, item := range items {
			subtotal += item.FoodItem.Price * float64(item.Quantity)
			totalItems += item.Quantity
		}
		taxAmount := subtotal * TaxRate

		order = models.Order{
			OrderNumber:          models.GenerateOrderNumber(),
			CustomerID:           customerID,
			SellerID:             sellerID,
			Status:               models.OrderPlaced,
			Subtotal:             subtotal,
			DeliveryFee:          DeliveryFee,
			TaxAmount:            taxAmount,
			TotalPrice:           subtotal + DeliveryFee + taxAmount,
			TotalItems:           totalItems,
			DeliveryAddress:      address,
			DeliveryInstructions: in.DeliveryInstructions,
			PaymentStatus:        models.PaymentStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return utils.UpstreamError(err)
		}

		snapshots := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			snapshots = append(snapshots, models.OrderItem{
				OrderID:    order.ID,
				FoodItemID: item.FoodItemID,
				Name:       item.FoodItem.Name,
				Price:      item.FoodItem.Price,
				Quantity:   item.Quantity,
				TotalPrice: item.FoodItem.Price * float64(item.Quantity),
			})
		}
		if err := tx.Create(&snapshots).Error; err != nil {
			return utils.UpstreamError(err)
		}
		order.OrderItems = snapshots

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return utils.UpstreamError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(events.OrderCreated, &order)
	return &order, nil
}

// UpdateStatus applies a seller-driven transition. The state-qualified
// UPDATE keeps two concurrent transitions from both succeeding.
func (s *OrderService) UpdateStatus(sellerID, orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, utils.ValidationError("valid status is required")
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND seller_id = ?", orderID, sellerID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("order not found")
			}
			return utils.UpstreamError(err)
		}

		if !models.CanTransitionOrder(order.Status, status) {
			return utils.StateConflictError(fmt.Sprintf("cannot transition from %s to %s", order.Status, status))
		}

		updates := map[string]interface{}{"status": status}
		if status == models.OrderCancelled {
			now := time.Now()
			updates["cancelled_at"] = &now
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return utils.UpstreamError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.StateConflictError("order status changed concurrently")
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(statusEvent(status), &order)
	return &order, nil
}

// Cancel is the customer-side cancellation, allowed only while the
// order is placed or preparing. Re-cancelling is rejected, not a no-op.
func (s *OrderService) Cancel(customerID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("order not found")
			}
			return utils.UpstreamError(err)
		}

		if order.Status != models.OrderPlaced && order.Status != models.OrderPreparing {
			return utils.StateConflictError("order cannot be cancelled at this stage")
		}

		now := time.Now()
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(map[string]interface{}{"status": models.OrderCancelled, "cancelled_at": &now})
		if res.Error != nil {
			return utils.UpstreamError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.StateConflictError("order status changed concurrently")
		}
		order.Status = models.OrderCancelled
		order.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(events.OrderCancelled, &order)
	return &order, nil
}

// ListForCustomer returns the customer's orders, newest first.
func (s *OrderService) ListForCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return orders, nil
}

// ListForSeller returns the restaurant's orders, optionally filtered by
// status, newest first.
func (s *OrderService) ListForSeller(sellerID uint, status string) ([]models.Order, error) {
	q := s.DB.Where("seller_id = ?", sellerID)
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, utils.ValidationError("invalid status filter")
		}
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	return orders, nil
}

// Detail returns one order with its item snapshots. Customers see their
// own orders, sellers the ones placed at their restaurant.
func (s *OrderService) Detail(role string, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("order not found")
		}
		return nil, utils.UpstreamError(err)
	}

	switch role {
	case RoleCustomer:
		if order.CustomerID != userID {
			return nil, utils.AuthorizationError("access denied")
		}
	case RoleSeller:
		if order.SellerID != userID {
			return nil, utils.AuthorizationError("access denied")
		}
	case RoleDelivery:
		var assignment models.DeliveryAssignment
		err := s.DB.Where("order_id = ? AND delivery_partner_id = ?", orderID, userID).First(&assignment).Error
		if err != nil {
			return nil, utils.AuthorizationError("access denied")
		}
	default:
		return nil, utils.AuthorizationError("access denied")
	}
	return &order, nil
}

type OrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
	Revenue         float64 `json:"revenue"`
}

// StatsForSeller aggregates delivered revenue and order counts for one
// restaurant.
func (s *OrderService) StatsForSeller(sellerID uint) (*OrderStats, error) {
	return s.stats("seller_id", sellerID)
}

// StatsForCustomer aggregates spend and order counts for one customer.
func (s *OrderService) StatsForCustomer(customerID uint) (*OrderStats, error) {
	return s.stats("customer_id", customerID)
}

func (s *OrderService) stats(column string, id uint) (*OrderStats, error) {
	stats := &OrderStats{}
	base := func() *gorm.DB {
		return s.DB.Model(&models.Order{}).Where(column+" = ?", id)
	}

	if err := base().Count(&stats.TotalOrders).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if err := base().Where("status = ?", models.OrderDelivered).Count(&stats.CompletedOrders).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if err := base().Where("status IN ?", []string{models.OrderPlaced, models.OrderPreparing, models.OrderOutForDelivery}).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if err := base().Where("status = ?", models.OrderCancelled).Count(&stats.CancelledOrders).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}

	var revenue sql.NullFloat64
	if err := base().Where("status = ?", models.OrderDelivered).
		Select("SUM(total_price)").Scan(&revenue).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if revenue.Valid {
		stats.Revenue = revenue.Float64
	}
	return stats, nil
}

// notify pushes the change to the websocket feed and the event bus.
// Both are best-effort; the order is already committed.
func (s *OrderService) notify(event string, order *models.Order) {
	feed.BroadcastOrderUpdate(*order)
	if err := s.Publisher.PublishOrderEvent(event, order); err != nil {
		utils.ErrorLogger.Printf("publish %s for order %d: %v", event, order.ID, err)
	}
}

func statusEvent(status string) string {
	switch status {
	case models.OrderCancelled:
		return events.OrderCancelled
	case models.OrderDelivered:
		return events.OrderDelivered
	default:
		return events.OrderStatusChanged
	}
}
