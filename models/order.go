package models

import (
	"fmt"
	"math/rand"
	"time"
)

// Order status values.
const (
	OrderPlaced         = "placed"
	OrderPreparing      = "preparing"
	OrderOutForDelivery = "out for delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Order payment status values.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// orderTransitions is the authoritative status machine. Delivered and
// cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderPlaced:         {OrderPreparing, OrderCancelled},
	OrderPreparing:      {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered, OrderCancelled},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status
// to another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of a checked-out cart. Only the status
// fields change after creation.
type Order struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	OrderNumber          string      `gorm:"type:varchar(20);unique;not null" json:"order_number"`
	CustomerID           uint        `gorm:"not null;index" json:"customer_id"`
	Customer             Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	SellerID             uint        `gorm:"not null;index" json:"seller_id"`
	Seller               Seller      `gorm:"foreignKey:SellerID" json:"-"`
	Status               string      `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Subtotal             float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee          float64     `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	TaxAmount            float64     `gorm:"type:decimal(10,2);not null" json:"tax_amount"`
	TotalPrice           float64     `gorm:"type:decimal(10,2);not null" json:"total_price"`
	TotalItems           int         `gorm:"not null" json:"total_items"`
	DeliveryAddress      string      `gorm:"type:text" json:"delivery_address"`
	DeliveryInstructions string      `gorm:"type:text" json:"delivery_instructions"`
	PaymentStatus        string      `gorm:"type:varchar(10);not null;default:'pending'" json:"payment_status"`
	CancelledAt          *time.Time  `json:"cancelled_at,omitempty"`
	CreatedAt            time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems           []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

// GenerateOrderNumber builds a human-readable order number from a
// timestamp suffix and a random component. Not guaranteed unique; the
// DB unique constraint is the backstop.
func GenerateOrderNumber() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	return fmt.Sprintf("ORD%s%03d", ts, rand.Intn(1000))
}
