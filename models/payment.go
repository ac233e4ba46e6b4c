package models

import "time"

// Payment methods.
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
	PaymentMethodUPI    = "upi"
)

// Payment status values.
const (
	PaymentInitiated = "initiated"
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodOnline, PaymentMethodUPI:
		return true
	}
	return false
}

// Payment is the single payment record for an order, enforced by the
// unique index on OrderID. A completed payment is immutable.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderID       uint       `gorm:"not null;uniqueIndex" json:"order_id"`
	Order         Order      `gorm:"foreignKey:OrderID" json:"-"`
	CustomerID    uint       `gorm:"not null;index" json:"customer_id"`
	Customer      Customer   `gorm:"foreignKey:CustomerID" json:"-"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string     `gorm:"type:varchar(10);not null" json:"payment_method"`
	Status        string     `gorm:"type:varchar(10);not null;default:'initiated'" json:"status"`
	TransactionID string     `gorm:"type:varchar(64)" json:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}
