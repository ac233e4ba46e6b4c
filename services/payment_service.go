package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickbite/backend/feed"
	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// GatewayIntent is the simulated payment-gateway handle returned for
// online/UPI payments. No real gateway is called.
type GatewayIntent struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	ClientSecret string  `json:"client_secret"`
}

// CreateIntent opens the single payment record for an order. COD starts
// pending; online/UPI start initiated with a gateway intent.
func (s *PaymentService) CreateIntent(customerID, orderID uint, method string) (*models.Payment, *GatewayIntent, error) {
	if !models.ValidPaymentMethod(method) {
		return nil, nil, utils.ValidationError("invalid payment method")
	}

	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("order not found")
			}
			return utils.UpstreamError(err)
		}

		var existing models.Payment
		err := tx.Where("order_id = ?", orderID).First(&existing).Error
		if err == nil {
			return utils.StateConflictError("payment already exists for this order")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.UpstreamError(err)
		}

		status := models.PaymentInitiated
		if method == models.PaymentMethodCOD {
			status = models.PaymentPending
		}

		payment = models.Payment{
			OrderID:       orderID,
			CustomerID:    customerID,
			Amount:        order.TotalPrice,
			PaymentMethod: method,
			Status:        status,
			TransactionID: uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return utils.UpstreamError(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if method == models.PaymentMethodCOD {
		return &payment, nil, nil
	}

	intent := &GatewayIntent{
		ID:           payment.TransactionID,
		Amount:       payment.Amount,
		Currency:     "inr",
		Status:       "requires_payment_method",
		ClientSecret: fmt.Sprintf("%s_secret_%d", payment.TransactionID, time.Now().UnixMilli()),
	}
	return &payment, intent, nil
}

// Confirm completes an online/UPI payment after (simulated) gateway
// confirmation and marks the order paid. Completed payments are
// immutable.
func (s *PaymentService) Confirm(customerID, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND customer_id = ?", paymentID, customerID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("payment not found")
			}
			return utils.UpstreamError(err)
		}

		if payment.PaymentMethod == models.PaymentMethodCOD {
			return utils.StateConflictError("cash on delivery payments are confirmed upon delivery")
		}
		return s.complete(tx, &payment)
	})
	if err != nil {
		return nil, err
	}

	feed.BroadcastPaymentUpdate(payment)
	return &payment, nil
}

// ConfirmCOD records cash received by the assigned delivery partner.
func (s *PaymentService) ConfirmCOD(partnerID, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var assignment models.DeliveryAssignment
		err := tx.Where("order_id = ? AND delivery_partner_id = ?", orderID, partnerID).First(&assignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.AuthorizationError("order is not assigned to this delivery partner")
			}
			return utils.UpstreamError(err)
		}

		if err := tx.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("payment not found")
			}
			return utils.UpstreamError(err)
		}

		if payment.PaymentMethod != models.PaymentMethodCOD {
			return utils.StateConflictError("payment method is not cash on delivery")
		}
		return s.complete(tx, &payment)
	})
	if err != nil {
		return nil, err
	}

	feed.BroadcastPaymentUpdate(payment)
	return &payment, nil
}

// Cancel voids a not-yet-completed payment and flags the order's payment
// status as cancelled.
func (s *PaymentService) Cancel(customerID, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND customer_id = ?", paymentID, customerID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("payment not found")
			}
			return utils.UpstreamError(err)
		}

		if payment.Status == models.PaymentCompleted {
			return utils.StateConflictError("completed payment cannot be cancelled")
		}

		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, payment.Status).
			Update("status", models.PaymentCancelled)
		if res.Error != nil {
			return utils.UpstreamError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.StateConflictError("payment status changed concurrently")
		}
		payment.Status = models.PaymentCancelled

		if err := tx.Model(&models.Order{}).
			Where("id = ?", payment.OrderID).
			Update("payment_status", models.PaymentStatusCancelled).Error; err != nil {
			return utils.UpstreamError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	feed.BroadcastPaymentUpdate(payment)
	return &payment, nil
}

// complete moves a payment to completed and the order to paid, guarding
// against a concurrent completion.
func (s *PaymentService) complete(tx *gorm.DB, payment *models.Payment) error {
	if payment.Status == models.PaymentCompleted {
		return utils.StateConflictError("payment already completed")
	}

	now := time.Now()
	res := tx.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, payment.Status).
		Updates(map[string]interface{}{"status": models.PaymentCompleted, "paid_at": &now})
	if res.Error != nil {
		return utils.UpstreamError(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.StateConflictError("payment status changed concurrently")
	}
	payment.Status = models.PaymentCompleted
	payment.PaidAt = &now

	if err := tx.Model(&models.Order{}).
		Where("id = ?", payment.OrderID).
		Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
		return utils.UpstreamError(err)
	}
	return nil
}

// ForOrder returns the payment for an order, visible to the customer or
// the restaurant.
func (s *PaymentService) ForOrder(role string, userID, orderID uint) (*models.Payment, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
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
	default:
		return nil, utils.AuthorizationError("access denied")
	}

	var payment models.Payment
	if err := s.DB.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("payment not found")
		}
		return nil, utils.UpstreamError(err)
	}
	return &payment, nil
}

// History lists the customer's payments, newest first.
func (s *PaymentService) History(customerID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return payments, nil
}

type PaymentStats struct {
	TotalPayments     int64   `json:"total_payments"`
	CompletedPayments int64   `json:"completed_payments"`
	PendingPayments   int64   `json:"pending_payments"`
	CancelledPayments int64   `json:"cancelled_payments"`
	TotalPaid         float64 `json:"total_paid"`
}

// Stats aggregates the customer's payment history.
func (s *PaymentService) Stats(customerID uint) (*PaymentStats, error) {
	stats := &PaymentStats{}
	base := func() *gorm.DB {
		return s.DB.Model(&models.Payment{}).Where("customer_id = ?", customerID)
	}

	if err := base().Count(&stats.TotalPayments).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if err := base().Where("status = ?", models.PaymentCompleted).Count(&stats.CompletedPayments).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if err := base().Where("status IN ?", []string{models.PaymentInitiated, models.PaymentPending}).
		Count(&stats.PendingPayments).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if err := base().Where("status = ?", models.PaymentCancelled).Count(&stats.CancelledPayments).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}

	var paid sql.NullFloat64
	if err := base().Where("status = ?", models.PaymentCompleted).
		Select("SUM(amount)").Scan(&paid).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	if paid.Valid {
		stats.TotalPaid = paid.Float64
	}
	return stats, nil
}
