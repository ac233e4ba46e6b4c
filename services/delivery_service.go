package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/quickbite/backend/events"
	"github.com/quickbite/backend/feed"
	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

type DeliveryService struct {
	DB        *gorm.DB
	Publisher *events.Publisher
}

func NewDeliveryService(db *gorm.DB, pub *events.Publisher) *DeliveryService {
	return &DeliveryService{DB: db, Publisher: pub}
}

// AvailablePartners lists partners currently free for assignment.
func (s *DeliveryService) AvailablePartners() ([]models.DeliveryPartner, error) {
	var partners []models.DeliveryPartner
	if err := s.DB.Where("is_available = ?", true).Find(&partners).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	return partners, nil
}

// Assign links a free partner to a preparing order. Assignment creation,
// partner unavailability, and the order's move to "out for delivery"
// commit together.
func (s *DeliveryService) Assign(sellerID, orderID, partnerID uint, eta *time.Time) (*models.DeliveryAssignment, error) {
	var assignment models.DeliveryAssignment
	var order models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND seller_id = ?", orderID, sellerID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("order not found")
			}
			return utils.UpstreamError(err)
		}
		if order.Status != models.OrderPreparing {
			return utils.StateConflictError("order must be in preparing status to assign delivery")
		}

		var existing models.DeliveryAssignment
		err := tx.Where("order_id = ?", orderID).First(&existing).Error
		if err == nil {
			return utils.StateConflictError("order already has a delivery assignment")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.UpstreamError(err)
		}

		// Claim the partner with a guarded update so two sellers cannot
		// grab the same partner concurrently.
		res := tx.Model(&models.DeliveryPartner{}).
			Where("id = ? AND is_available = ?", partnerID, true).
			Update("is_available", false)
		if res.Error != nil {
			return utils.UpstreamError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.NotFoundError("delivery partner not found or not available")
		}

		assignment = models.DeliveryAssignment{
			OrderID:               orderID,
			DeliveryPartnerID:     partnerID,
			Status:                models.AssignmentAssigned,
			AssignedAt:            time.Now(),
			EstimatedDeliveryTime: eta,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return utils.UpstreamError(err)
		}

		res = tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderPreparing).
			Update("status", models.OrderOutForDelivery)
		if res.Error != nil {
			return utils.UpstreamError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.StateConflictError("order status changed concurrently")
		}
		order.Status = models.OrderOutForDelivery
		return nil
	})
	if err != nil {
		return nil, err
	}

	feed.BroadcastDeliveryUpdate(assignment)
	if err := s.Publisher.PublishOrderEvent(events.OrderStatusChanged, &order); err != nil {
		utils.ErrorLogger.Printf("publish assignment event for order %d: %v", order.ID, err)
	}
	return &assignment, nil
}

// UpdateStatus advances an assignment through picked up and delivered.
// Completing a delivery atomically marks the order delivered and frees
// the partner; a second delivered call is rejected.
func (s *DeliveryService) UpdateStatus(partnerID, assignmentID uint, status string) (*models.DeliveryAssignment, error) {
	if status != models.AssignmentPickedUp && status != models.AssignmentDelivered {
		return nil, utils.ValidationError("valid status (picked up, delivered) is required")
	}

	var assignment models.DeliveryAssignment
	var order models.Order
	delivered := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND delivery_partner_id = ?", assignmentID, partnerID).First(&assignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("delivery assignment not found")
			}
			return utils.UpstreamError(err)
		}

		if !models.CanTransitionAssignment(assignment.Status, status) {
			return utils.StateConflictError(fmt.Sprintf("cannot transition delivery from %s to %s", assignment.Status, status))
		}

		now := time.Now()
		updates := map[string]interface{}{"status": status}
		switch status {
		case models.AssignmentPickedUp:
			updates["picked_up_at"] = &now
		case models.AssignmentDelivered:
			updates["delivered_at"] = &now
			updates["actual_delivery_time"] = &now
		}

		res := tx.Model(&models.DeliveryAssignment{}).
			Where("id = ? AND status = ?", assignment.ID, assignment.Status).
			Updates(updates)
		if res.Error != nil {
			return utils.UpstreamError(res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.StateConflictError("delivery status changed concurrently")
		}
		assignment.Status = status

		if status == models.AssignmentDelivered {
			delivered = true

			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", assignment.OrderID, models.OrderOutForDelivery).
				Update("status", models.OrderDelivered)
			if res.Error != nil {
				return utils.UpstreamError(res.Error)
			}
			if res.RowsAffected == 0 {
				return utils.StateConflictError("order is not out for delivery")
			}

			if err := tx.Model(&models.DeliveryPartner{}).
				Where("id = ?", partnerID).
				Update("is_available", true).Error; err != nil {
				return utils.UpstreamError(err)
			}

			if err := tx.First(&order, assignment.OrderID).Error; err != nil {
				return utils.UpstreamError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	feed.BroadcastDeliveryUpdate(assignment)
	if delivered {
		if err := s.Publisher.PublishOrderEvent(events.OrderDelivered, &order); err != nil {
			utils.ErrorLogger.Printf("publish delivered event for order %d: %v", order.ID, err)
		}
	}
	return &assignment, nil
}

// UpdateLocation stores the partner's last reported position.
func (s *DeliveryService) UpdateLocation(partnerID uint, lat, lng float64) error {
	res := s.DB.Model(&models.DeliveryPartner{}).
		Where("id = ?", partnerID).
		Updates(map[string]interface{}{"current_lat": lat, "current_lng": lng})
	if res.Error != nil {
		return utils.UpstreamError(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("delivery partner not found")
	}
	return nil
}

// CurrentAssignments lists the partner's undelivered assignments.
func (s *DeliveryService) CurrentAssignments(partnerID uint) ([]models.DeliveryAssignment, error) {
	var assignments []models.DeliveryAssignment
	err := s.DB.Preload("Order").
		Where("delivery_partner_id = ? AND status <> ?", partnerID, models.AssignmentDelivered).
		Find(&assignments).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return assignments, nil
}

// History lists the partner's completed deliveries, newest first.
func (s *DeliveryService) History(partnerID uint) ([]models.DeliveryAssignment, error) {
	var assignments []models.DeliveryAssignment
	err := s.DB.Preload("Order").
		Where("delivery_partner_id = ? AND status = ?", partnerID, models.AssignmentDelivered).
		Order("delivered_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, utils.UpstreamError(err)
	}
	return assignments, nil
}

// ForOrder returns the assignment tracking an order, visible to the
// order's customer, seller, or assigned partner.
func (s *DeliveryService) ForOrder(role string, userID, orderID uint) (*models.DeliveryAssignment, error) {
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
	}

	var assignment models.DeliveryAssignment
	err := s.DB.Where("order_id = ?", orderID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("no delivery assignment found for this order")
		}
		return nil, utils.UpstreamError(err)
	}

	if role == RoleDelivery && assignment.DeliveryPartnerID != userID {
		return nil, utils.AuthorizationError("access denied")
	}
	return &assignment, nil
}

// AddNotes attaches delivery notes, writable by the assigned partner or
// the order's seller.
func (s *DeliveryService) AddNotes(role string, userID, assignmentID uint, notes string) (*models.DeliveryAssignment, error) {
	if notes == "" {
		return nil, utils.ValidationError("notes are required")
	}

	var assignment models.DeliveryAssignment
	err := s.DB.Preload("Order").First(&assignment, assignmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("delivery assignment not found")
		}
		return nil, utils.UpstreamError(err)
	}

	switch role {
	case RoleDelivery:
		if assignment.DeliveryPartnerID != userID {
			return nil, utils.AuthorizationError("access denied")
		}
	case RoleSeller:
		if assignment.Order.SellerID != userID {
			return nil, utils.AuthorizationError("access denied")
		}
	default:
		return nil, utils.AuthorizationError("access denied")
	}

	assignment.DeliveryNotes = notes
	if err := s.DB.Model(&models.DeliveryAssignment{}).
		Where("id = ?", assignment.ID).
		Update("delivery_notes", notes).Error; err != nil {
		return nil, utils.UpstreamError(err)
	}
	return &assignment, nil
}
