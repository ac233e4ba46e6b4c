package models

import "time"

// Delivery assignment status values.
const (
	AssignmentAssigned  = "assigned"
	AssignmentPickedUp  = "picked up"
	AssignmentDelivered = "delivered"
)

var assignmentTransitions = map[string][]string{
	AssignmentAssigned:  {AssignmentPickedUp},
	AssignmentPickedUp:  {AssignmentDelivered},
	AssignmentDelivered: {},
}

// CanTransitionAssignment reports whether an assignment may move from
// one status to another.
func CanTransitionAssignment(from, to string) bool {
	for _, next := range assignmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeliveryAssignment links one order to one delivery partner. The
// unique index on OrderID forbids double assignment.
type DeliveryAssignment struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	OrderID               uint            `gorm:"not null;uniqueIndex" json:"order_id"`
	Order                 Order           `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	DeliveryPartnerID     uint            `gorm:"not null;index" json:"delivery_partner_id"`
	DeliveryPartner       DeliveryPartner `gorm:"foreignKey:DeliveryPartnerID" json:"-"`
	Status                string          `gorm:"type:varchar(10);not null;default:'assigned'" json:"status"`
	AssignedAt            time.Time       `gorm:"not null" json:"assigned_at"`
	PickedUpAt            *time.Time      `json:"picked_up_at,omitempty"`
	DeliveredAt           *time.Time      `json:"delivered_at,omitempty"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actual_delivery_time,omitempty"`
	DeliveryNotes         string          `gorm:"type:text" json:"delivery_notes"`
}
