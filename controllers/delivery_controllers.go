package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/utils"
)

type DeliveryController struct {
	Deliveries *services.DeliveryService
}

func NewDeliveryController(deliveries *services.DeliveryService) *DeliveryController {
	return &DeliveryController{Deliveries: deliveries}
}

// AvailablePartners lists partners free for assignment.
func (dc *DeliveryController) AvailablePartners(c *gin.Context) {
	partners, err := dc.Deliveries.AvailablePartners()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available partners retrieved successfully", partners)
}

// Assign links a delivery partner to one of the seller's preparing orders.
func (dc *DeliveryController) Assign(c *gin.Context) {
	var input struct {
		OrderID               uint       `json:"order_id" binding:"required"`
		DeliveryPartnerID     uint       `json:"delivery_partner_id" binding:"required"`
		EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := dc.Deliveries.Assign(utils.CurrentUserID(c), input.OrderID, input.DeliveryPartnerID, input.EstimatedDeliveryTime)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Delivery partner assigned", assignment)
}

// UpdateStatus advances the partner's assignment (picked up, delivered).
func (dc *DeliveryController) UpdateStatus(c *gin.Context) {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := dc.Deliveries.UpdateStatus(utils.CurrentUserID(c), assignmentID, input.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery status updated", assignment)
}

// UpdateLocation stores the partner's reported position.
func (dc *DeliveryController) UpdateLocation(c *gin.Context) {
	var input struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.Deliveries.UpdateLocation(utils.CurrentUserID(c), input.Latitude, input.Longitude); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Location updated", nil)
}

// CurrentAssignments lists the partner's undelivered assignments.
func (dc *DeliveryController) CurrentAssignments(c *gin.Context) {
	assignments, err := dc.Deliveries.CurrentAssignments(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assignments retrieved successfully", assignments)
}

// History lists the partner's completed deliveries.
func (dc *DeliveryController) History(c *gin.Context) {
	assignments, err := dc.Deliveries.History(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery history retrieved successfully", assignments)
}

// ForOrder returns the assignment tracking one order.
func (dc *DeliveryController) ForOrder(c *gin.Context) {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	assignment, err := dc.Deliveries.ForOrder(utils.CurrentRole(c), utils.CurrentUserID(c), orderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery assignment retrieved successfully", assignment)
}

// AddNotes attaches delivery notes to an assignment.
func (dc *DeliveryController) AddNotes(c *gin.Context) {
	assignmentID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := dc.Deliveries.AddNotes(utils.CurrentRole(c), utils.CurrentUserID(c), assignmentID, input.Notes)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery notes added", assignment)
}
