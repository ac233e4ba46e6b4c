package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// CreateIntent opens the payment for an order. Non-COD methods also get
// a gateway intent.
func (pc *PaymentController) CreateIntent(c *gin.Context) {
	var input struct {
		OrderID       uint   `json:"order_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, intent, err := pc.Payments.CreateIntent(utils.CurrentUserID(c), input.OrderID, input.PaymentMethod)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	data := gin.H{"payment": payment}
	if intent != nil {
		data["intent"] = intent
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment created", data)
}

// Confirm completes an online/UPI payment.
func (pc *PaymentController) Confirm(c *gin.Context) {
	paymentID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	payment, err := pc.Payments.Confirm(utils.CurrentUserID(c), paymentID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment confirmed", payment)
}

// ConfirmCOD records cash collected by the assigned delivery partner.
func (pc *PaymentController) ConfirmCOD(c *gin.Context) {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	payment, err := pc.Payments.ConfirmCOD(utils.CurrentUserID(c), orderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cash payment confirmed", payment)
}

// Cancel voids a not-yet-completed payment.
func (pc *PaymentController) Cancel(c *gin.Context) {
	paymentID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	payment, err := pc.Payments.Cancel(utils.CurrentUserID(c), paymentID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment cancelled", payment)
}

// ForOrder returns the payment tracking one order.
func (pc *PaymentController) ForOrder(c *gin.Context) {
	orderID, err := paramID(c, "orderId")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	payment, err := pc.Payments.ForOrder(utils.CurrentRole(c), utils.CurrentUserID(c), orderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment retrieved successfully", payment)
}

// History lists the customer's payments.
func (pc *PaymentController) History(c *gin.Context) {
	payments, err := pc.Payments.History(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment history retrieved successfully", payments)
}

// Stats aggregates the customer's payment history.
func (pc *PaymentController) Stats(c *gin.Context) {
	stats, err := pc.Payments.Stats(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment stats retrieved successfully", stats)
}
