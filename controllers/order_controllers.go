package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/middlewares"
	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// Checkout converts the caller's cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	var input services.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateFromCart(utils.CurrentUserID(c), &input)
	middlewares.RecordOrderOperation("checkout", err == nil)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

// ListMine returns the customer's order history.
func (oc *OrderController) ListMine(c *gin.Context) {
	orders, err := oc.Orders.ListForCustomer(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// ListForSeller returns the restaurant's orders, optionally filtered by
// ?status=.
func (oc *OrderController) ListForSeller(c *gin.Context) {
	orders, err := oc.Orders.ListForSeller(utils.CurrentUserID(c), c.Query("status"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// Detail returns one order with its item snapshots.
func (oc *OrderController) Detail(c *gin.Context) {
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	order, err := oc.Orders.Detail(utils.CurrentRole(c), utils.CurrentUserID(c), orderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved successfully", order)
}

// UpdateStatus applies a seller-driven lifecycle transition.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := paramID(c, "id")
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

	order, err := oc.Orders.UpdateStatus(utils.CurrentUserID(c), orderID, input.Status)
	middlewares.RecordOrderOperation("status_update", err == nil)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// Cancel is the customer-side cancellation.
func (oc *OrderController) Cancel(c *gin.Context) {
	orderID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	order, err := oc.Orders.Cancel(utils.CurrentUserID(c), orderID)
	middlewares.RecordOrderOperation("cancel", err == nil)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// SellerStats aggregates revenue and order counts for the restaurant.
func (oc *OrderController) SellerStats(c *gin.Context) {
	stats, err := oc.Orders.StatsForSeller(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order stats retrieved successfully", stats)
}

// CustomerStats aggregates the customer's order history.
func (oc *OrderController) CustomerStats(c *gin.Context) {
	stats, err := oc.Orders.StatsForCustomer(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order stats retrieved successfully", stats)
}
