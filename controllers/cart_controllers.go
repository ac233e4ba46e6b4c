package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/utils"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// GetCart returns the caller's cart grouped by restaurant.
func (cc *CartController) GetCart(c *gin.Context) {
	view, err := cc.Carts.Get(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart retrieved successfully", view)
}

// AddItem puts a food item into the cart, merging quantities.
func (cc *CartController) AddItem(c *gin.Context) {
	var input struct {
		FoodItemID uint `json:"food_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	line, err := cc.Carts.AddItem(utils.CurrentUserID(c), input.FoodItemID, input.Quantity)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", line)
}

// UpdateItem replaces the quantity of one cart line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	itemID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	line, err := cc.Carts.UpdateItem(utils.CurrentUserID(c), itemID, input.Quantity)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item updated", line)
}

// RemoveItem deletes one cart line.
func (cc *CartController) RemoveItem(c *gin.Context) {
	itemID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := cc.Carts.RemoveItem(utils.CurrentUserID(c), itemID); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
}

// ClearCart deletes every line in the caller's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Carts.Clear(utils.CurrentUserID(c)); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
