package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/utils"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

// Create writes a review and refreshes the aggregate ratings.
func (rc *ReviewController) Create(c *gin.Context) {
	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	review, err := rc.Reviews.Create(utils.CurrentUserID(c), &input)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Review created", review)
}

// Update changes the caller's own review.
func (rc *ReviewController) Update(c *gin.Context) {
	reviewID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		Rating  int     `json:"rating" binding:"required"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	review, err := rc.Reviews.Update(utils.CurrentUserID(c), reviewID, input.Rating, input.Comment)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review updated", review)
}

// Delete removes the caller's own review.
func (rc *ReviewController) Delete(c *gin.Context) {
	reviewID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := rc.Reviews.Delete(utils.CurrentUserID(c), reviewID); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review deleted", nil)
}

// BySeller lists a restaurant's reviews. Public.
func (rc *ReviewController) BySeller(c *gin.Context) {
	sellerID, err := paramID(c, "sellerId")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	reviews, err := rc.Reviews.BySeller(sellerID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// ByFoodItem lists one dish's reviews. Public.
func (rc *ReviewController) ByFoodItem(c *gin.Context) {
	foodItemID, err := paramID(c, "foodItemId")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	reviews, err := rc.Reviews.ByFoodItem(foodItemID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// Mine lists the caller's own reviews.
func (rc *ReviewController) Mine(c *gin.Context) {
	reviews, err := rc.Reviews.ByCustomer(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}
