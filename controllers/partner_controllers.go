package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

type PartnerController struct {
	DB *gorm.DB
}

func NewPartnerController(db *gorm.DB) *PartnerController {
	return &PartnerController{DB: db}
}

// UpdateProfile edits the calling partner's details.
func (pc *PartnerController) UpdateProfile(c *gin.Context) {
	var input struct {
		Name        *string `json:"name"`
		Phone       *string `json:"phone"`
		VehicleType *string `json:"vehicle_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.VehicleType != nil && !models.ValidVehicleType(*input.VehicleType) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("vehicle type must be bike, scooter or car"))
		return
	}

	var partner models.DeliveryPartner
	if err := pc.DB.First(&partner, utils.CurrentUserID(c)).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("account not found"))
		return
	}

	if input.Name != nil {
		partner.Name = *input.Name
	}
	if input.Phone != nil {
		partner.Phone = *input.Phone
	}
	if input.VehicleType != nil {
		partner.VehicleType = *input.VehicleType
	}

	if err := pc.DB.Save(&partner).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated", partner)
}

// SetAvailability lets a partner go on or off duty. Going unavailable
// does not touch assignments already in flight.
func (pc *PartnerController) SetAvailability(c *gin.Context) {
	var input struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	partnerID := utils.CurrentUserID(c)
	if err := pc.DB.Model(&models.DeliveryPartner{}).Where("id = ?", partnerID).
		Update("is_available", *input.IsAvailable).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability updated", gin.H{"is_available": *input.IsAvailable})
}
