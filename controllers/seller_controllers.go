package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/storage"
	"github.com/quickbite/backend/utils"
)

type SellerController struct {
	DB     *gorm.DB
	Images storage.ImageStore
}

func NewSellerController(db *gorm.DB, images storage.ImageStore) *SellerController {
	return &SellerController{DB: db, Images: images}
}

// List returns restaurants for customers to browse. ?status=open filters
// to currently open ones; ?cuisine= filters by cuisine type.
func (sc *SellerController) List(c *gin.Context) {
	q := sc.DB.Model(&models.Seller{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		q = q.Where("cuisine_type = ?", cuisine)
	}

	var sellers []models.Seller
	if err := q.Find(&sellers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurants retrieved successfully", sellers)
}

// Detail returns one restaurant. Public.
func (sc *SellerController) Detail(c *gin.Context) {
	sellerID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var seller models.Seller
	if err := sc.DB.First(&seller, sellerID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant retrieved successfully", seller)
}

// UpdateProfile edits the calling seller's restaurant details.
func (sc *SellerController) UpdateProfile(c *gin.Context) {
	var input struct {
		Name           *string  `json:"name"`
		Phone          *string  `json:"phone"`
		Address        *string  `json:"address"`
		Description    *string  `json:"description"`
		CuisineType    *string  `json:"cuisine_type"`
		OpeningTime    *string  `json:"opening_time"`
		ClosingTime    *string  `json:"closing_time"`
		MinimumOrder   *float64 `json:"minimum_order"`
		DeliveryRadius *float64 `json:"delivery_radius"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var seller models.Seller
	if err := sc.DB.First(&seller, utils.CurrentUserID(c)).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}

	if input.Name != nil {
		seller.Name = *input.Name
	}
	if input.Phone != nil {
		seller.Phone = *input.Phone
	}
	if input.Address != nil {
		seller.Address = *input.Address
	}
	if input.Description != nil {
		seller.Description = *input.Description
	}
	if input.CuisineType != nil {
		seller.CuisineType = *input.CuisineType
	}
	if input.OpeningTime != nil {
		seller.OpeningTime = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		seller.ClosingTime = *input.ClosingTime
	}
	if input.MinimumOrder != nil {
		seller.MinimumOrder = *input.MinimumOrder
	}
	if input.DeliveryRadius != nil {
		seller.DeliveryRadius = *input.DeliveryRadius
	}

	if err := sc.DB.Save(&seller).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated", seller)
}

// SetStatus flips the restaurant between open and close.
func (sc *SellerController) SetStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Status != models.SellerOpen && input.Status != models.SellerClosed {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be open or close"))
		return
	}

	sellerID := utils.CurrentUserID(c)
	if err := sc.DB.Model(&models.Seller{}).Where("id = ?", sellerID).
		Update("status", input.Status).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Status updated", gin.H{"status": input.Status})
}

// UploadImage replaces the restaurant's cover image.
func (sc *SellerController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer src.Close()

	img, err := sc.Images.Save(src, file.Filename)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var seller models.Seller
	if err := sc.DB.First(&seller, utils.CurrentUserID(c)).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("restaurant not found"))
		return
	}

	oldID := seller.ImageID
	seller.ImageURL = img.URL
	seller.ImageID = img.ID
	if err := sc.DB.Save(&seller).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if oldID != "" {
		if err := sc.Images.Remove(oldID); err != nil {
			utils.ErrorLogger.Printf("remove image %s: %v", oldID, err)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Image uploaded", gin.H{"image_url": img.URL})
}
