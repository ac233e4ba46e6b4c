package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// Create adds a menu category owned by the calling seller.
func (cc *CategoryController) Create(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		Name:     input.Name,
		SellerID: utils.CurrentUserID(c),
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// Update renames one of the seller's categories.
func (cc *CategoryController) Update(c *gin.Context) {
	categoryID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category, err := cc.owned(utils.CurrentUserID(c), categoryID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	category.Name = input.Name
	if err := cc.DB.Save(category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// Delete removes a category the seller owns. Categories still holding
// food items are kept.
func (cc *CategoryController) Delete(c *gin.Context) {
	categoryID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	category, err := cc.owned(utils.CurrentUserID(c), categoryID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var count int64
	if err := cc.DB.Model(&models.FoodItem{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondAppError(c, utils.StateConflictError("category still has food items"))
		return
	}

	if err := cc.DB.Delete(category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
}

// ListMine returns the calling seller's categories.
func (cc *CategoryController) ListMine(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Where("seller_id = ?", utils.CurrentUserID(c)).Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// ListBySeller returns a restaurant's categories. Public.
func (cc *CategoryController) ListBySeller(c *gin.Context) {
	sellerID, err := paramID(c, "sellerId")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var categories []models.Category
	if err := cc.DB.Where("seller_id = ?", sellerID).Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (cc *CategoryController) owned(sellerID, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := cc.DB.Where("id = ? AND seller_id = ?", categoryID, sellerID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("category not found")
		}
		return nil, utils.UpstreamError(err)
	}
	return &category, nil
}
