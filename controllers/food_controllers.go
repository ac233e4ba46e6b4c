package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/storage"
	"github.com/quickbite/backend/utils"
)

type FoodController struct {
	DB     *gorm.DB
	Images storage.ImageStore
}

func NewFoodController(db *gorm.DB, images storage.ImageStore) *FoodController {
	return &FoodController{DB: db, Images: images}
}

// Create adds a menu item for the calling seller. Sent as multipart so
// an image can ride along.
func (fc *FoodController) Create(c *gin.Context) {
	sellerID := utils.CurrentUserID(c)

	name := c.PostForm("name")
	price, priceErr := strconv.ParseFloat(c.PostForm("price"), 64)
	categoryID, catErr := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if name == "" || priceErr != nil || price <= 0 || catErr != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name, positive price and category_id are required"))
		return
	}

	var category models.Category
	if err := fc.DB.Where("id = ? AND seller_id = ?", categoryID, sellerID).First(&category).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("category not found"))
		return
	}

	food := models.FoodItem{
		Name:        name,
		CategoryID:  uint(categoryID),
		SellerID:    sellerID,
		Price:       price,
		IsAvailable: true,
	}
	if stock, err := strconv.Atoi(c.PostForm("stock")); err == nil {
		food.Stock = stock
	}

	if file, err := c.FormFile("image"); err == nil {
		img, err := fc.saveImage(file)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		food.ImageURL = img.URL
		food.ImageID = img.ID
	}

	if err := fc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Food item created", food)
}

// Update edits one of the seller's menu items; a new image replaces the
// old one in the store.
func (fc *FoodController) Update(c *gin.Context) {
	foodID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	food, err := fc.owned(utils.CurrentUserID(c), foodID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if name := c.PostForm("name"); name != "" {
		food.Name = name
	}
	if price, err := strconv.ParseFloat(c.PostForm("price"), 64); err == nil && price > 0 {
		food.Price = price
	}
	if stock, err := strconv.Atoi(c.PostForm("stock")); err == nil {
		food.Stock = stock
	}
	if categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32); err == nil {
		var category models.Category
		if err := fc.DB.Where("id = ? AND seller_id = ?", categoryID, food.SellerID).First(&category).Error; err != nil {
			utils.RespondAppError(c, utils.NotFoundError("category not found"))
			return
		}
		food.CategoryID = uint(categoryID)
	}
	if avail := c.PostForm("is_available"); avail != "" {
		food.IsAvailable = avail == "true" || avail == "1"
	}

	if file, err := c.FormFile("image"); err == nil {
		img, err := fc.saveImage(file)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		oldID := food.ImageID
		food.ImageURL = img.URL
		food.ImageID = img.ID
		if oldID != "" {
			if err := fc.Images.Remove(oldID); err != nil {
				utils.ErrorLogger.Printf("remove image %s: %v", oldID, err)
			}
		}
	}

	if err := fc.DB.Save(food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item updated", food)
}

// SetAvailability toggles a menu item on or off without a full edit.
func (fc *FoodController) SetAvailability(c *gin.Context) {
	foodID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var input struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	food, err := fc.owned(utils.CurrentUserID(c), foodID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	food.IsAvailable = *input.IsAvailable
	if err := fc.DB.Model(food).Update("is_available", food.IsAvailable).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability updated", food)
}

// Delete removes a menu item and its stored image.
func (fc *FoodController) Delete(c *gin.Context) {
	foodID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	food, err := fc.owned(utils.CurrentUserID(c), foodID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	if err := fc.DB.Delete(food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if food.ImageID != "" {
		if err := fc.Images.Remove(food.ImageID); err != nil {
			utils.ErrorLogger.Printf("remove image %s: %v", food.ImageID, err)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Food item deleted", nil)
}

// ListMine returns the calling seller's full menu.
func (fc *FoodController) ListMine(c *gin.Context) {
	var items []models.FoodItem
	if err := fc.DB.Where("seller_id = ?", utils.CurrentUserID(c)).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food items retrieved successfully", items)
}

// Browse is the public menu listing with optional filters:
// ?seller_id=, ?category_id=, ?search=, ?available=true.
func (fc *FoodController) Browse(c *gin.Context) {
	q := fc.DB.Model(&models.FoodItem{})

	if sellerID := c.Query("seller_id"); sellerID != "" {
		q = q.Where("seller_id = ?", sellerID)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if c.Query("available") == "true" {
		q = q.Where("is_available = ?", true)
	}

	var items []models.FoodItem
	if err := q.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food items retrieved successfully", items)
}

// Detail returns one menu item. Public.
func (fc *FoodController) Detail(c *gin.Context) {
	foodID, err := paramID(c, "id")
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var food models.FoodItem
	if err := fc.DB.First(&food, foodID).Error; err != nil {
		utils.RespondAppError(c, utils.NotFoundError("food item not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item retrieved successfully", food)
}

func (fc *FoodController) owned(sellerID, foodID uint) (*models.FoodItem, error) {
	var food models.FoodItem
	err := fc.DB.Where("id = ? AND seller_id = ?", foodID, sellerID).First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("food item not found")
		}
		return nil, utils.UpstreamError(err)
	}
	return &food, nil
}

func (fc *FoodController) saveImage(file *multipart.FileHeader) (*storage.StoredImage, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return fc.Images.Save(src, file.Filename)
}
