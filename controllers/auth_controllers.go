package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/services"
	"github.com/quickbite/backend/utils"
)

type AuthController struct {
	DB       *gorm.DB
	Accounts *services.AccountService
}

func NewAuthController(db *gorm.DB, accounts *services.AccountService) *AuthController {
	return &AuthController{DB: db, Accounts: accounts}
}

// RegisterCustomer creates a customer account and returns a token.
func (ac *AuthController) RegisterCustomer(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	customer := models.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Address:  req.Address,
	}
	if err := ac.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered as a customer"))
		return
	}

	ac.issueToken(c, customer.ID, services.RoleCustomer, gin.H{
		"id":    customer.ID,
		"name":  customer.Name,
		"email": customer.Email,
		"phone": customer.Phone,
	})
}

// RegisterSeller creates a restaurant account and returns a token.
func (ac *AuthController) RegisterSeller(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		Description string `json:"description"`
		CuisineType string `json:"cuisine_type"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	seller := models.Seller{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    string(hashed),
		Address:     req.Address,
		Description: req.Description,
		CuisineType: req.CuisineType,
		Status:      models.SellerOpen,
	}
	if err := ac.DB.Create(&seller).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered as a seller"))
		return
	}

	ac.issueToken(c, seller.ID, services.RoleSeller, gin.H{
		"id":     seller.ID,
		"name":   seller.Name,
		"email":  seller.Email,
		"phone":  seller.Phone,
		"status": seller.Status,
	})
}

// RegisterDeliveryPartner creates a delivery-partner account and returns
// a token.
func (ac *AuthController) RegisterDeliveryPartner(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		Phone       string `json:"phone" binding:"required"`
		VehicleType string `json:"vehicle_type" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidVehicleType(req.VehicleType) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("vehicle type must be bike, scooter or car"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	partner := models.DeliveryPartner{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    string(hashed),
		VehicleType: req.VehicleType,
		IsAvailable: true,
	}
	if err := ac.DB.Create(&partner).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered as a delivery partner"))
		return
	}

	ac.issueToken(c, partner.ID, services.RoleDelivery, gin.H{
		"id":           partner.ID,
		"name":         partner.Name,
		"email":        partner.Email,
		"phone":        partner.Phone,
		"vehicle_type": partner.VehicleType,
	})
}

// Login authenticates against the store for the requested role.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store, err := ac.Accounts.Store(input.Role)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	account, hash, err := store.FindByEmail(input.Email)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(account.ID, store.Role())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful: %s (role=%s)", account.Email, store.Role())
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  account,
	})
}

// GetProfile returns the caller's account through the store matching its
// token role.
func (ac *AuthController) GetProfile(c *gin.Context) {
	store, err := ac.Accounts.Store(utils.CurrentRole(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	account, err := store.FindByID(utils.CurrentUserID(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", account)
}

// ChangePassword verifies the current password before storing a new hash.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	store, err := ac.Accounts.Store(utils.CurrentRole(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	userID := utils.CurrentUserID(c)
	hash, err := store.PasswordHash(userID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.CurrentPassword)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("current password is incorrect"))
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := store.UpdatePassword(userID, string(newHash)); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}

func (ac *AuthController) issueToken(c *gin.Context, id uint, role string, user gin.H) {
	token, err := utils.GenerateToken(id, role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New %s registered: id=%d", role, id)
	utils.RespondJSON(c, http.StatusCreated, "Account created successfully", gin.H{
		"token": token,
		"user":  user,
	})
}
