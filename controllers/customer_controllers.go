package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

type customerRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a mobile-app customer account.
func (cc *CustomerController) Register(c *gin.Context) {
	var body customerRegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}
	email := normalizeEmail(body.Email)

	var existing models.Customer
	if err := cc.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondAppError(c, utils.ConflictError("email already registered"))
		return
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	customer := models.Customer{
		Name:           body.Name,
		Email:          email,
		Password:       hashed,
		Phone:          body.Phone,
		MembershipTier: models.TierIron,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Registration successful", gin.H{
		"id":    customer.ID,
		"name":  customer.Name,
		"email": customer.Email,
	})
}

// Login authenticates a customer and issues a token pair whose claims carry
// an explicit customer_id alongside the subject.
func (cc *CustomerController) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("email = ?", normalizeEmail(body.Email)).First(&customer).Error; err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("incorrect email or password"))
		return
	}
	if !utils.VerifyPassword(body.Password, customer.Password) {
		utils.RespondAppError(c, utils.AuthenticationError("incorrect email or password"))
		return
	}

	accessToken, err := utils.GenerateToken(utils.DomainAccess, customer.ID, utils.RoleClaimCustomer, nil, customer.ID)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	refreshToken, err := utils.GenerateToken(utils.DomainRefresh, customer.ID, utils.RoleClaimCustomer, nil, customer.ID)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"customer": gin.H{
			"id":              customer.ID,
			"name":            customer.Name,
			"email":           customer.Email,
			"membership_tier": customer.MembershipTier,
			"total_spending":  customer.TotalSpending,
			"points":          customer.Points,
		},
	})
}

// RefreshToken exchanges a customer refresh token for a fresh pair.
func (cc *CustomerController) RefreshToken(c *gin.Context) {
	var body refreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	claims, err := utils.ParseToken(body.RefreshToken, utils.DomainRefresh)
	if err != nil || claims.Role != utils.RoleClaimCustomer || claims.CustomerID == 0 {
		utils.RespondAppError(c, utils.AuthenticationError("invalid refresh token"))
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, claims.CustomerID).Error; err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("customer not found"))
		return
	}

	accessToken, err := utils.GenerateToken(utils.DomainAccess, customer.ID, utils.RoleClaimCustomer, nil, customer.ID)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	refreshToken, err := utils.GenerateToken(utils.DomainRefresh, customer.ID, utils.RoleClaimCustomer, nil, customer.ID)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

// Me returns the authenticated customer including loyalty state.
func (cc *CustomerController) Me(c *gin.Context) {
	customer, ok := middlewares.CurrentCustomer(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current customer", customer)
}
