package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type registerRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Register creates a restaurant (tenant) together with its Owner account.
func (ac *AuthController) Register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	var existing models.Tenant
	if err := ac.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		utils.RespondAppError(c, utils.ConflictError("email already registered"))
		return
	}

	slug := utils.GenerateSlug(body.Name)
	baseSlug := slug
	for counter := 1; ; counter++ {
		var taken models.Tenant
		if err := ac.DB.Where("slug = ?", slug).First(&taken).Error; err != nil {
			break
		}
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	tenant := models.Tenant{
		Name:        body.Name,
		Slug:        slug,
		Email:       body.Email,
		Phone:       body.Phone,
		Address:     body.Address,
		Description: body.Description,
		Status:      models.TenantActive,
	}
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		owner := models.Account{
			TenantID: &tenant.ID,
			Name:     body.Name,
			Email:    body.Email,
			Password: hashed,
			Role:     models.RoleOwner,
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Restaurant registered", gin.H{
		"id":     tenant.ID,
		"name":   tenant.Name,
		"slug":   tenant.Slug,
		"email":  tenant.Email,
		"status": tenant.Status,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff account and issues an access/refresh pair.
// The stored refresh token for the account is replaced, so only the newest
// refresh token stays valid.
func (ac *AuthController) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	var account models.Account
	if err := ac.DB.Where("email = ?", body.Email).First(&account).Error; err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("incorrect email or password"))
		return
	}
	if !utils.VerifyPassword(body.Password, account.Password) {
		utils.RespondAppError(c, utils.AuthenticationError("incorrect email or password"))
		return
	}

	accessToken, refreshToken, err := ac.issueStaffTokens(&account)
	if err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

func (ac *AuthController) issueStaffTokens(account *models.Account) (string, string, error) {
	accessToken, err := utils.GenerateToken(utils.DomainAccess, account.ID, string(account.Role), account.TenantID, 0)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := utils.GenerateToken(utils.DomainRefresh, account.ID, string(account.Role), account.TenantID, 0)
	if err != nil {
		return "", "", err
	}

	// Rotation: one active refresh token per account.
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			Token:     refreshToken,
			AccountID: account.ID,
			ExpiresAt: time.Now().Add(utils.RefreshTokenTTL),
		}).Error
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken exchanges a valid, still-stored refresh token for a fresh
// pair. A token rotated out by a newer login fails even before expiry.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var body refreshRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondAppError(c, utils.ValidationError(err.Error()))
		return
	}

	claims, err := utils.ParseToken(body.RefreshToken, utils.DomainRefresh)
	if err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("invalid refresh token"))
		return
	}

	var stored models.RefreshToken
	if err := ac.DB.Where("token = ?", body.RefreshToken).First(&stored).Error; err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("refresh token expired or invalid"))
		return
	}
	if stored.ExpiresAt.Before(time.Now()) {
		utils.RespondAppError(c, utils.AuthenticationError("refresh token expired or invalid"))
		return
	}

	accountID, err := utils.SubjectID(claims)
	if err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("invalid refresh token"))
		return
	}
	var account models.Account
	if err := ac.DB.First(&account, accountID).Error; err != nil {
		utils.RespondAppError(c, utils.AuthenticationError("user not found"))
		return
	}

	accessToken, refreshToken, err := ac.issueStaffTokens(&account)
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

// Logout revokes the account's stored refresh token.
func (ac *AuthController) Logout(c *gin.Context) {
	account, ok := middlewares.CurrentStaff(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}
	if err := ac.DB.Where("account_id = ?", account.ID).Delete(&models.RefreshToken{}).Error; err != nil {
		utils.RespondAppError(c, utils.InternalError(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated staff account.
func (ac *AuthController) Me(c *gin.Context) {
	account, ok := middlewares.CurrentStaff(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current user", account)
}
