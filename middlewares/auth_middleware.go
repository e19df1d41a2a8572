package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

// bearerToken extracts the raw token from a literal "Bearer <token>" header.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", utils.AuthenticationError("authorization header missing")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", utils.AuthenticationError("invalid authorization header format")
	}
	return parts[1], nil
}

// StaffAuth resolves a staff principal from the access token. The account is
// re-read on every request; a deleted account fails closed. If a tenant
// context was resolved and the account's home tenant differs, the request is
// rejected (tenant confusion prevention).
func StaffAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := resolveStaff(c, db)
		if err != nil {
			utils.RespondAppError(c, err)
			c.Abort()
			return
		}
		c.Set(ctxStaffKey, account)
		c.Next()
	}
}

func resolveStaff(c *gin.Context, db *gorm.DB) (*models.Account, error) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := utils.ParseToken(tokenString, utils.DomainAccess)
	if err != nil {
		return nil, utils.AuthenticationError("invalid or expired access token")
	}
	accountID, err := utils.SubjectID(claims)
	if err != nil {
		return nil, utils.AuthenticationError("invalid token payload")
	}

	var account models.Account
	if err := db.First(&account, accountID).Error; err != nil {
		return nil, utils.AuthenticationError("user not found")
	}

	if tenant, ok := CurrentTenant(c); ok && account.TenantID != nil && *account.TenantID != tenant.ID {
		return nil, utils.AuthorizationError("no access to this tenant")
	}
	return &account, nil
}
