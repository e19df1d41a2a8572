package middlewares

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

// CustomerAuth resolves a customer principal. Any verified token with a
// non-Customer role (a guest token, say) is rejected with an authorization
// error even though the credential itself is valid.
func CustomerAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			utils.RespondAppError(c, err)
			c.Abort()
			return
		}

		claims, parseErr := utils.ParseToken(tokenString, utils.DomainAccess)
		if parseErr != nil {
			utils.RespondAppError(c, utils.AuthenticationError("invalid or expired access token"))
			c.Abort()
			return
		}

		if claims.Role != utils.RoleClaimCustomer || claims.CustomerID == 0 {
			utils.RespondAppError(c, utils.AuthorizationError("Invalid customer token"))
			c.Abort()
			return
		}

		var customer models.Customer
		if err := db.First(&customer, claims.CustomerID).Error; err != nil {
			utils.RespondAppError(c, utils.AuthenticationError("customer not found"))
			c.Abort()
			return
		}

		c.Set(ctxCustomerKey, &customer)
		c.Next()
	}
}
