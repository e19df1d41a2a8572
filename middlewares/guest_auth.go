package middlewares

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

// GuestAuth resolves a guest principal from a guest access token. The
// subject is the guest row id, not a customer id; the row is re-read so a
// purged guest session fails closed.
func GuestAuth(db *gorm.DB) gin.HandlerFunc {
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

		if claims.Role != utils.RoleClaimGuest || claims.TenantID == nil {
			utils.RespondAppError(c, utils.AuthorizationError("Invalid guest token"))
			c.Abort()
			return
		}

		guestID, idErr := utils.SubjectID(claims)
		if idErr != nil {
			utils.RespondAppError(c, utils.AuthenticationError("invalid token payload"))
			c.Abort()
			return
		}

		var guest models.Guest
		if err := db.First(&guest, guestID).Error; err != nil {
			utils.RespondAppError(c, utils.AuthenticationError("guest session not found"))
			c.Abort()
			return
		}

		c.Set(ctxGuestKey, &guest)
		c.Next()
	}
}
