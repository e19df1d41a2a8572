package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bigboyapp/restaurant-backend/middlewares"
	"github.com/bigboyapp/restaurant-backend/models"
	"github.com/bigboyapp/restaurant-backend/utils"
)

type MembershipController struct {
	DB *gorm.DB
}

func NewMembershipController(db *gorm.DB) *MembershipController {
	return &MembershipController{DB: db}
}

// GetMembership returns the customer's tier plus progress to the next one.
func (mc *MembershipController) GetMembership(c *gin.Context) {
	customer, ok := middlewares.CurrentCustomer(c)
	if !ok {
		utils.RespondAppError(c, utils.AuthenticationError("authentication required"))
		return
	}

	var nextTier *models.MembershipTier
	var nextThreshold *int64
	switch customer.MembershipTier {
	case models.TierIron:
		t, th := models.TierSilver, models.SilverThreshold
		nextTier, nextThreshold = &t, &th
	case models.TierSilver:
		t, th := models.TierGold, models.GoldThreshold
		nextTier, nextThreshold = &t, &th
	case models.TierGold:
		t, th := models.TierDiamond, models.DiamondThreshold
		nextTier, nextThreshold = &t, &th
	}

	data := gin.H{
		"membership_tier": customer.MembershipTier,
		"total_spending":  customer.TotalSpending,
		"points":          customer.Points,
		"thresholds": gin.H{
			"Silver":  models.SilverThreshold,
			"Gold":    models.GoldThreshold,
			"Diamond": models.DiamondThreshold,
		},
	}
	if nextTier != nil {
		data["next_tier"] = *nextTier
		data["remaining_to_next_tier"] = *nextThreshold - customer.TotalSpending
	}

	utils.RespondJSON(c, http.StatusOK, "Membership detail", data)
}
