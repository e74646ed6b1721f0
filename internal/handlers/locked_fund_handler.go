package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/services"
	"github.com/shsyteam/shsy-staking-backend/pkg/tokengateway"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LockedFundHandler handles locked fund HTTP requests
type LockedFundHandler struct {
	rewardLocker services.RewardLockerService
	gateway      tokengateway.Gateway
}

// NewLockedFundHandler creates a new LockedFundHandler
func NewLockedFundHandler(rewardLocker services.RewardLockerService, gateway tokengateway.Gateway) *LockedFundHandler {
	return &LockedFundHandler{
		rewardLocker: rewardLocker,
		gateway:      gateway,
	}
}

// GetLockedFunds handles GET /locked-funds/:walletAddress
func (h *LockedFundHandler) GetLockedFunds(c *gin.Context) {
	walletAddress := c.Param("walletAddress")

	funds, err := h.rewardLocker.GetAllLockedFunds(c.Request.Context(), walletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch locked funds"})
		return
	}
	unlockable, err := h.rewardLocker.GetUnlockableRewards(c.Request.Context(), walletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch locked funds"})
		return
	}

	totalLocked := decimal.Zero
	for _, fund := range funds {
		if amount, err := decimal.NewFromString(fund.LockedAmount); err == nil {
			totalLocked = totalLocked.Add(amount)
		}
	}
	totalUnlockable := decimal.Zero
	for _, fund := range unlockable {
		if amount, err := decimal.NewFromString(fund.LockedAmount); err == nil {
			totalUnlockable = totalUnlockable.Add(amount)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"lockedFunds": funds,
		"summary": gin.H{
			"totalLocked":     totalLocked.StringFixed(8),
			"totalUnlockable": totalUnlockable.StringFixed(8),
			"totalCount":      len(funds),
		},
	})
}

// UnlockLockedFundRequest is the body for POST /locked-funds/unlock
type UnlockLockedFundRequest struct {
	LockedFundID  string `json:"lockedFundId" binding:"required"`
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// UnlockLockedFund handles POST /locked-funds/unlock
//
// The locked portion is transferred first; only a confirmed transfer
// finalizes the locked -> withdrawn transition.
func (h *LockedFundHandler) UnlockLockedFund(c *gin.Context) {
	var request UnlockLockedFundRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	fundID, err := primitive.ObjectIDFromHex(request.LockedFundID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid locked fund ID"})
		return
	}

	fund, err := h.rewardLocker.GetLockedFund(c.Request.Context(), fundID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch locked fund"})
		return
	}
	if fund == nil || fund.WalletAddress != request.WalletAddress {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Locked fund not found"})
		return
	}

	if time.Now().Before(fund.UnlocksAt) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Fund cannot be unlocked until " + fund.UnlocksAt.Format("2006-01-02"),
		})
		return
	}
	if fund.Status != models.LockedFundStatusLocked {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Fund has already been withdrawn"})
		return
	}

	lockedAmount, err := decimal.NewFromString(fund.LockedAmount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Invalid locked amount"})
		return
	}
	amount, _ := lockedAmount.Float64()

	signature, err := h.gateway.Transfer(request.WalletAddress, fund.TokenType, amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unlock distribution failed"})
		return
	}

	updated, err := h.rewardLocker.UnlockReward(c.Request.Context(), fundID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to finalize unlock"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Fund has already been withdrawn"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"lockedFund":           updated,
		"transactionSignature": signature,
	})
}
