package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/services"
	"github.com/shsyteam/shsy-staking-backend/pkg/tokengateway"
)

// ChallengeHandler handles global challenge HTTP requests
type ChallengeHandler struct {
	challengeManager   *services.ChallengeManager
	userService        services.UserService
	eligibilityService services.EligibilityService
	rewardLocker       services.RewardLockerService
	gateway            tokengateway.Gateway
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(
	challengeManager *services.ChallengeManager,
	userService services.UserService,
	eligibilityService services.EligibilityService,
	rewardLocker services.RewardLockerService,
	gateway tokengateway.Gateway,
) *ChallengeHandler {
	return &ChallengeHandler{
		challengeManager:   challengeManager,
		userService:        userService,
		eligibilityService: eligibilityService,
		rewardLocker:       rewardLocker,
		gateway:            gateway,
	}
}

// GetChallengeStatus handles GET /challenges/status/:walletAddress
//
// The eligibility check runs on every status query and its result drives
// challenge membership; the manager has no other way to learn about a user's
// staking or guessing history.
func (h *ChallengeHandler) GetChallengeStatus(c *gin.Context) {
	walletAddress := c.Param("walletAddress")

	eligibility := &models.Eligibility{
		IsEligible: false,
		Message:    "Please stake some tokens or answer riddles to participate in the random reward pool",
	}
	userID := ""

	user, err := h.userService.GetUserByWallet(c.Request.Context(), walletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch challenges"})
		return
	}
	if user != nil {
		userID = user.ID.Hex()
		eligibility, err = h.eligibilityService.CheckEligibility(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to check eligibility"})
			return
		}
		if err := h.challengeManager.AddUser(c.Request.Context(), userID, walletAddress, eligibility.IsEligible); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update challenge membership"})
			return
		}
	}

	status, err := h.challengeManager.GetStatus(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"challenges":     status.Challenges,
		"pendingRewards": status.PendingRewards,
		"eligibility":    eligibility,
	})
}

// ClaimChallengeRewardRequest is the body for POST /challenges/claim
type ClaimChallengeRewardRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	Track         string `json:"track" binding:"required"`
}

// ClaimReward handles POST /challenges/claim
//
// A successful claim drains the pending reward, locks the configured
// portion, and distributes the available portion through the token gateway.
func (h *ChallengeHandler) ClaimReward(c *gin.Context) {
	var request ClaimChallengeRewardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	track := models.Track(request.Track)
	if track != models.TrackShort && track != models.TrackLong {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid track (short or long)"})
		return
	}

	user, err := h.userService.GetUserByWallet(c.Request.Context(), request.WalletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to claim reward"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	userID := user.ID.Hex()

	var rewardToClaim *models.PendingReward
	for _, r := range h.challengeManager.GetPendingRewards(userID) {
		if r.Track == track {
			reward := r
			rewardToClaim = &reward
			break
		}
	}
	if rewardToClaim == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No reward available to claim for this challenge"})
		return
	}

	if !h.challengeManager.ClaimReward(userID, track) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Reward has already been claimed or is no longer available"})
		return
	}

	rewardAmount, err := decimal.NewFromString(rewardToClaim.RewardAmount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Invalid reward amount"})
		return
	}
	totalReward, _ := rewardAmount.Float64()

	result, err := h.rewardLocker.LockReward(
		c.Request.Context(),
		user.ID,
		request.WalletAddress,
		string(track)+"_challenge",
		totalReward,
		"",
		"SHSY",
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create withdrawal transaction"})
		return
	}

	if result.AvailableAmount > 0 {
		signature, err := h.gateway.Transfer(request.WalletAddress, "SHSY", result.AvailableAmount)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Reward distribution failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":              true,
			"completed":            true,
			"transactionSignature": signature,
			"totalReward":          totalReward,
			"availableAmount":      result.AvailableAmount,
			"lockedAmount":         result.LockedAmount,
		})
		return
	}

	// All funds are locked, no immediate distribution.
	lockDays := 0
	if result.LockedFund != nil {
		lockDays = result.LockedFund.LockDays
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"completed":        true,
		"totalReward":      totalReward,
		"availableAmount":  0,
		"lockedAmount":     result.LockedAmount,
		"lockDurationDays": lockDays,
		"allLocked":        true,
	})
}
