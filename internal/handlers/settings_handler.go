package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/services"
)

// SettingsHandler handles admin settings HTTP requests
type SettingsHandler struct {
	settingsService  services.SettingsService
	challengeManager *services.ChallengeManager
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService, challengeManager *services.ChallengeManager) *SettingsHandler {
	return &SettingsHandler{
		settingsService:  settingsService,
		challengeManager: challengeManager,
	}
}

// GetLockSettings handles GET /admin/settings/lock
func (h *SettingsHandler) GetLockSettings(c *gin.Context) {
	settings, err := h.settingsService.GetLockSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lock settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateLockSettingsRequest is the body for PUT /admin/settings/lock
type UpdateLockSettingsRequest struct {
	LockPercentage *int `json:"lockPercentage"`
	LockDays       *int `json:"lockDays"`
}

// UpdateLockSettings handles PUT /admin/settings/lock
func (h *SettingsHandler) UpdateLockSettings(c *gin.Context) {
	var request UpdateLockSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.LockPercentage == nil && request.LockDays == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if request.LockPercentage != nil {
		if *request.LockPercentage < 0 || *request.LockPercentage > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lock percentage must be between 0 and 100"})
			return
		}
		err := h.settingsService.SetLockSetting(c.Request.Context(), models.LockSettingPercentage,
			strconv.Itoa(*request.LockPercentage), "Percentage of each reward withheld at claim time")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lock percentage: " + err.Error()})
			return
		}
	}
	if request.LockDays != nil {
		if *request.LockDays < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lock days must not be negative"})
			return
		}
		err := h.settingsService.SetLockSetting(c.Request.Context(), models.LockSettingDays,
			strconv.Itoa(*request.LockDays), "Days until a locked reward portion matures")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lock days: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lock settings updated successfully"})
}

// GetRewardSettings handles GET /admin/settings/rewards
func (h *SettingsHandler) GetRewardSettings(c *gin.Context) {
	settings, err := h.settingsService.GetRewardSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reward settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateRewardSettingRequest is the body for PUT /admin/settings/rewards
type UpdateRewardSettingRequest struct {
	Track  string `json:"track" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// UpdateRewardSetting handles PUT /admin/settings/rewards. The live windows
// pick up the new amount immediately, not just at the next rotation.
func (h *SettingsHandler) UpdateRewardSetting(c *gin.Context) {
	var request UpdateRewardSettingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	track := models.Track(request.Track)
	var key string
	switch track {
	case models.TrackShort:
		key = models.RewardSettingShort
	case models.TrackLong:
		key = models.RewardSettingLong
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track (short or long)"})
		return
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward amount"})
		return
	}

	err = h.settingsService.SetRewardSetting(c.Request.Context(), key, amount.String(),
		"Challenge reward for the "+request.Track+" track")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward setting: " + err.Error()})
		return
	}

	if err := h.challengeManager.ReloadRewardSettings(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload challenge rewards: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward setting updated successfully"})
}
