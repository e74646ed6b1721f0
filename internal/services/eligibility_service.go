package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Eligibility messages shown to users on the challenge status endpoint
const (
	eligibleMessage   = "You are eligible for the random reward pool (5 winners selected)"
	ineligibleMessage = "Please stake some tokens, answer riddles, or join the million pool to participate in the random reward pool"
)

// Compile-time check to ensure EligibilityServiceImpl implements EligibilityService
var _ EligibilityService = (*EligibilityServiceImpl)(nil)

// EligibilityServiceImpl determines challenge eligibility from the user's
// qualifying activity: at least one non-withdrawn stake, riddle guess, or
// active million pool entry.
type EligibilityServiceImpl struct {
	activityRepo repositories.ActivityRepository
}

// NewEligibilityService creates a new EligibilityServiceImpl
func NewEligibilityService(activityRepo repositories.ActivityRepository) *EligibilityServiceImpl {
	return &EligibilityServiceImpl{
		activityRepo: activityRepo,
	}
}

// CheckEligibility reports whether the user qualifies and which activity was found
func (s *EligibilityServiceImpl) CheckEligibility(ctx context.Context, userID primitive.ObjectID) (*models.Eligibility, error) {
	stakes, err := s.activityRepo.CountActiveStakes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count stakes: %w", err)
	}
	guesses, err := s.activityRepo.CountRiddleSubmissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count riddle submissions: %w", err)
	}
	poolEntries, err := s.activityRepo.CountActivePoolEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pool entries: %w", err)
	}

	eligibility := &models.Eligibility{
		HasStakes:    stakes > 0,
		HasGuesses:   guesses > 0,
		HasPoolEntry: poolEntries > 0,
	}
	eligibility.IsEligible = eligibility.HasStakes || eligibility.HasGuesses || eligibility.HasPoolEntry
	if eligibility.IsEligible {
		eligibility.Message = eligibleMessage
	} else {
		eligibility.Message = ineligibleMessage
	}

	slog.Debug("Checked challenge eligibility",
		"userId", userID.Hex(),
		"stakes", eligibility.HasStakes,
		"guesses", eligibility.HasGuesses,
		"pool", eligibility.HasPoolEntry,
	)
	return eligibility, nil
}
