package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/splitledger/internal/models"
)

// ShareTolerance is the largest allowed gap between the sum of custom shares
// and the expense amount.
const ShareTolerance = 0.01

var (
	ErrInvalidAmount  = errors.New("amount must be greater than zero")
	ErrNoParticipants = errors.New("must have at least one participant")
	ErrMissingShare   = errors.New("share required for every participant")
	ErrNegativeShare  = errors.New("shares cannot be negative")
	ErrShareMismatch  = errors.New("shares do not add up to the expense amount")
)

// EqualShares divides amount evenly among participants.
// Duplicate participant IDs are collapsed.
func EqualShares(amount float64, participants []string) ([]models.Participant, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ErrInvalidAmount
	}
	ids := uniqueIDs(participants)
	if len(ids) == 0 {
		return nil, ErrNoParticipants
	}

	share := amount / float64(len(ids))
	result := make([]models.Participant, len(ids))
	for i, id := range ids {
		result[i] = models.Participant{UserID: id, Share: share}
	}
	return result, nil
}

// CustomShares assigns each participant the share given in shares.
// Every participant needs a nonnegative share, and the shares must sum to
// amount within ShareTolerance.
func CustomShares(amount float64, participants []string, shares map[string]float64) ([]models.Participant, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ErrInvalidAmount
	}
	ids := uniqueIDs(participants)
	if len(ids) == 0 {
		return nil, ErrNoParticipants
	}

	var total float64
	result := make([]models.Participant, len(ids))
	for i, id := range ids {
		share, ok := shares[id]
		if !ok || math.IsNaN(share) {
			return nil, fmt.Errorf("%w: %s", ErrMissingShare, id)
		}
		if share < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNegativeShare, id)
		}
		total += share
		result[i] = models.Participant{UserID: id, Share: share}
	}

	if math.Abs(total-amount) > ShareTolerance {
		return nil, fmt.Errorf("%w: sum of shares (%.2f) doesn't match the expense amount (%.2f)",
			ErrShareMismatch, total, amount)
	}
	return result, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
