package ledger

import (
	"math/bits"

	"github.com/mkamau/chamapool/internal/models"
)

// GenerateInvestment schedules a payment obligation for member, keyed in the
// club's investment map by payerID. The amount payable is baseAmount times
// the member's share count; the due date is now plus offset (milliseconds).
// Both computations are overflow-checked and an overflow fails the whole call
// with nothing stored.
//
// An obligation already keyed under payerID is silently overwritten. No
// "one outstanding obligation per payer" invariant exists; see DESIGN.md.
func GenerateInvestment(token *models.ClubToken, club *models.Club, member *models.Member, payerID string, baseAmount uint64, status models.InvestmentStatus, offset, now int64) error {
	if err := Authorize(token, club); err != nil {
		return err
	}

	amount, ok := checkedMul(baseAmount, member.Shares)
	if !ok {
		return ErrArithmeticOverflow
	}
	due, ok := checkedAdd(now, offset)
	if !ok {
		return ErrArithmeticOverflow
	}

	club.Investments[payerID] = &models.Investment{
		MemberID:      member.ID,
		AmountPayable: amount,
		DueAt:         due,
		Status:        status,
	}
	return nil
}

// MarkOverdue flips every Pending obligation whose due date has passed to
// Overdue and returns the payer identities that were flipped. Overdue
// obligations remain payable; this changes bookkeeping only.
func MarkOverdue(club *models.Club, now int64) []string {
	var flipped []string
	for payerID, inv := range club.Investments {
		if inv.Status == models.StatusPending && now > inv.DueAt {
			inv.Status = models.StatusOverdue
			flipped = append(flipped, payerID)
		}
	}
	return flipped
}

func checkedMul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

func checkedAdd(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}
