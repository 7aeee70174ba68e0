package ledger

import "github.com/mkamau/chamapool/internal/models"

// settle is the only legal path from a live status to Paid. Any other
// requested transition is rejected, keeping the status machine closed.
func settle(s models.InvestmentStatus) (models.InvestmentStatus, error) {
	if !s.Settleable() {
		return s, ErrAlreadySettled
	}
	return models.StatusPaid, nil
}

// PayInvestment settles the obligation keyed under payerID in the club's
// investment map. Validation order, first failure aborting with no mutation:
//
//  1. the obligation must be Pending or Overdue (ErrAlreadySettled)
//  2. now must be at or past the due date (ErrPaymentWindowClosed) — paying
//     ahead of schedule is rejected
//  3. amount must equal the amount payable exactly (ErrAmountMismatch) — no
//     overpayment, no installments
//
// On success the obligation is removed from the map, the treasury balance
// grows by exactly the amount payable, and the member is marked paid. The
// detached obligation is marked Paid for the caller's benefit; no durable
// settlement record is kept beyond the balance delta and the member flag.
func PayInvestment(club *models.Club, payerID string, member *models.Member, amount uint64, now int64) error {
	inv, ok := club.Investments[payerID]
	if !ok {
		return ErrInvestmentNotFound
	}

	next, err := settle(inv.Status)
	if err != nil {
		return err
	}
	if now < inv.DueAt {
		return ErrPaymentWindowClosed
	}
	if amount != inv.AmountPayable {
		return ErrAmountMismatch
	}

	delete(club.Investments, payerID)
	club.Balance += amount
	member.Paid = true
	inv.Status = next
	return nil
}

// CheckStatus reports the member's paid flag and the obligation's status.
// Pure read, no authorization required.
func CheckStatus(member *models.Member, inv *models.Investment) (bool, models.InvestmentStatus) {
	return member.Paid, inv.Status
}
