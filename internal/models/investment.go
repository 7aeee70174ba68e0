package models

// InvestmentStatus is the closed status tag for an obligation.
type InvestmentStatus string

const (
	// StatusPending marks an obligation that has not been settled.
	StatusPending InvestmentStatus = "Pending"

	// StatusPaid marks a settled obligation.
	StatusPaid InvestmentStatus = "Paid"

	// StatusOverdue marks an unsettled obligation past its due date.
	// Overdue obligations remain payable.
	StatusOverdue InvestmentStatus = "Overdue"
)

// Valid reports whether s is one of the defined status values.
func (s InvestmentStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusOverdue
}

// Settleable reports whether an obligation in this status may still be paid.
func (s InvestmentStatus) Settleable() bool {
	return s == StatusPending || s == StatusOverdue
}

// Investment represents a scheduled payment obligation for a member.
// It lives in a Club's Investments map, keyed by the payer identity, from
// creation until settlement removes it.
type Investment struct {
	// MemberID is the member the obligation was computed for.
	MemberID string

	// AmountPayable is the exact amount due: base amount times the
	// member's share count, in the smallest accounting unit.
	AmountPayable uint64

	// DueAt is the unix millisecond timestamp from which payment is
	// accepted. Payment strictly before DueAt is rejected.
	DueAt int64

	// Status is the obligation's lifecycle tag.
	Status InvestmentStatus
}
