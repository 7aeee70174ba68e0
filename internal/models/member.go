package models

// Gender is a closed two-valued tag. The enumeration is deliberately not
// extensible: it is a modeling constraint inherited from the system this
// service replaces, kept as-is rather than silently expanded.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// Valid reports whether g is one of the two defined values.
func (g Gender) Valid() bool {
	return g == GenderFemale || g == GenderMale
}

// Member represents a participant in a club.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// ClubID is the club this member belongs to.
	ClubID string

	// Name is the member's display name.
	Name string

	// Gender is the member's gender tag.
	Gender Gender

	// Contact is free-form contact information (phone, email).
	Contact string

	// Shares is the positive share count. Obligation amounts are the base
	// amount multiplied by this value.
	Shares uint64

	// Paid reports whether the member has settled their latest obligation.
	// Only the payment processor sets this.
	Paid bool

	// JoinedAt is the unix millisecond timestamp the member was added.
	JoinedAt int64
}
