package models

// Club represents a cooperative investment club: a group of members with
// scheduled payment obligations pooling funds into a shared treasury.
type Club struct {
	// ID is the unique identifier for the club (UUID format).
	ID string

	// Name is the display name of the club (e.g., "Acme Invest").
	Name string

	// ClubType is a free-form classification tag (e.g., "merry-go-round",
	// "fixed-deposit").
	ClubType string

	// Rules holds the club's free-text rules or constitution.
	Rules string

	// Description is a human-readable description of the club.
	Description string

	// Active indicates whether the club is currently operating.
	Active bool

	// FoundedAt is the unix millisecond timestamp the club was created.
	FoundedAt int64

	// Members maps member ID to the Member record.
	Members map[string]*Member

	// Investments maps payer identity to the outstanding obligation.
	// The payer is whoever is expected to settle the obligation, which is
	// not necessarily the member the obligation was computed for.
	Investments map[string]*Investment

	// Balance is the pooled treasury balance in the smallest accounting
	// unit. It only increases through a successful settlement and only
	// decreases through an authorized full withdrawal (to zero).
	Balance uint64
}

// ClubToken is the capability credential for a club. It is minted exactly
// once, when the club is created, and is bound to that club for its lifetime.
// Possession of a token whose ClubID matches a club is the sole admission
// requirement for privileged operations on that club.
type ClubToken struct {
	// ID is the unique identifier for the token (UUID format).
	ID string

	// ClubID is the club this token authorizes. Never reassigned.
	ClubID string
}
