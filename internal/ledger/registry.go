// Package ledger implements the investment lifecycle and treasury accounting
// core: club and member registration, capability-gated obligation scheduling,
// time- and amount-gated payment settlement, and the pooled balance.
//
// The package is pure: no I/O, no locking, no clock reads. Every operation
// takes its timestamp as an explicit argument and either completes fully or
// fails with zero mutation. Callers are responsible for serializing access to
// a given Club (see internal/service) and for persisting the results.
package ledger

import (
	"github.com/google/uuid"

	"github.com/mkamau/chamapool/internal/models"
)

// NewClub allocates a club with a zero balance, empty member and investment
// maps, and a freshly bound capability token. Inputs are stored as given;
// business-rule validation is the caller's concern.
func NewClub(name, clubType, rules, description string, active bool, now int64) (*models.Club, *models.ClubToken) {
	club := &models.Club{
		ID:          uuid.New().String(),
		Name:        name,
		ClubType:    clubType,
		Rules:       rules,
		Description: description,
		Active:      active,
		FoundedAt:   now,
		Members:     make(map[string]*models.Member),
		Investments: make(map[string]*models.Investment),
	}
	token := &models.ClubToken{
		ID:     uuid.New().String(),
		ClubID: club.ID,
	}
	return club, token
}

// AddMember registers a member with the club. The member starts unpaid.
//
// No uniqueness check is performed: registering the same person twice yields
// two records. That matches the system this replaces; callers wanting a
// uniqueness invariant must enforce it themselves.
func AddMember(club *models.Club, name string, gender models.Gender, contact string, shares uint64, now int64) *models.Member {
	m := &models.Member{
		ID:       uuid.New().String(),
		ClubID:   club.ID,
		Name:     name,
		Gender:   gender,
		Contact:  contact,
		Shares:   shares,
		Paid:     false,
		JoinedAt: now,
	}
	club.Members[m.ID] = m
	return m
}

// Authorize checks that token grants access to club. It must be the first
// check in every privileged operation; on failure the operation aborts with
// no mutation.
func Authorize(token *models.ClubToken, club *models.Club) error {
	if token == nil || token.ClubID != club.ID {
		return ErrAccessDenied
	}
	return nil
}
