package sqlite

import (
	"context"
	"fmt"

	"github.com/mkamau/chamapool/internal/models"
)

// CreateMember persists a new member record. No uniqueness constraint exists
// beyond the generated ID: registering the same person twice stores two rows,
// matching the domain model.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, club_id, name, gender, contact, shares, paid, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.ClubID, member.Name, string(member.Gender), member.Contact,
		int64(member.Shares), boolToInt(member.Paid), member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}
