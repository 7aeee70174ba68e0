package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkamau/chamapool/internal/models"
	"github.com/mkamau/chamapool/internal/storage"
)

// CreateClub persists a club together with its capability token in one
// transaction.
func (s *SQLiteStore) CreateClub(ctx context.Context, club *models.Club, token *models.ClubToken) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO clubs (id, name, club_type, rules, description, active, founded_at, balance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		club.ID, club.Name, club.ClubType, club.Rules, club.Description,
		boolToInt(club.Active), club.FoundedAt, int64(club.Balance),
	)
	if err != nil {
		return fmt.Errorf("failed to insert club: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO club_tokens (id, club_id) VALUES (?, ?)",
		token.ID, token.ClubID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert club token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetClub retrieves the full club aggregate: the club row plus its member and
// investment maps.
func (s *SQLiteStore) GetClub(ctx context.Context, clubID string) (*models.Club, error) {
	club := &models.Club{
		Members:     make(map[string]*models.Member),
		Investments: make(map[string]*models.Investment),
	}

	var active int
	var balance int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, club_type, rules, description, active, founded_at, balance FROM clubs WHERE id = ?",
		clubID,
	).Scan(&club.ID, &club.Name, &club.ClubType, &club.Rules, &club.Description,
		&active, &club.FoundedAt, &balance)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: club %s", storage.ErrNotFound, clubID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	club.Active = active != 0
	club.Balance = uint64(balance)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, club_id, name, gender, contact, shares, paid, joined_at FROM members WHERE club_id = ?",
		clubID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m := &models.Member{}
		var paid int
		var shares int64
		if err := rows.Scan(&m.ID, &m.ClubID, &m.Name, &m.Gender, &m.Contact, &shares, &paid, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Shares = uint64(shares)
		m.Paid = paid != 0
		club.Members[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	invRows, err := s.db.QueryContext(ctx,
		"SELECT payer_id, member_id, amount_payable, due_at, status FROM investments WHERE club_id = ?",
		clubID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get investments: %w", err)
	}
	defer invRows.Close()

	for invRows.Next() {
		inv := &models.Investment{}
		var payerID string
		var amount int64
		if err := invRows.Scan(&payerID, &inv.MemberID, &amount, &inv.DueAt, &inv.Status); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		inv.AmountPayable = uint64(amount)
		club.Investments[payerID] = inv
	}
	if err := invRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}

	return club, nil
}

// GetBalance reads the club's treasury balance.
func (s *SQLiteStore) GetBalance(ctx context.Context, clubID string) (uint64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx,
		"SELECT balance FROM clubs WHERE id = ?", clubID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: club %s", storage.ErrNotFound, clubID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return uint64(balance), nil
}

// WithdrawBalance atomically zeroes the club balance and returns the prior
// amount.
func (s *SQLiteStore) WithdrawBalance(ctx context.Context, clubID string) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRowContext(ctx,
		"SELECT balance FROM clubs WHERE id = ?", clubID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: club %s", storage.ErrNotFound, clubID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE clubs SET balance = 0 WHERE id = ?", clubID,
	); err != nil {
		return 0, fmt.Errorf("failed to zero balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return uint64(balance), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
