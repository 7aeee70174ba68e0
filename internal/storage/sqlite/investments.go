package sqlite

import (
	"context"
	"fmt"

	"github.com/mkamau/chamapool/internal/models"
	"github.com/mkamau/chamapool/internal/storage"
)

// PutInvestment inserts or overwrites the obligation keyed by payerID.
func (s *SQLiteStore) PutInvestment(ctx context.Context, clubID, payerID string, inv *models.Investment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO investments (club_id, payer_id, member_id, amount_payable, due_at, status)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(club_id, payer_id) DO UPDATE SET
		   member_id = excluded.member_id,
		   amount_payable = excluded.amount_payable,
		   due_at = excluded.due_at,
		   status = excluded.status`,
		clubID, payerID, inv.MemberID, int64(inv.AmountPayable), inv.DueAt, string(inv.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert investment: %w", err)
	}
	return nil
}

// UpdateInvestmentStatus rewrites the status of the obligation keyed by
// payerID.
func (s *SQLiteStore) UpdateInvestmentStatus(ctx context.Context, clubID, payerID string, status models.InvestmentStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE investments SET status = ? WHERE club_id = ? AND payer_id = ?",
		string(status), clubID, payerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: investment for payer %s", storage.ErrNotFound, payerID)
	}
	return nil
}

// SettleInvestment atomically removes the obligation keyed by payerID, adds
// amount to the club balance, and marks the member paid. Mirrors the core's
// settlement mutation; the settled obligation leaves no durable record beyond
// the balance delta and the member flag.
func (s *SQLiteStore) SettleInvestment(ctx context.Context, clubID, payerID, memberID string, amount uint64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM investments WHERE club_id = ? AND payer_id = ?",
		clubID, payerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: investment for payer %s", storage.ErrNotFound, payerID)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE clubs SET balance = balance + ? WHERE id = ?",
		int64(amount), clubID,
	); err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE members SET paid = 1 WHERE id = ? AND club_id = ?",
		memberID, clubID,
	); err != nil {
		return fmt.Errorf("failed to mark member paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
