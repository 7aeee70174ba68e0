// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mkamau/chamapool/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// should test with errors.Is since implementations wrap it with context.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations for clubs, members, obligations,
// and treasurer accounts. The abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing the service layer.
//
// Multi-row mutations (CreateClub, SettleInvestment, WithdrawBalance) are
// atomic: they either apply fully or not at all.
type Store interface {
	// CreateUser persists a new treasurer account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a treasurer account by email.
	// Returns (nil, nil) when no such account exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateClub persists a club together with its capability token.
	CreateClub(ctx context.Context, club *models.Club, token *models.ClubToken) error

	// GetClub retrieves the full club aggregate: the club row plus its
	// member and investment maps.
	GetClub(ctx context.Context, clubID string) (*models.Club, error)

	// CreateMember persists a new member record.
	CreateMember(ctx context.Context, member *models.Member) error

	// PutInvestment inserts or overwrites the obligation keyed by payerID.
	PutInvestment(ctx context.Context, clubID, payerID string, inv *models.Investment) error

	// UpdateInvestmentStatus rewrites the status of the obligation keyed
	// by payerID.
	UpdateInvestmentStatus(ctx context.Context, clubID, payerID string, status models.InvestmentStatus) error

	// SettleInvestment atomically removes the obligation keyed by payerID,
	// adds amount to the club balance, and marks the member paid.
	SettleInvestment(ctx context.Context, clubID, payerID, memberID string, amount uint64) error

	// WithdrawBalance atomically zeroes the club balance and returns the
	// prior amount.
	WithdrawBalance(ctx context.Context, clubID string) (uint64, error)

	// GetBalance reads the club's treasury balance.
	GetBalance(ctx context.Context, clubID string) (uint64, error)

	// Close releases any resources held by the store.
	Close() error
}
