package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/mkamau/chamapool/internal/models"
)

func TestGenerateInvestment(t *testing.T) {
	const now = int64(1700000000000)

	tests := []struct {
		name       string
		shares     uint64
		baseAmount uint64
		offset     int64
		wantErr    error
		wantAmount uint64
	}{
		{
			name:       "amount is base times shares",
			shares:     3,
			baseAmount: 100,
			offset:     1000,
			wantAmount: 300,
		},
		{
			name:       "single share",
			shares:     1,
			baseAmount: 250,
			offset:     0,
			wantAmount: 250,
		},
		{
			name:       "large but non-overflowing product",
			shares:     1 << 32,
			baseAmount: (1 << 32) - 1,
			offset:     1,
			wantAmount: ((1 << 32) - 1) << 32,
		},
		{
			name:       "multiplication overflow",
			shares:     1 << 32,
			baseAmount: 1 << 32,
			offset:     1000,
			wantErr:    ErrArithmeticOverflow,
		},
		{
			name:       "due date overflow",
			shares:     2,
			baseAmount: 100,
			offset:     math.MaxInt64,
			wantErr:    ErrArithmeticOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			club, token := NewClub("Acme Invest", "", "", "", true, now)
			m := AddMember(club, "Alice", models.GenderFemale, "", tt.shares, now)

			err := GenerateInvestment(token, club, m, m.ID, tt.baseAmount, models.StatusPending, tt.offset, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(club.Investments) != 0 {
					t.Fatal("failed generation must store nothing")
				}
				return
			}
			if err != nil {
				t.Fatalf("GenerateInvestment failed: %v", err)
			}

			inv := club.Investments[m.ID]
			if inv == nil {
				t.Fatal("expected obligation stored under payer identity")
			}
			if inv.AmountPayable != tt.wantAmount {
				t.Errorf("amount_payable = %d, want %d", inv.AmountPayable, tt.wantAmount)
			}
			if inv.DueAt != now+tt.offset {
				t.Errorf("due_at = %d, want %d", inv.DueAt, now+tt.offset)
			}
			if inv.MemberID != m.ID {
				t.Errorf("member_id = %q, want %q", inv.MemberID, m.ID)
			}
			if inv.Status != models.StatusPending {
				t.Errorf("status = %q, want %q", inv.Status, models.StatusPending)
			}
		})
	}
}

func TestGenerateInvestmentAccessDenied(t *testing.T) {
	club, _ := NewClub("Acme Invest", "", "", "", true, 0)
	_, foreignToken := NewClub("Other", "", "", "", true, 0)
	m := AddMember(club, "Alice", models.GenderFemale, "", 3, 0)

	err := GenerateInvestment(foreignToken, club, m, m.ID, 100, models.StatusPending, 1000, 0)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if len(club.Investments) != 0 {
		t.Error("denied generation must store nothing")
	}
}

func TestGenerateInvestmentOverwritesExisting(t *testing.T) {
	club, token := NewClub("Acme Invest", "", "", "", true, 0)
	m := AddMember(club, "Alice", models.GenderFemale, "", 2, 0)

	if err := GenerateInvestment(token, club, m, "payer-1", 100, models.StatusPending, 1000, 0); err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	if err := GenerateInvestment(token, club, m, "payer-1", 500, models.StatusPending, 2000, 0); err != nil {
		t.Fatalf("second generation failed: %v", err)
	}

	if len(club.Investments) != 1 {
		t.Fatalf("expected one obligation for payer, got %d", len(club.Investments))
	}
	if got := club.Investments["payer-1"].AmountPayable; got != 1000 {
		t.Errorf("overwrite kept stale amount: got %d, want 1000", got)
	}
}

// The obligation key is the payer identity, which need not be the member the
// obligation was computed for.
func TestGenerateInvestmentForDistinctPayer(t *testing.T) {
	club, token := NewClub("Acme Invest", "", "", "", true, 0)
	m := AddMember(club, "Alice", models.GenderFemale, "", 2, 0)

	if err := GenerateInvestment(token, club, m, "guardian-7", 50, models.StatusPending, 100, 0); err != nil {
		t.Fatalf("GenerateInvestment failed: %v", err)
	}
	if _, ok := club.Investments[m.ID]; ok {
		t.Error("obligation must not be keyed by member when payer differs")
	}
	inv := club.Investments["guardian-7"]
	if inv == nil {
		t.Fatal("expected obligation under payer identity")
	}
	if inv.MemberID != m.ID {
		t.Errorf("member_id = %q, want %q", inv.MemberID, m.ID)
	}
}

func TestMarkOverdue(t *testing.T) {
	const now = int64(10_000)
	club, token := NewClub("Acme Invest", "", "", "", true, 0)
	early := AddMember(club, "Early", models.GenderMale, "", 1, 0)
	late := AddMember(club, "Late", models.GenderFemale, "", 1, 0)

	if err := GenerateInvestment(token, club, early, early.ID, 100, models.StatusPending, 20_000, 0); err != nil {
		t.Fatal(err)
	}
	if err := GenerateInvestment(token, club, late, late.ID, 100, models.StatusPending, 5_000, 0); err != nil {
		t.Fatal(err)
	}

	flipped := MarkOverdue(club, now)
	if len(flipped) != 1 || flipped[0] != late.ID {
		t.Fatalf("expected [%s] flipped, got %v", late.ID, flipped)
	}
	if got := club.Investments[late.ID].Status; got != models.StatusOverdue {
		t.Errorf("past-due status = %q, want %q", got, models.StatusOverdue)
	}
	if got := club.Investments[early.ID].Status; got != models.StatusPending {
		t.Errorf("future status = %q, want %q", got, models.StatusPending)
	}

	// Idempotent: already-Overdue obligations are not flipped again.
	if flipped := MarkOverdue(club, now); len(flipped) != 0 {
		t.Errorf("expected nothing on repeat, got %v", flipped)
	}
}
