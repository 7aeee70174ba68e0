package ledger

import "github.com/mkamau/chamapool/internal/models"

// WithdrawFunds empties the club's treasury and returns the entire prior
// balance. Partial withdrawal is not supported. The capability check runs
// first; on failure the balance is untouched.
func WithdrawFunds(token *models.ClubToken, club *models.Club) (uint64, error) {
	if err := Authorize(token, club); err != nil {
		return 0, err
	}
	funds := club.Balance
	club.Balance = 0
	return funds, nil
}

// Balance reads the pooled treasury balance. No authorization required.
func Balance(club *models.Club) uint64 {
	return club.Balance
}
