package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkamau/chamapool/internal/models"
)

// CapabilityManager signs and verifies the wire form of a club's capability
// token. The signature is what makes the credential unforgeable in transit;
// the accounting core still performs its own identity check against the
// target club after verification. Capability credentials do not expire: they
// are minted once, when the club is created, and are valid for its lifetime.
type CapabilityManager struct {
	secretKey []byte
}

// CapabilityClaims carry the capability binding across the wire.
type CapabilityClaims struct {
	TokenID string `json:"token_id"`
	ClubID  string `json:"club_id"`
	jwt.RegisteredClaims
}

// NewCapabilityManager creates a capability signer/verifier sharing the
// service's secret key.
func NewCapabilityManager(secretKey string) *CapabilityManager {
	return &CapabilityManager{secretKey: []byte(secretKey)}
}

// Issue signs the wire form of token. Called exactly once per club, at
// creation time; the result is shown to the founding treasurer and never
// stored server-side in signed form.
func (m *CapabilityManager) Issue(token *models.ClubToken) (string, error) {
	claims := &CapabilityClaims{
		TokenID: token.ID,
		ClubID:  token.ClubID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign capability: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and reconstructs the domain capability token.
func (m *CapabilityManager) Verify(credential string) (*models.ClubToken, error) {
	token, err := jwt.ParseWithClaims(
		credential,
		&CapabilityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CapabilityClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &models.ClubToken{ID: claims.TokenID, ClubID: claims.ClubID}, nil
}
