package identity

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies the per-poll vote credential. The token is
// the strong anti-replay signal and doubles as the "what did I vote for"
// readback mechanism.
type TokenCodec struct {
	Secret []byte
}

type voteClaims struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
	jwt.RegisteredClaims
}

// Issue binds a voter to pollID+optionID until expiresAt (the poll's own
// voting window).
func (c TokenCodec) Issue(pollID string, optionID string, issuedAt time.Time, expiresAt time.Time) (string, error) {
	claims := voteClaims{
		PollID:   pollID,
		OptionID: optionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.Secret)
}

// Verify checks signature, expiry, and poll scope. Every failure mode
// degrades to "no prior token": a tampered or stale cookie must never block
// a request outright.
func (c TokenCodec) Verify(tokenString string, pollID string) (string, bool) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", false
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &voteClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}
	claims, ok := parsed.Claims.(*voteClaims)
	if !ok || claims.PollID != pollID || claims.OptionID == "" {
		return "", false
	}
	return claims.OptionID, true
}
