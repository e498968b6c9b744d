// Package auth holds the credential primitives of the server: session token
// minting and validation, password digests, and the anti-forgery check.
package auth

import (
	"time"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload: the standard claims plus the id of
// the authenticated user.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// now is a test seam for the token clock.
var now = time.Now

// GenerateToken mints an HS256 session token for userID that expires
// validityDuration from now.
func GenerateToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	issuedAt := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature and expiry of tokenString and
// returns the embedded user id. Every failure is reported as
// common.ErrInvalidToken so callers cannot tell expired from forged.
func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil || !token.Valid || claims.UserID <= 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
