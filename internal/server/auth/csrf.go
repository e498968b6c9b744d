package auth

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/caet/internal/common"
)

// CheckAntiForgery compares the presented anti-forgery value with the
// configured one in constant time. Empty values never match.
func CheckAntiForgery(presented, expected string) error {
	if presented == "" || expected == "" {
		return common.ErrAntiForgery
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
		return common.ErrAntiForgery
	}
	return nil
}
