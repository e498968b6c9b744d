package common

import (
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsDate reports whether s is a calendar date in DateLayout.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
