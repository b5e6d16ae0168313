package goPurse

import (
	"strings"

	"github.com/MrEthical07/goPurse/random"
)

const (
	codeLength         = 4
	maxFailedAttempts  = 3
	maskedCodeSentinel = "xxxx"
)

// SecretCode holds a 4-digit code with reveal-once semantics and lockout
// after three consecutive failed verifications.
//
// SecretCode is a plain single-threaded value: concurrent callers need
// external synchronization around every method.
type SecretCode struct {
	code           string
	revealed       bool
	failedAttempts int
}

// NewSecretCode constructs a SecretCode holding the given literal code.
func NewSecretCode(code string) *SecretCode {
	return &SecretCode{code: code}
}

// CreateCode generates a SecretCode by drawing four digits from src, in draw
// order. It consults src exactly four times.
func CreateCode(src random.Source) *SecretCode {
	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		b.WriteByte(byte('0' + src.IntN(10)))
	}
	return NewSecretCode(b.String())
}

// Reveal returns the code in clear on the first call ever made on this
// instance and the masked sentinel "xxxx" on every call thereafter.
func (c *SecretCode) Reveal() string {
	if !c.revealed {
		c.revealed = true
		return c.code
	}
	return maskedCodeSentinel
}

// IsBlocked reports whether three consecutive verifications have failed.
// Pure query, no side effect.
func (c *SecretCode) IsBlocked() bool {
	return c.failedAttempts >= maxFailedAttempts
}

// Verify compares candidate against the stored code.
//
// While blocked it refuses immediately with false and does not count the
// attempt. Otherwise a match returns true and resets the failure counter; a
// mismatch returns false and increments it, which on the third consecutive
// failure locks the code.
func (c *SecretCode) Verify(candidate string) bool {
	if c.IsBlocked() {
		return false
	}

	if c.code != candidate {
		c.failedAttempts++
		return false
	}

	c.failedAttempts = 0
	return true
}
