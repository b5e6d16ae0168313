package goPurse

// CodeGate is the secret-code verification capability a [Purse] depends on.
// A real [SecretCode] satisfies it, as does any substitute used in tests.
//
// Purse only ever calls these two methods; it never reaches into the gate's
// state directly.
type CodeGate interface {
	// Verify reports whether candidate matches the secret code. A failed
	// verification may flip the gate into the blocked state as a side effect.
	Verify(candidate string) bool
	// IsBlocked reports whether the gate refuses all further verification.
	IsBlocked() bool
}
