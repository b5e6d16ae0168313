// Package goPurse implements a PIN-gated electronic purse: a balance bounded
// by a fixed cap and an operation-count budget, with debits validated by a
// 4-digit secret code that locks out after three consecutive failures.
//
// The core model is two small value types. [SecretCode] generates and holds
// the code, tracks failed verifications, and supports a one-time reveal.
// [Purse] holds the balance and consumes a secret-code capability through the
// [CodeGate] interface, so it can be exercised against any substitute gate.
// Both types are deliberately single-threaded; callers in concurrent
// environments must serialize access per instance.
//
// # Architecture boundaries
//
// goPurse is the public surface. It exposes [Purse], [SecretCode], [Engine],
// [Builder], [Config], the error taxonomy, and the audit/metrics value types.
// The [Engine] adds auditing and metrics around one purse without changing
// the core semantics: every rejection surfaces unchanged through engine
// calls.
//
// # What this package must NOT do
//
//   - Persist purse or gate state anywhere. The Redis audit sink is an
//     export channel for events only.
//   - Mutate gate internals from Purse: the gate is consulted strictly
//     through Verify and IsBlocked.
//   - Retry or recover rejected operations. Fail fast, no partial state
//     change, the caller decides the next action.
//
// # Randomness
//
// Code generation consumes the single-method [random.Source] capability.
// Production engines default to the crypto/rand implementation; tests inject
// a scripted source for repeatable codes.
package goPurse
