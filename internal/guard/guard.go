// Package guard holds request-protection primitives: rate limiting on the
// write path, duplicate-press suppression, join-code attempt lockout, and a
// circuit breaker around the change-feed broker. Guards report a Result
// rather than an error so callers decide how a denial surfaces.
package guard

// Result is the outcome of a guard check.
type Result struct {
	Allowed bool
	Reason  string
	Guard   string
}
