package guard

import "sync"

// IdempotencyGuard deduplicates press creation by client-supplied key.
// Score writes are last-write-wins upserts and need no key, but a press is
// append-only and a double-tapped button would otherwise open two.
type IdempotencyGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewIdempotencyGuard creates an in-memory idempotency guard.
func NewIdempotencyGuard() *IdempotencyGuard {
	return &IdempotencyGuard{seen: make(map[string]bool)}
}

// Check reports whether key has already been processed. An empty key is
// always allowed.
func (ig *IdempotencyGuard) Check(key string) Result {
	if key == "" {
		return Result{Allowed: true}
	}

	ig.mu.Lock()
	defer ig.mu.Unlock()

	if ig.seen[key] {
		return Result{
			Allowed: false,
			Reason:  "duplicate request: idempotency key already processed",
			Guard:   "idempotency",
		}
	}

	ig.seen[key] = true
	return Result{Allowed: true}
}

// Remove deletes a key from the seen set so a failed request can retry.
func (ig *IdempotencyGuard) Remove(key string) {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	delete(ig.seen, key)
}
