package usecase

import "time"

const (
	// ActiveRuleCacheKey is the cache key for the active penalty rule snapshot
	ActiveRuleCacheKey = "penalty_rule:active"

	// ActiveRuleCacheTTL is how long the active rule snapshot is cached
	ActiveRuleCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultSweepPageSize is how many installments a sweep fetches per page
	DefaultSweepPageSize = 500

	// DefaultSweepWorkers is the number of concurrent sweep workers
	DefaultSweepWorkers = 4
)
