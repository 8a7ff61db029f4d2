package handlers

import (
	"github.com/vocab-tools/tg-vocab-review/pkg/review"
	"github.com/vocab-tools/tg-vocab-review/pkg/statscache"
	"github.com/vocab-tools/tg-vocab-review/pkg/wordset"
)

var (
	Reviewer   *review.Scheduler
	Sets       *wordset.Service
	StatsCache *statscache.Cache
)

// Configure wires the handler package to its services. Must run before
// the bot starts dispatching updates.
func Configure(reviewer *review.Scheduler, sets *wordset.Service, cache *statscache.Cache) {
	Reviewer = reviewer
	Sets = sets
	StatsCache = cache
}
