package usecase

import (
	"context"
	"strings"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"
)

// FailureMarker appears in every canned failure answer. Answers containing it are never cached.
const FailureMarker = "Sorry"

// CacheGate wraps the response cache. Keys are the raw query text, so case and
// whitespace variants of a question are separate entries.
type CacheGate struct {
	cache repository.ResponseCache
	log   logger.Logger
}

func NewCacheGate(cache repository.ResponseCache, log logger.Logger) *CacheGate {
	return &CacheGate{
		cache: cache,
		log:   log.With(map[string]interface{}{"component": "cache_gate"}),
	}
}

// Lookup returns the cached answer for query, if any. Cache errors count as a miss.
func (c *CacheGate) Lookup(ctx context.Context, query string) (*entity.AnswerResponse, bool) {
	cached, err := c.cache.Get(ctx, query)
	if err != nil {
		c.log.WithError(err).Warn("cache read failed, treating as miss", nil)
		return nil, false
	}
	if cached == nil {
		return nil, false
	}
	return &entity.AnswerResponse{Answer: cached.Answer, Source: entity.SourceCache}, true
}

// Store writes resp back to the cache when it is cacheable and reports whether it did.
func (c *CacheGate) Store(ctx context.Context, query string, resp entity.AnswerResponse) bool {
	if !IsCacheable(resp) {
		return false
	}
	if err := c.cache.Set(ctx, query, entity.CachedAnswer{Answer: resp.Answer}); err != nil {
		c.log.WithError(err).Warn("cache write failed", nil)
		return false
	}
	return true
}

// IsCacheable reports whether a response may be replayed to later identical queries:
// it must come from the model, be non-empty, and carry neither the failure marker
// nor the no-information fallback sentence.
func IsCacheable(resp entity.AnswerResponse) bool {
	if resp.Source != entity.SourceLLM || resp.Answer == "" {
		return false
	}
	if strings.Contains(resp.Answer, FailureMarker) {
		return false
	}
	return !strings.Contains(resp.Answer, FallbackSentence)
}
