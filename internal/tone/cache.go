package tone

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusflow/disruption-service/internal/domain"
)

const cacheKeyPrefix = "tone:"

// CachedAnnotator memoizes annotations in Redis keyed by a digest of the
// text. Cache failures fall through to the wrapped annotator.
type CachedAnnotator struct {
	inner  Annotator
	client *redis.Client
	ttl    time.Duration
}

// NewCachedAnnotator wraps an annotator with a Redis cache.
func NewCachedAnnotator(inner Annotator, client *redis.Client, ttl time.Duration) *CachedAnnotator {
	return &CachedAnnotator{inner: inner, client: client, ttl: ttl}
}

// Analyze returns a cached annotation when available.
func (a *CachedAnnotator) Analyze(ctx context.Context, text string) (*domain.ToneAnnotation, error) {
	key := cacheKey(text)

	if a.client != nil {
		if raw, err := a.client.Get(ctx, key).Bytes(); err == nil {
			var annotation domain.ToneAnnotation
			if err := json.Unmarshal(raw, &annotation); err == nil {
				return &annotation, nil
			}
		}
	}

	annotation, err := a.inner.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	if a.client != nil {
		if raw, err := json.Marshal(annotation); err == nil {
			_ = a.client.Set(ctx, key, raw, a.ttl).Err()
		}
	}
	return annotation, nil
}

func cacheKey(text string) string {
	digest := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(digest[:])
}
