package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hackgods/clinic-records-api/internal/config"
)

const (
	ActionCreated = "CREATED"
	ActionUpdated = "UPDATED"
	ActionDeleted = "DELETED"
)

// Service implements the per-entity operations: filtered listing, lookup,
// registration, partial update and removal. Every write runs in one store
// transaction so the existence check and the write cannot interleave with
// another request's delete.
type Service struct {
	store    Store
	cache    Cache
	cacheTTL time.Duration
	today    func() Date
}

func NewService(store Store, cache Cache, cfg config.Config) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		store:    store,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		today:    Today,
	}
}

// EventType builds the event log type, e.g. PATIENT_CREATED.
func EventType(entity, action string) string {
	return strings.ToUpper(entity) + "_" + action
}

func (s *Service) logEvent(ctx context.Context, tx Store, entity string, id int64, action string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("entity", entity).Int64("id", id).Msg("marshal event payload")
		data = nil
	}

	ev := EventLog{
		EventType:  EventType(entity, action),
		EntityType: entity,
		EntityID:   id,
		Payload:    data,
		CreatedAt:  time.Now(),
	}
	if err := tx.Events().InsertEvent(ctx, ev); err != nil {
		return fmt.Errorf("insert event log %s: %w", ev.EventType, err)
	}
	return nil
}

func cacheKey(entity string, id int64) string {
	return fmt.Sprintf("clinic:%s:%d", entity, id)
}

// Cache failures never fail a request; the store stays the source of truth.

// readThrough serves key from the cache, or loads it from the store and fills
// the cache. The key's version is read before the load and the fill only lands
// if no invalidation happened in between, so a load that raced a modify or
// remove never puts the old projection back.
func readThrough[O any](ctx context.Context, s *Service, key string, load func() (O, error)) (*O, error) {
	var cached O
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	version, versioned := s.cacheVersion(ctx, key)

	out, err := load()
	if err != nil {
		return nil, err
	}

	if versioned {
		s.cacheFill(ctx, key, version, out)
	}
	return &out, nil
}

func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *Service) cacheVersion(ctx context.Context, key string) (int64, bool) {
	version, err := s.cache.Version(ctx, key)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache version failed")
		return 0, false
	}
	return version, true
}

func (s *Service) cacheFill(ctx context.Context, key string, version int64, value any) {
	stored, err := s.cache.SetIfVersion(ctx, key, version, value, s.cacheTTL)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache set failed")
		return
	}
	if !stored {
		log.Ctx(ctx).Debug().Str("key", key).Msg("cache fill skipped, key changed during load")
	}
}

// cacheInvalidate runs after the write committed. A failure leaves the old
// projection readable until the TTL expires, so it is logged as an error.
func (s *Service) cacheInvalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
