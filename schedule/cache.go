package schedule

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"sort"
	"sync"
	"time"

	"github.com/samber/mo"
)

// cacheEntry is a cached resolution.
type cacheEntry struct {
	event      ScheduleEvent
	expiresAt  time.Time
	accessedAt time.Time
}

func (e *cacheEntry) expired(now time.Time) bool { return now.After(e.expiresAt) }

// ResultCache caches resolved events by configuration. Resolution is a pure
// function of the configuration, so entries only expire to bound memory.
type ResultCache struct {
	entries    map[string]*cacheEntry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
	done       chan struct{}
	closeOnce  sync.Once
}

// CacheConfig holds configuration for the result cache
type CacheConfig struct {
	TTL             time.Duration // How long entries stay valid
	MaxEntries      int           // Maximum number of entries before cleanup
	CleanupInterval time.Duration // How often to run cleanup
}

// DefaultCacheConfig provides sensible defaults for result caching
var DefaultCacheConfig = CacheConfig{
	TTL:             15 * time.Minute,
	MaxEntries:      1000,
	CleanupInterval: 5 * time.Minute,
}

// NewResultCache creates a cache and starts its cleanup goroutine when
// CleanupInterval is positive. Call Close to stop it.
func NewResultCache(config CacheConfig) *ResultCache {
	cache := &ResultCache{
		entries:    make(map[string]*cacheEntry),
		ttl:        config.TTL,
		maxEntries: config.MaxEntries,
		done:       make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		go cache.pruneEvery(config.CleanupInterval)
	}

	return cache
}

// cacheKey hashes every field that influences the result.
func cacheKey(cfg RecurrenceConfig) string {
	h := sha256.New()

	writeTime(h, cfg.CurrentDate)
	fmt.Fprintf(h, "|%d|%d|", cfg.Type, cfg.Language)

	if dl, ok := cfg.DateLimits.Get(); ok {
		h.Write([]byte("limits"))
		writeOptTime(h, dl.Start)
		writeOptTime(h, dl.End)
	}
	writeOptTime(h, cfg.ScheduleDate)

	fmt.Fprintf(h, "|%s|%s|", optString(cfg.Period), optString(cfg.OccurrencyPeriod))

	days := append([]time.Weekday(nil), cfg.WeeklyDays...)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	fmt.Fprintf(h, "%v|", days)

	fmt.Fprintf(h, "%s|%s|%s|", optString(cfg.DailyScheduleHour), optString(cfg.DailyFrequency), optString(cfg.DailyFrequencyPeriod))
	if tl, ok := cfg.DailyLimits.Get(); ok {
		fmt.Fprintf(h, "window|%s|%s", optString(tl.Start), optString(tl.End))
	}

	return fmt.Sprintf("%x", h.Sum(nil))
}

func optString[T any](opt mo.Option[T]) string {
	if v, ok := opt.Get(); ok {
		return fmt.Sprint(v)
	}
	return "-"
}

func writeTime(h hash.Hash, t time.Time) {
	h.Write([]byte(t.Format(time.RFC3339Nano)))
	h.Write([]byte(t.Location().String()))
}

func writeOptTime(h hash.Hash, opt mo.Option[time.Time]) {
	if t, ok := opt.Get(); ok {
		writeTime(h, t)
		return
	}
	h.Write([]byte("-"))
}

// Get returns the event cached for cfg. An expired entry is dropped and
// reported as a miss.
func (c *ResultCache) Get(cfg RecurrenceConfig) (ScheduleEvent, bool) {
	key := cacheKey(cfg)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return ScheduleEvent{}, false
	}
	if entry.expired(now) {
		delete(c.entries, key)
		return ScheduleEvent{}, false
	}
	entry.accessedAt = now
	return entry.event, true
}

// Set caches event for cfg, pruning when the cache grows past MaxEntries.
func (c *ResultCache) Set(cfg RecurrenceConfig, event ScheduleEvent) {
	key := cacheKey(cfg)
	now := time.Now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = &cacheEntry{event: event, expiresAt: now.Add(c.ttl), accessedAt: now}
	if len(c.entries) > c.maxEntries {
		c.prune(now)
	}
}

// prune drops expired entries, then the least recently used ones until the
// cache fits MaxEntries. Callers hold the write lock.
func (c *ResultCache) prune(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}

	excess := len(c.entries) - c.maxEntries
	if excess <= 0 {
		return
	}

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.entries[keys[i]].accessedAt.Before(c.entries[keys[j]].accessedAt)
	})
	for _, key := range keys[:excess] {
		delete(c.entries, key)
	}
}

func (c *ResultCache) pruneEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mutex.Lock()
			c.prune(now)
			c.mutex.Unlock()
		}
	}
}

// Close stops background pruning and empties the cache. It is safe to call
// more than once.
func (c *ResultCache) Close() {
	c.closeOnce.Do(func() { close(c.done) })

	c.mutex.Lock()
	clear(c.entries)
	c.mutex.Unlock()
}

// CacheStats is a snapshot of the cache contents.
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int // not yet pruned
	ActiveEntries  int
}

func (c *ResultCache) Stats() CacheStats {
	now := time.Now()

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := CacheStats{TotalEntries: len(c.entries)}
	for _, entry := range c.entries {
		if entry.expired(now) {
			stats.ExpiredEntries++
		}
	}
	stats.ActiveEntries = stats.TotalEntries - stats.ExpiredEntries
	return stats
}
