package schedule

import (
	"io"
	"log/slog"
	"time"

	"github.com/cyp0633/schedcfg/locale"
)

// ResolverConfig holds configuration options for a Resolver
type ResolverConfig struct {
	// Cache configuration
	CacheEnabled bool
	CacheConfig  CacheConfig

	// Catalog supplies description templates. Nil means the bundled catalog.
	Catalog *locale.Catalog

	// Calendar fixes the week layout for weekly schedules. Nil means the
	// calendar of each configuration's language.
	Calendar locale.Calendar

	// Logger receives debug records for every resolution. Nil discards.
	Logger *slog.Logger
}

// DefaultResolverConfig resolves without caching
var DefaultResolverConfig = ResolverConfig{
	CacheEnabled: false,
}

// CachedResolverConfig keeps results for repeated lookups of the same
// configurations, e.g. a UI re-rendering a schedule list
var CachedResolverConfig = ResolverConfig{
	CacheEnabled: true,
	CacheConfig:  DefaultCacheConfig,
}

// HighVolumeConfig is optimized for resolving many distinct configurations
var HighVolumeConfig = ResolverConfig{
	CacheEnabled: true,
	CacheConfig: CacheConfig{
		TTL:             30 * time.Minute,
		MaxEntries:      10000,
		CleanupInterval: 10 * time.Minute,
	},
}

// NewResolverWithConfig creates a resolver with custom configuration
func NewResolverWithConfig(config ResolverConfig) *Resolver {
	var cache *ResultCache
	if config.CacheEnabled {
		cache = NewResultCache(config.CacheConfig)
	}

	catalog := config.Catalog
	if catalog == nil {
		catalog = locale.MustDefaultCatalog()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Resolver{
		catalog:  catalog,
		calendar: config.Calendar,
		cache:    cache,
		logger:   logger,
	}
}
