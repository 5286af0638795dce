package backend

import (
	"fmt"
	"log"

	"locator/internal/config"
)

// Build assembles the client stack described by cfg:
// engine, then optional rate limit, then optional Redis cache.
// The returned cleanup releases any connections.
func Build(cfg *config.Config) (Client, func(), error) {
	var client Client
	cleanup := func() {}

	switch cfg.Backend.Kind {
	case "memory":
		ds, err := LoadDataset(cfg.Backend.DatasetPath)
		if err != nil {
			return nil, cleanup, err
		}
		log.Printf("backend: loaded %d locations from %s", len(ds.Locations), cfg.Backend.DatasetPath)
		client = NewMemory(ds.Locations)
	case "meilisearch":
		client = NewMeili(cfg.Backend.MeiliURL, cfg.Backend.MeiliKey, cfg.Backend.Index)
	default:
		return nil, cleanup, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}

	if cfg.Backend.RateLimit > 0 {
		client = NewThrottle(client, cfg.Backend.RateLimit, cfg.Backend.RateBurst)
	}

	if cfg.Cache.RedisURL != "" {
		cache, err := NewCache(client, cfg.Cache.RedisURL, cfg.Cache.TTL)
		if err != nil {
			// Caching is optional; run uncached
			log.Printf("backend: result cache disabled: %v", err)
		} else {
			client = cache
			cleanup = func() { _ = cache.Close() }
		}
	}

	return client, cleanup, nil
}
