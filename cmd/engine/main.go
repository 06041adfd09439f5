package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"prospector-engine/internal/cache"
	"prospector-engine/internal/config"
	"prospector-engine/internal/events"
	"prospector-engine/internal/httpapi"
	"prospector-engine/internal/query"
	"prospector-engine/internal/rank"
	"prospector-engine/internal/refresh"
	"prospector-engine/internal/scheduler"
	"prospector-engine/internal/search"
	"prospector-engine/internal/secrets"
	"prospector-engine/internal/source"
	"prospector-engine/internal/source/alerts"
	"prospector-engine/internal/source/openai"
	"prospector-engine/internal/source/samgov"
	"prospector-engine/internal/source/serp"
	"prospector-engine/internal/source/util"
	"prospector-engine/internal/store"
)

func main() {
	// Engine data dir: env wins so a desktop shell can pass one.
	dataDir := os.Getenv("PROSPECTOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would race the sqlite
	// writer and the config file.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, v := config.NormalizeAndValidate(cfg)
	for _, warn := range v.Warnings {
		log.Printf("[config] warning: %s", warn)
	}
	if !v.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, v.Errors)
	}
	cfgVal.Store(cfg)

	cacheStore := openCache()
	defer closeCache(cacheStore)

	db, err := store.Open(filepath.Join(dataDir, "prospector.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}
	if err := store.SeedTemplates(context.Background(), db.Pool, store.DefaultTemplates()); err != nil {
		log.Printf("[store] template seed: %v", err)
	}

	limiter := util.NewHostLimiter(cfg.Search.HostRatePerSec, cfg.Search.HostBurst)
	sources := assembleSources(cfg, limiter)

	runner := &search.Runner{
		Sources: sources,
		Scorer:  rank.RuleScorer{Cfg: cfg.Scoring},
		Timeout: time.Duration(cfg.Search.SourceTimeoutSeconds) * time.Second,
		Version: cfg.Search.Version,
	}

	refreshQ := refresh.NewQueue(32, runner.Timeout+10*time.Second)
	defer refreshQ.Close()

	searcher := &search.Cached{
		Runner:   runner,
		Expander: query.Expander{Presets: cfg.Presets},
		Store:    cacheStore,
		TTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		Refresh:  refreshQ,
	}

	hub := events.NewHub()

	deps := httpapi.Deps{
		Searcher:    searcher,
		Cache:       cacheStore,
		DB:          db.Pool,
		Hub:         hub,
		Cfg:         &cfgVal,
		UserCfgPath: userCfgPath,
		HasKey:      func(name string) bool { return secrets.APIKey(name) != "" },
		CronSecret:  func() string { return secrets.APIKey(secrets.EnvCronSecret) },
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Warm.Enabled && len(cfg.Warm.Queries) > 0 {
		go scheduler.Every(ctx, "warm", 24*time.Hour, true, func(tctx context.Context) error {
			for _, q := range cfg.Warm.Queries {
				if err := searcher.Warm(tctx, q); err != nil {
					log.Printf("[warm] %q: %v", q, err)
				}
			}
			return nil
		})
	}

	handler := httpapi.Chain(httpapi.NewMux(deps),
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.Cors,
		httpapi.AccessLog,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// assembleSources wires every adapter whose credential resolves. A missing
// key disables the adapter rather than erroring.
func assembleSources(cfg config.Config, limiter *util.HostLimiter) []source.Source {
	var sources []source.Source

	if key := secrets.APIKey(secrets.EnvSerpAPIKey); key != "" {
		sources = append(sources, serp.New(key, limiter))
	} else {
		log.Printf("[engine] serpapi disabled: no %s", secrets.EnvSerpAPIKey)
	}
	if key := secrets.APIKey(secrets.EnvSamAPIKey); key != "" {
		sources = append(sources, samgov.New(key, limiter))
	} else {
		log.Printf("[engine] sam.gov disabled: no %s", secrets.EnvSamAPIKey)
	}
	if key := secrets.APIKey(secrets.EnvOpenAIKey); key != "" {
		sources = append(sources, openai.New(key, limiter))
	} else {
		log.Printf("[engine] openai disabled: no %s", secrets.EnvOpenAIKey)
	}

	if cfg.Alerts.Enabled {
		pw, err := secrets.IMAPPassword(cfg)
		if err != nil {
			log.Printf("[engine] alerts disabled: %v", err)
		} else {
			f := &alerts.Fetcher{Cfg: cfg, Password: pw}
			if f.Enabled() {
				sources = append(sources, f)
			}
		}
	}

	return sources
}

// openCache prefers Redis when REDIS_URL resolves, with the in-process map
// as fallback.
func openCache() cache.Store {
	url := secrets.APIKey(secrets.EnvRedisURL)
	if url == "" {
		log.Printf("[cache] no %s, using in-process cache", secrets.EnvRedisURL)
		return cache.NewMemory()
	}
	r, err := cache.NewRedis(url)
	if err != nil {
		log.Printf("[cache] redis unavailable (%v), using in-process cache", err)
		return cache.NewMemory()
	}
	log.Printf("[cache] using redis")
	return r
}

func closeCache(s cache.Store) {
	if r, ok := s.(*cache.Redis); ok {
		_ = r.Close()
	}
}
