// Package bootstrap assembles the storage backend, repositories and services
// into a ready-to-use runtime.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"netgro/internal/config"
	"netgro/internal/database"
	"netgro/internal/notifications"
	"netgro/internal/observability"
	"netgro/internal/repository"
	"netgro/internal/router"
	"netgro/internal/security"
	"netgro/internal/seed"
	"netgro/internal/service"
	"netgro/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFixture loads the embedded EduConnect dataset after start-up.
	SeedFixture bool
	// Backend replaces the configured storage backend. Used by tests.
	Backend storage.Backend
	// LogWriter receives structured logs. Defaults to stderr.
	LogWriter io.Writer
}

// Runtime is the process-wide state: it is created once, loaded from the
// store, and closed on exit.
type Runtime struct {
	Config   *config.Config
	Store    *storage.Store
	Redis    *redis.Client
	Notifier *notifications.Notifier
	Hasher   security.PasswordHasher

	Users    repository.UserRepository
	Posts    repository.PostRepository
	Sessions repository.SessionRepository

	Auth     *service.AuthService
	Feed     *service.PostService
	Profiles *service.ProfileService

	shutdownTracing func(context.Context) error
}

// InitRuntime opens the configured backend, loads the persisted state and
// runs the configured seeding.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	logWriter := opts.LogWriter
	if logWriter == nil {
		logWriter = os.Stderr
	}
	observability.ConfigureLogger(logWriter, cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "netgro",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	hasher, err := security.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg, Hasher: hasher, shutdownTracing: shutdownTracing}

	backend := opts.Backend
	if backend == nil {
		backend, rt.Redis, err = OpenBackend(ctx, cfg)
		if err != nil {
			_ = shutdownTracing(ctx)
			return nil, err
		}
	} else if rb, ok := backend.(*storage.RedisBackend); ok {
		rt.Redis = rb.Client()
	}

	rt.Store = storage.New(backend, cfg.StorageKeyPrefix)
	rt.Notifier = notifications.NewNotifier(rt.Redis)
	rt.Users = repository.NewUserRepository(rt.Store)
	rt.Posts = repository.NewPostRepository(rt.Store)
	rt.Sessions = repository.NewSessionRepository(rt.Store)

	if err := rt.Load(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	rt.Auth = service.NewAuthService(rt.Users, rt.Sessions, hasher, rt.Notifier)
	rt.Feed = service.NewPostService(rt.Posts, rt.Users, rt.Notifier)
	rt.Profiles = service.NewProfileService(rt.Users, rt.Posts, rt.Sessions, rt.Notifier)

	if cfg.SeedDemoUser {
		if _, err := rt.Auth.EnsureDemoUser(ctx); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("failed to seed demo user: %w", err)
		}
	}
	if opts.SeedFixture {
		if _, err := rt.SeedFixture(ctx); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("failed to seed fixture: %w", err)
		}
	}

	observability.GlobalLogger.Info("runtime ready",
		slog.String("backend", backend.Name()),
		slog.Int("users", rt.Users.Count(ctx)),
	)
	return rt, nil
}

// OpenBackend connects to the backend named by cfg.StorageBackend. The Redis
// client is returned for the redis backend so events can share it.
func OpenBackend(ctx context.Context, cfg *config.Config) (storage.Backend, *redis.Client, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewMemoryBackend(), nil, nil
	case config.BackendSQLite, config.BackendPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		b := storage.NewSQLBackend(db)
		if err := b.Migrate(ctx); err != nil {
			_ = b.Close()
			return nil, nil, fmt.Errorf("failed to migrate storage table: %w", err)
		}
		return b, nil, nil
	case config.BackendRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return storage.NewRedisBackend(client), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Load (re)reads the three persisted documents into memory.
func (rt *Runtime) Load(ctx context.Context) error {
	return errors.Join(
		rt.Users.Load(ctx),
		rt.Posts.Load(ctx),
		rt.Sessions.Load(ctx),
	)
}

// SeedFixture applies the embedded EduConnect dataset.
func (rt *Runtime) SeedFixture(ctx context.Context) (seed.Result, error) {
	fixture, err := seed.EduConnect()
	if err != nil {
		return seed.Result{}, err
	}
	return seed.NewSeeder(rt.Users, rt.Posts, rt.Hasher).ApplyFixture(ctx, fixture)
}

// NewRouter creates a router over the runtime's services and keeps it in
// sync with state-change events: sign-in goes to the feed, sign-out to the
// landing page, anything else re-renders the current page. The returned
// function detaches the router from the events.
func (rt *Runtime) NewRouter(renderer router.Renderer) (*router.Router, func()) {
	r := router.New(rt.Auth, rt.Feed, rt.Profiles, renderer)
	unsubscribe := rt.Notifier.Subscribe(func(ev notifications.Event) {
		ctx := context.Background()
		var err error
		switch {
		case ev.Type == notifications.EventSessionChanged && ev.Action == "logout":
			_, err = r.Navigate(ctx, string(router.PageLanding))
		case ev.Type == notifications.EventSessionChanged:
			_, err = r.Navigate(ctx, string(router.PageFeed))
		case ev.Action == "delete" && r.Current().Page == router.PagePost && r.Current().PostID == ev.PostID:
			_, err = r.Back(ctx)
		default:
			_, err = r.Refresh(ctx)
		}
		if err != nil {
			observability.GlobalLogger.Warn("re-render failed",
				slog.String("event", ev.Type),
				slog.String("error", err.Error()),
			)
		}
	})
	return r, unsubscribe
}

// Close releases the backend and flushes traces.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	if rt.shutdownTracing != nil {
		errs = append(errs, rt.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}
