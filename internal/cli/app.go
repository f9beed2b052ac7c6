package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/t1nkr/releasecache/internal/config"
	"github.com/t1nkr/releasecache/pkg/integrations"
	"github.com/t1nkr/releasecache/pkg/integrations/github"
	"github.com/t1nkr/releasecache/pkg/repository"
	"github.com/t1nkr/releasecache/pkg/storage"
	"github.com/t1nkr/releasecache/pkg/updatecheck"
)

// retryDelay is the pause between attempts after a transport failure.
const retryDelay = 500 * time.Millisecond

// app bundles the components built from one configuration.
type app struct {
	cfg      *config.Config
	backend  storage.Backend
	registry *repository.Registry
	store    *repository.Store
	client   *github.ReleaseClient
	checker  *updatecheck.Checker
}

// openApp loads the config and wires storage, registry, store, GitHub client
// and checker. The caller must Close the result.
func (c *CLI) openApp(ctx context.Context) (*app, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return buildApp(ctx, cfg, c.Logger)
}

func buildApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*app, error) {
	backend, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	registrySource, err := storage.NewFileBackend(cfg.Registry.Path)
	if err != nil {
		backend.Close()
		return nil, err
	}
	registry := repository.NewRegistry(registrySource, logger)
	store := repository.NewStore(backend, registry, logger,
		repository.WithDefaultFrequency(cfg.Checks.DefaultFrequencyDays))

	client := github.NewReleaseClient(github.CredentialsFromEnv(), cfg.GitHub.Timeout.Duration,
		integrations.WithRetries(cfg.GitHub.Retries, retryDelay))
	logger.Debug("github client ready", "auth", client.Credentials().Mode(), "timeout", cfg.GitHub.Timeout.Duration)

	checker := updatecheck.New(registry, store, client, cfg.Links(), logger,
		updatecheck.WithForceDisabled(cfg.Checks.DisableForce))

	return &app{
		cfg:      cfg,
		backend:  backend,
		registry: registry,
		store:    store,
		client:   client,
		checker:  checker,
	}, nil
}

// openBackend creates the storage backend selected by cfg.Backend.
func openBackend(ctx context.Context, cfg config.Storage) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return storage.NewRedisBackend(ctx, storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
	case config.BackendMongo:
		return storage.NewMongoBackend(ctx, storage.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			ID:         cfg.Mongo.ID,
		})
	case config.BackendNone:
		return storage.NewNullBackend(), nil
	default:
		return storage.NewFileBackend(cfg.Path)
	}
}

// Close releases the storage backend.
func (a *app) Close() error {
	return a.backend.Close()
}
