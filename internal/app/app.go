package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/knight-arena/internal/config"
	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/session"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/domain/userknight"
	cacherepo "github.com/riskibarqy/knight-arena/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/knight-arena/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/knight-arena/internal/infrastructure/repository/postgres"
	sessionstore "github.com/riskibarqy/knight-arena/internal/infrastructure/session"
	"github.com/riskibarqy/knight-arena/internal/infrastructure/storage"
	"github.com/riskibarqy/knight-arena/internal/interfaces/httpapi"
	"github.com/riskibarqy/knight-arena/internal/observability"
	"github.com/riskibarqy/knight-arena/internal/platform/cache"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
	"github.com/riskibarqy/knight-arena/internal/platform/resilience"
	"github.com/riskibarqy/knight-arena/internal/usecase"
)

// App is the assembled HTTP server plus the resources it owns.
type App struct {
	Server  *http.Server
	closers []func() error
}

// Close releases database and redis connections.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type repositories struct {
	accounts    user.Repository
	profiles    profile.Repository
	knights     knight.Repository
	stigmas     stigma.Repository
	battles     battle.Repository
	comments    comment.Repository
	reactions   reaction.Repository
	userKnights userknight.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	fail := func(err error) (*App, error) {
		_ = app.Close()
		return nil, err
	}

	repos, err := app.openRepositories(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	if cfg.CacheEnabled {
		repos = withCache(repos, cache.NewStore(cfg.CacheTTL))
	}

	sessions, err := app.openSessionStore(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	images, err := newImageStorage(cfg, logger)
	if err != nil {
		return fail(err)
	}

	idGen := id.NewUUIDGenerator()
	auth := usecase.NewAuthService(repos.accounts, repos.profiles, sessions, idGen, usecase.AuthConfig{
		JWTSecret:  cfg.AuthJWTSecret,
		Issuer:     cfg.ServiceName,
		TokenTTL:   cfg.AuthTokenTTL,
		BcryptCost: cfg.AuthBcryptCost,
	}, logger.Named("auth"))

	if cfg.AdminEmail != "" {
		if err := auth.BootstrapAdmin(ctx, usecase.SignUpInput{
			Email:       cfg.AdminEmail,
			Password:    cfg.AdminPassword,
			DisplayName: cfg.AdminDisplayName,
		}); err != nil {
			return fail(fmt.Errorf("bootstrap admin: %w", err))
		}
	}

	profiles := usecase.NewProfileService(repos.profiles, repos.knights, repos.battles, logger.Named("profile"))
	handler := httpapi.NewHandler(httpapi.Services{
		Auth:        auth,
		Knights:     usecase.NewKnightService(repos.knights, repos.battles, images, idGen, cfg.ImportWorkers, logger.Named("knight")),
		Stigmas:     usecase.NewStigmaService(repos.stigmas, idGen),
		Battles:     usecase.NewBattleService(repos.battles, repos.knights, repos.stigmas, repos.comments, repos.reactions, repos.profiles, idGen, logger.Named("battle")),
		Comments:    usecase.NewCommentService(repos.comments, repos.battles, repos.profiles, idGen),
		Reactions:   usecase.NewReactionService(repos.reactions, repos.battles, idGen),
		Profiles:    profiles,
		UserKnights: usecase.NewUserKnightService(repos.userKnights, repos.knights, repos.profiles),
		Admin:       usecase.NewAdminService(repos.accounts, repos.profiles, sessions, logger.Named("admin")),
		Home:        usecase.NewHomeService(repos.battles, repos.knights, repos.stigmas, repos.profiles),
	}, logger)

	routerCfg := httpapi.RouterConfig{
		Handler:            handler,
		Verifier:           auth,
		AdminChecker:       profiles,
		Logger:             logger.Named("http"),
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		metrics := observability.NewHTTPMetrics("knight_arena")
		routerCfg.Metrics = metrics
		routerCfg.MetricsHandler = metrics.Handler()
	}

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.RepositoryDriver == config.RepositoryMemory {
		logger.Warn("using in-memory repositories", "reason", "REPOSITORY_DRIVER=memory")
		store := memory.NewStore()
		return repositories{
			accounts:    memory.NewAccountRepository(store),
			profiles:    memory.NewProfileRepository(store),
			knights:     memory.NewKnightRepository(store, memory.SeedKnights()),
			stigmas:     memory.NewStigmaRepository(store, memory.SeedStigmas()),
			battles:     memory.NewBattleRepository(store),
			comments:    memory.NewCommentRepository(store),
			reactions:   memory.NewReactionRepository(store),
			userKnights: memory.NewUserKnightRepository(store),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	return repositories{
		accounts:    postgres.NewAccountRepository(db),
		profiles:    postgres.NewProfileRepository(db),
		knights:     postgres.NewKnightRepository(db),
		stigmas:     postgres.NewStigmaRepository(db),
		battles:     postgres.NewBattleRepository(db),
		comments:    postgres.NewCommentRepository(db),
		reactions:   postgres.NewReactionRepository(db),
		userKnights: postgres.NewUserKnightRepository(db),
	}, nil
}

func withCache(repos repositories, store *cache.Store) repositories {
	repos.accounts = cacherepo.NewAccountRepository(repos.accounts, store)
	repos.profiles = cacherepo.NewProfileRepository(repos.profiles, store)
	repos.knights = cacherepo.NewKnightRepository(repos.knights, store)
	repos.stigmas = cacherepo.NewStigmaRepository(repos.stigmas, store)
	return repos
}

func (a *App) openSessionStore(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return sessionstore.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a.closers = append(a.closers, client.Close)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return sessionstore.NewRedisStore(client), nil
}

func newImageStorage(cfg config.Config, logger *logging.Logger) (usecase.ImageStorage, error) {
	if !cfg.StorageEnabled {
		logger.Info("image storage disabled", "reason", "STORAGE_ENABLED=false")
		return nil, nil
	}

	s3, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:      cfg.StorageEndpoint,
		Region:        cfg.StorageRegion,
		Bucket:        cfg.StorageBucket,
		AccessKey:     cfg.StorageAccessKey,
		SecretKey:     cfg.StorageSecretKey,
		PublicBaseURL: cfg.StoragePublicBaseURL,
		DisableSSL:    cfg.StorageDisableSSL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StorageCircuitEnabled,
			FailureThreshold: cfg.StorageCircuitFailureCount,
			OpenTimeout:      cfg.StorageCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StorageCircuitHalfOpenMaxReq,
		},
	}, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("init image storage: %w", err)
	}
	return s3, nil
}
