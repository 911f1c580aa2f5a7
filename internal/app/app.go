package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/handoff"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/infrastructure/notify"
	"github.com/DRSN-tech/storefront/internal/infrastructure/seed"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	topicsTimeout   = 5 * time.Second
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	sessions *usecase.SessionRegistry
	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.closer.Close(ctx); cerr != nil {
			log.Warnf("cleanup after failed init: %v", cerr)
		}
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	catalog, err := seed.Load()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	storage, err := a.initStorage()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	var (
		publisher usecase.CatalogEventPublisher = usecase.NopCatalogEventPublisher
		target    usecase.OrderHandoff          = handoff.NewLinkTarget(a.logger)
	)
	if a.cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
		if err := producer.EnsureTopics(topicsTimeout); err != nil {
			a.logger.Warnf("kafka topics are not ready, events may be lost: %v", err)
		}
		a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

		publisher = producer
		target = handoff.NewFanout(a.logger, target, producer)
	}

	store := usecase.NewCatalogStore(storage, catalog, publisher, a.logger, a.cfg.Storage.Timeout)
	admin := usecase.NewCatalogAdmin(store, catalog, a.logger)
	checkout := usecase.NewCheckout(target, a.cfg.Checkout.LinkBase, a.cfg.Checkout.CurrencySign, a.logger)
	a.sessions = usecase.NewSessionRegistry(
		a.cfg.Session.IdleTTL,
		a.cfg.Session.NotificationsCap,
		notify.NewLogNotifier(a.logger),
		a.logger,
	)

	checkCtx, checkCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer checkCancel()
	if !store.IsStorageAvailable(checkCtx) {
		a.logger.Warnf("catalog storage %q is not available, serving seed data", a.cfg.Storage.Backend)
	}

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(v1Http.UseCases{
		Catalog:  store,
		Admin:    admin,
		Sessions: a.sessions,
		Checkout: checkout,
	}, a.cfg.Http.SwaggerURL)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	if a.cfg.Grpc.Enabled {
		a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
		a.grpcSrv.RegisterServices(store)
	}

	return nil
}

// initStorage выбирает бэкенд долговременного хранилища каталога.
func (a *App) initStorage() (usecase.KVStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	switch a.cfg.Storage.Backend {
	case config.StorageMemory:
		a.logger.Warnf("using in-memory catalog storage, changes are lost on restart")
		return memory.NewStorageRepo(), nil

	case config.StorageRedis:
		redisClient := clients.NewRedisClient(a.cfg.Redis)
		a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
		if err := redisClient.Ping(ctx); err != nil {
			a.logger.Errorf(err, "failed to connect to redis")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		return redis.NewStorageRepo(redisClient, a.cfg.Redis), nil

	case config.StoragePostgres:
		db, err := initPGDB(ctx, a.logger, a.cfg)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.AddSimple("postgres", db.Close)
		return pgdb.NewStorageRepo(db.Pool), nil

	case config.StorageMinio:
		minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
		if err != nil {
			a.logger.Errorf(err, "failed to initialize minio client")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
			a.logger.Errorf(err, "failed to initialize MinIO bucket")
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		return s3Repo.NewStorageRepo(minioClient, a.cfg.Minio), nil

	default:
		return nil, e.Wrap(a.cfg.Storage.Backend, e.ErrUnknownStorageBackend)
	}
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go a.sessions.RunSweeper(sweepCtx, a.cfg.Session.SweepInterval)
	a.closer.AddSimple("session sweeper", stopSweeper)

	errCh := make(chan error, 2)

	if a.grpcSrv != nil {
		a.closer.Add("gRPC server", a.grpcSrv.Stop)
		go func() {
			a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
			if err := a.grpcSrv.Start(); err != nil {
				a.logger.Errorf(err, "gRPC server failed")
				errCh <- err
			}
		}()
	}

	a.closer.Add("HTTP server", a.httpSrv.Stop)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
