package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/food-delivery/internal/cache"
	"github.com/fsdevblog/food-delivery/internal/config"
	"github.com/fsdevblog/food-delivery/internal/events"
	"github.com/fsdevblog/food-delivery/internal/logger"
	"github.com/fsdevblog/food-delivery/internal/metrics"
	"github.com/fsdevblog/food-delivery/internal/repository/pgrepo"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/fsdevblog/food-delivery/internal/service/psswd"
	"github.com/fsdevblog/food-delivery/internal/transport/api"
	"github.com/fsdevblog/food-delivery/internal/worker"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

type eventPublisher interface {
	service.EventPublisher
	Close() error
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := logger.Component(a.Logger, "app")
	l.WithFields(logrus.Fields{
		"address":    a.Config.RunAddress,
		"api_prefix": a.Config.APIPrefix,
		"redis":      a.Config.RedisAddr,
		"events":     a.Config.RabbitURL != "",
	}).Info("Starting app")

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := InitUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	redisClient, redisErr := cache.NewClient(notifyCtx, cache.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	if redisErr != nil {
		return fmt.Errorf("app run: %s", redisErr.Error())
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			l.WithError(err).Warn("failed to close redis client")
		}
	}()

	m := metrics.New()

	pub, pubErr := a.publisher(notifyCtx)
	if pubErr != nil {
		return fmt.Errorf("app run: %s", pubErr.Error())
	}
	instrumented := events.NewInstrumented(pub, m)
	defer func() {
		if err := instrumented.Close(); err != nil {
			l.WithError(err).Warn("failed to close event publisher")
		}
	}()

	services, sErr := service.Factory(service.FactoryArgs{
		UOW:            unitOfWork,
		Hasher:         psswd.New(bcrypt.DefaultCost),
		Sessions:       cache.NewSessionStore(redisClient, a.Config.SessionTTL),
		BalanceCache:   cache.NewBalanceCache(redisClient, a.Config.SessionTTL),
		Publisher:      instrumented,
		JWTSecret:      []byte(a.Config.JWTSecret),
		OpeningBalance: a.Config.OpeningBalance,
		Logger:         logger.Component(a.Logger, "service"),
	})
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router := api.New(api.RouterArgs{
		Logger:         a.Logger,
		UserService:    services.UserService,
		OrderService:   services.OrderService,
		CatalogService: services.CatalogService,
		Metrics:        m,
		APIPrefix:      a.Config.APIPrefix,
	})

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := srv.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	expirer := worker.NewPaymentExpirer(
		services.OrderService,
		m,
		a.Config.PaymentTTL,
		a.Config.ExpireInterval,
		a.Logger,
	).SetBatch(uint(a.Config.ExpireBatch)) //nolint:gosec

	go expirer.Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.WithError(err).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return fmt.Errorf("app run: %s", err.Error())
	}
}

// publisher без RABBITMQ_URL события только логируются.
func (a *App) publisher(ctx context.Context) (eventPublisher, error) {
	if a.Config.RabbitURL == "" {
		return events.NewNoopPublisher(a.Logger), nil
	}
	pub, err := events.Dial(ctx, a.Config.RabbitURL, a.Logger)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return pub, nil
}

// InitUOW регистрирует все репозитории приложения.
func InitUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.BalanceRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewBalanceRepository(dbtx)
		},
		repoargs.PaymentRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewPaymentRepository(dbtx)
		},
		repoargs.CountryRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewCountryRepository(dbtx)
		},
		repoargs.LocationRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewLocationRepository(dbtx)
		},
		repoargs.RestaurantRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewRestaurantRepository(dbtx)
		},
		repoargs.MenuRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewMenuRepository(dbtx)
		},
		repoargs.FoodRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewFoodRepository(dbtx)
		},
		repoargs.CascadeRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewCascadeRepository(dbtx)
		},
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW %s: %s", name, regErr.Error())
		}
	}

	return unitOfWork, nil
}
