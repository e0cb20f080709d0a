package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/botshop/internal/config"
	"github.com/fsdevblog/botshop/internal/repository/pgrepo"
	"github.com/fsdevblog/botshop/internal/service"
	"github.com/fsdevblog/botshop/internal/service/initdata"
	"github.com/fsdevblog/botshop/internal/transport/api"
	"github.com/fsdevblog/botshop/internal/transport/notify"
	"github.com/fsdevblog/botshop/internal/transport/notify/client"
	"github.com/fsdevblog/botshop/pkg/uow"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
	notifyWorkers     = 2
	notifyQueueSize   = 100
)

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

// Run поднимает приложение и блокируется до сигнала завершения или ошибки сервера.
// При штатной остановке возвращает context.Canceled.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork := uow.NewUnitOfWork(conn)
	if regErr := pgrepo.RegisterRepositories(unitOfWork); regErr != nil {
		return fmt.Errorf("app run: %s", regErr.Error())
	}

	var (
		dispatcher *notify.Dispatcher
		notifier   service.OrderNotifier
	)
	if a.Config.ManagerChatID != 0 {
		tgClient := client.New(a.Config.TelegramBotToken, a.Config.TelegramAPIEndpoint)
		dispatcher = notify.New(tgClient, a.Config.ManagerChatID, a.Logger).
			SetWorkers(notifyWorkers).
			SetQueueSize(notifyQueueSize)
		notifier = dispatcher
	} else {
		a.Logger.Warn("manager chat id is not set, order notifications are disabled")
	}

	services, sErr := service.Factory(unitOfWork, initdata.NewVerifier(a.Config.TelegramBotToken), notifier)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:         a.Logger,
		AuthService:    services.AuthService,
		OrderService:   services.OrderService,
		CatalogService: services.CatalogService,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(notifyCtx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.Logger.WithError(err).Error("http server shutdown")
		}
		return gCtx.Err() //nolint:wrapcheck
	})

	if dispatcher != nil {
		g.Go(func() error {
			dispatcher.Run(gCtx)
			return nil
		})
	}

	return g.Wait() //nolint:wrapcheck
}
