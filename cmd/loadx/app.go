package main

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/loadx/internal/config"
	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/locale"
	"alcyxob/loadx/internal/logging"
	"alcyxob/loadx/internal/repository"
	"alcyxob/loadx/internal/repository/bolt"
	"alcyxob/loadx/internal/repository/memory"
	"alcyxob/loadx/internal/repository/mongo"
	"alcyxob/loadx/internal/repository/redis"
	"alcyxob/loadx/internal/service"
	"alcyxob/loadx/internal/storage"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// app is everything one command invocation needs.
type app struct {
	cfg       config.Config
	formatter *locale.Formatter
	repos     *repository.Repositories

	auth      service.AuthService
	coach     service.CoachService
	exercises service.ExerciseService
	archive   service.ArchiveService
	guided    service.GuidedService

	closers []func() error
}

func openApp(c *cli.Context) (*app, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})

	formatter, err := locale.NewFormatter(cfg.Locale.Timezone)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, formatter: formatter}
	ctx := c.Context

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.repos, err = repository.Open(ctx, store)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open repositories: %w", err)
	}

	photos, err := newPhotoEncoder(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := []service.Option{service.WithFormatter(formatter)}
	a.auth = service.NewAuthService(a.repos.Accounts, photos, service.NewSession(), opts...)
	a.coach = service.NewCoachService(a.repos.Accounts, a.repos.Rosters)
	a.exercises = service.NewExerciseService(a.repos.Logs, opts...)
	a.archive = service.NewArchiveService(a.repos.Logs, a.repos.History, opts...)
	a.guided = service.NewGuidedService(a.repos.Accounts, a.repos.Guided, opts...)

	log.WithField("backend", cfg.Storage.Backend).Debug("application ready")
	return a, nil
}

func (a *app) openStore(ctx context.Context) (repository.BlobStore, error) {
	cfg := a.cfg
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewBlobStore(), nil

	case config.BackendBolt:
		store, err := bolt.Open(cfg.Storage.Path, cfg.Storage.KeyPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil

	case config.BackendMongo:
		client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		a.closers = append(a.closers, func() error { return mongo.DisconnectDB(client) })
		return mongo.NewMongoBlobStore(client.Database(cfg.Database.Name), cfg.Storage.KeyPrefix), nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		prefix := cfg.Storage.KeyPrefix
		if prefix == "" {
			prefix = redis.DefaultKeyPrefix
		}
		return redis.NewBlobStore(client, prefix), nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

func newPhotoEncoder(ctx context.Context, cfg config.Config) (storage.PhotoEncoder, error) {
	if cfg.Photo.Encoder == config.EncoderS3 {
		return storage.NewS3PhotoStorage(ctx, cfg.S3, cfg.Photo.MaxBytes)
	}
	return storage.NewDataURLEncoder(cfg.Photo.MaxBytes), nil
}

// Close releases the storage connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Errorf("failed to close storage: %s", err)
		}
	}
	a.closers = nil
}

// signIn logs in with the global --email and --password flags.
func (a *app) signIn(c *cli.Context) (*domain.Account, error) {
	email, password := c.String("email"), c.String("password")
	if email == "" || password == "" {
		return nil, errors.New("--email and --password are required for this command")
	}
	return a.auth.Login(c.Context, email, password)
}

// withApp opens the application around a command action.
func withApp(fn func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := openApp(c)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(c, a)
	}
}

// withAccount is withApp for commands acting as a signed-in account.
func withAccount(fn func(c *cli.Context, a *app, account *domain.Account) error) cli.ActionFunc {
	return withApp(func(c *cli.Context, a *app) error {
		account, err := a.signIn(c)
		if err != nil {
			return err
		}
		return fn(c, a, account)
	})
}
