package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/classroom-extract/internal/apperrors"
	"github.com/noah-isme/classroom-extract/internal/classroom"
	"github.com/noah-isme/classroom-extract/internal/config"
	"github.com/noah-isme/classroom-extract/internal/database"
	"github.com/noah-isme/classroom-extract/internal/observability"
	"github.com/noah-isme/classroom-extract/internal/repository"
	"github.com/noah-isme/classroom-extract/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "classroom-extract",
		Short:         "Mirror Google Classroom courses into a local database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the INI configuration file")
	return cmd
}

func run(ctx context.Context, configPath string) (err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return err
	}

	logger := newLogger(cfg.LogLevel)
	defer func() {
		if recovered := recover(); recovered != nil {
			err = apperrors.New(apperrors.KindUnexpected, "extract", fmt.Errorf("panic: %v", recovered))
		}
		if err != nil {
			logger.Error().Err(err).Str("kind", string(apperrors.KindOf(err))).Msg("extraction failed")
		}
	}()

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer natsConn.Close()
	}

	classroomClient, err := classroom.NewService(ctx, classroom.Credentials{
		ServiceAccountFile: cfg.ServiceAccountFile,
		AdminUserEmail:     cfg.AdminUserEmail,
	})
	if err != nil {
		return err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	extractor := classroom.NewExtractor(classroom.NewGoogleLister(classroomClient), validate, logger)

	var locker service.RunLocker
	if redisClient != nil {
		locker = service.NewRedisRunLock(redisClient, "classroom:run-lock:"+cfg.DatabasePath, cfg.LockTTL)
	}

	syncService := service.NewSyncService(service.SyncDependencies{
		Source: extractor,
		Store:  repository.NewStore(db),
		Runs:   repository.NewSyncRunRepository(db),
		Locker: locker,
		Events: service.NewEventPublisher(redisClient, natsConn, cfg.EventChannel),
	}, cfg.MaskingLevel, logger)

	observability.RegisterMetrics()
	report, runErr := syncService.Run(ctx)

	if report.RunID != "" {
		if err := service.WriteReport(os.Stdout, report); err != nil {
			logger.Warn().Err(err).Msg("failed to write report")
		}
	}
	if err := observability.Push(context.WithoutCancel(ctx), cfg.PushgatewayURL, report.RunID); err != nil {
		logger.Warn().Err(err).Msg("failed to push metrics")
	}

	return runErr
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(parsed).With().Timestamp().Logger()
}
