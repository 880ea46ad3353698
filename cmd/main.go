package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee_project/internal/config"
	"employee_project/internal/middleware"
	"employee_project/internal/repository"
	"employee_project/internal/session"
	grpcserver "employee_project/internal/transport/grpc"
	"employee_project/internal/transport/graphql"
	"employee_project/internal/transport/httpserver"
	"employee_project/internal/utils"
	"employee_project/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "employee-api",
		Short:         "GraphQL API for users and employees",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the GraphQL HTTP server and gRPC health endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(*cobra.Command, []string) error {
			return runMigrate(envFile)
		},
	})
	return root
}

func setup(envFile string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.InitLogger(logger.Options{File: cfg.LogFile, Level: cfg.LogLevel}); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := repository.Open(cfg.DSN(), logger.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database %s: %w", cfg.RedactedDSN(), err)
	}
	if err := repository.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}

func runMigrate(envFile string) error {
	_, _, err := setup(envFile)
	if err != nil {
		return err
	}
	logger.Logger.Info("Database migrated")
	return logger.Logger.Sync()
}

func runServe(parent context.Context, envFile string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, db, err := setup(envFile)
	if err != nil {
		return err
	}
	defer logger.Logger.Sync()

	if cfg.OTLPEndpoint != "" {
		tp, err := middleware.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Logger.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	checkers := map[string]grpcserver.Checker{
		"database": func(ctx context.Context) error { return repository.Ping(ctx, db) },
	}

	var (
		sessions session.Store
		cache    middleware.Cache
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis %s: %w", cfg.RedisAddr, err)
		}
		redisSessions := session.NewRedisStore(client, session.KeyPrefix)
		sessions = redisSessions
		cache = middleware.NewRedisCache(client)
		checkers["sessions"] = redisSessions.Ping
		logger.Logger.Info("Using Redis for sessions and idempotency", zap.String("addr", cfg.RedisAddr))
	} else {
		sqlSessions := repository.NewSessionRepository(db)
		sessions = sqlSessions
		checkers["sessions"] = sqlSessions.Ping
		logger.Logger.Info("REDIS_ADDR not set, storing sessions in the database; idempotency disabled")
	}

	tokens := utils.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL)
	schema, err := graphql.NewSchema(&graphql.Resolver{
		Users:      repository.NewUserRepository(db),
		Employees:  repository.NewEmployeeRepository(db),
		Passwords:  utils.NewPasswordHasher(cfg.BcryptCost),
		Tokens:     tokens,
		Sessions:   sessions,
		SessionTTL: cfg.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpSrv := httpserver.NewServer(cfg.HTTPAddr, httpserver.NewHandler(httpserver.Options{
		Schema:         schema,
		Tokens:         tokens,
		Sessions:       sessions,
		Idempotency:    cache,
		IdempotencyTTL: cfg.IdempotencyTTL,
		CORSOrigins:    cfg.CORSOrigins,
		Registry:       registry,
	}))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}
	grpcSrv := grpcserver.NewServer(grpcserver.NewHealthServer(checkers))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Logger.Info("Health server listening", zap.String("addr", lis.Addr().String()))
		return grpcSrv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		grpcSrv.GracefulStop()
		return nil
	})
	g.Go(func() error {
		logger.Logger.Info("GraphQL server listening", zap.String("addr", cfg.HTTPAddr))
		return httpserver.Serve(gctx, httpSrv)
	})

	if err := g.Wait(); err != nil {
		logger.Logger.Error("Server stopped", zap.Error(err))
		return err
	}
	logger.Logger.Info("Server stopped")
	return nil
}
