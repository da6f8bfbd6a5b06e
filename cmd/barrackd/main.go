package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Micenas/R1EMU/internal/barrack"
	"github.com/Micenas/R1EMU/internal/config"
	"github.com/Micenas/R1EMU/internal/data"
	gonet "github.com/Micenas/R1EMU/internal/net"
	"github.com/Micenas/R1EMU/internal/persist"
	"github.com/Micenas/R1EMU/internal/rng"
	"github.com/Micenas/R1EMU/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/barrack.toml"
	if p := os.Getenv("R1EMU_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("barrack server starting",
		zap.String("name", cfg.Server.Name),
		zap.Uint16("routerId", cfg.Server.RouterID),
	)

	// 3. Connect to PostgreSQL and run migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("database ready")

	// 4. Connect to Redis session store
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	sessions := store.NewSessionStore(rdb)
	if err := sessions.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	log.Info("session store ready", zap.String("addr", cfg.Redis.Addr))

	// 5. Load zone directory
	var zones *data.ZoneTable
	if cfg.Barrack.ZoneTable != "" {
		zones, err = data.LoadZoneTable(cfg.Barrack.ZoneTable)
		if err != nil {
			return fmt.Errorf("load zone table: %w", err)
		}
	} else {
		zones = data.DefaultZoneTable()
	}
	log.Info("zone directory loaded", zap.Int("zones", zones.Len()))

	// 6. Build handler dependencies and dispatcher
	deps := &barrack.Deps{
		Accounts:   persist.NewAccountRepo(db),
		Commanders: persist.NewCommanderRepo(db),
		Sessions:   sessions,
		Zones:      zones,
		Rand:       rng.New(uint64(time.Now().UnixNano())),
		Log:        log,
	}
	dispatcher := barrack.NewDispatcher(deps)

	// 7. Start network server
	srv, err := gonet.NewServer(cfg.Network, cfg.Server.RouterID, dispatcher, sessions, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go srv.Serve()
	log.Info("listening", zap.String("addr", srv.Addr().String()))

	// 8. Wait for shutdown signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownCh
	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		log.Warn("shutdown timed out", zap.Error(err))
	}
	log.Info("server stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
