package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aescanero/dago-scaffold/internal/config"
	"github.com/aescanero/dago-scaffold/internal/console"
	"github.com/aescanero/dago-scaffold/internal/events"
	"github.com/aescanero/dago-scaffold/internal/generate"
	"github.com/aescanero/dago-scaffold/internal/persist"
	"github.com/aescanero/dago-scaffold/internal/prompt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

const usage = "usage: scaffold <template-dir> <destination>"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	out := console.New(os.Stdout)

	if len(args) == 1 && (args[0] == "-v" || args[0] == "--version") {
		fmt.Printf("scaffold %s (%s)\n", Version, BuildTime)
		return 0
	}
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}
	src, dest := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting scaffold",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)
	logger.Debug("configuration loaded", zap.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var client *redis.Client
	if cfg.UsesRedis() {
		client, err = connectRedis(ctx, cfg)
		if err != nil {
			logger.Error("failed to connect to redis", zap.Error(err))
			out.Error(err.Error())
			return 1
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error("failed to close redis connection", zap.Error(err))
			}
		}()
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.EventStream != "" {
		publisher = events.NewRedisPublisher(client, cfg.EventStream, logger)
	}

	g := generate.New(generate.Config{
		Asker:       prompt.NewTerminal(os.Stdin, os.Stdout),
		Stores:      stores(cfg, client, logger),
		Publisher:   publisher,
		Console:     out,
		Logger:      logger,
		NoEscape:    cfg.NoEscape,
		Concurrency: cfg.RenderConcurrency,
	})

	if err := g.Generate(ctx, projectName(dest), src, dest); err != nil {
		out.Error(err.Error())
		return 1
	}
	return 0
}

// stores picks the save backend for a template directory
func stores(cfg *config.Config, client *redis.Client, logger *zap.Logger) generate.StoreFactory {
	if cfg.SaveBackend != config.BackendRedis {
		return generate.FileStores(cfg.SaveFile)
	}
	return func(dir string) persist.Store {
		return persist.NewRedisStore(client, saveID(dir), cfg.SaveTTL, logger)
	}
}

// projectName is the base name of the resolved destination, so "." names
// the project after the working directory
func projectName(dest string) string {
	if abs, err := filepath.Abs(dest); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dest)
}

// saveID identifies a template by its absolute path
func saveID(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(filepath.Clean(dir))
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.RedisTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s is unreachable: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// initLogger initializes the logger. Logs go to stderr so they never mix
// with the interactive prompts on stdout.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
