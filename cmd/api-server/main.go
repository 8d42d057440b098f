package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/protomem/todoit/internal/database"
	"github.com/protomem/todoit/internal/env"
	"github.com/protomem/todoit/internal/version"
)

var (
	_cfgFile     = flag.String("cfg", "", "path to config file")
	_showVersion = flag.Bool("version", false, "display version and exit")

	_logLevel = new(slog.LevelVar)
)

func main() {
	flag.Parse()

	if *_showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: _logLevel}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

type config struct {
	httpHost string
	httpPort int
	logLevel string
	db       database.Config
}

type application struct {
	config config
	db     *database.DB
	logger *slog.Logger
	wg     sync.WaitGroup
}

func loadConfig() (config, error) {
	var cfg config

	if *_cfgFile != "" {
		err := env.Load(*_cfgFile)
		if err != nil {
			return config{}, err
		}
	}

	cfg.httpHost = env.GetString("HTTP_HOST", "localhost")
	cfg.httpPort = env.GetInt("HTTP_PORT", 8080)
	cfg.logLevel = env.GetString("LOG_LEVEL", "debug")
	cfg.db.URL = env.GetString("DB_URL", database.DefaultURL)
	cfg.db.User = env.GetString("DB_USER", database.DefaultUser)
	cfg.db.Password = env.GetString("DB_PASSWORD", database.DefaultPassword)

	return cfg, nil
}

func run(logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_logLevel.Set(parseLogLevel(cfg.logLevel))

	db, err := database.New(context.Background(), logger, cfg.db)
	if err != nil {
		return err
	}
	defer db.Close()

	app := &application{
		config: cfg,
		db:     db,
		logger: logger,
	}

	return app.serveHTTP()
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelDebug
	}
	return level
}
