package cmd

import (
	"fmt"
	"io"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/mistakes"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/quiz"
	"github.com/abhisek/mathdrill/internal/store"
)

// env holds everything a command opens and must release.
type env struct {
	cfg    config.Config
	store  *store.Store
	logger *clog.Logger
	logs   io.Closer
}

// loadConfig resolves the configuration: defaults, the config file, the
// environment, then persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, nil
}

// openEnv loads the config, opens the log file and the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, logs, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		logs.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", cfg.DBPath)
	return &env{cfg: cfg, store: st, logger: logger, logs: logs}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("close store", "err", err)
	}
	e.logs.Close()
}

func (e *env) mistakes() *mistakes.Repo {
	return mistakes.NewRepo(e.store.KV(), e.logger)
}

func (e *env) deps() quiz.Deps {
	return quiz.Deps{
		Mistakes:  e.mistakes(),
		History:   e.store.SessionRepo(),
		Generator: problemgen.New(nil),
		Logger:    e.logger,
		Defaults:  e.cfg.SessionDefaults(),
	}
}

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-nil start builds the screen shown above home at launch.
func runApp(cmd *cobra.Command, start func(quiz.Deps) screen.Screen) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("starting", "version", version)
	return app.Run(app.Options{Deps: e.deps(), Start: start})
}
