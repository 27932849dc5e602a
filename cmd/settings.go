package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flightify/flightify/internal/catalog"
	"github.com/flightify/flightify/internal/config"
	"github.com/flightify/flightify/internal/logging"
	"github.com/flightify/flightify/internal/session"
)

// loadSettings reads the environment and applies any persistent flags on top.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"catalog":   &cfg.CatalogPath,
		"bank":      &cfg.BankStrategy,
		"log-level": &cfg.LogLevel,
		"log-file":  &cfg.LogFile,
	}
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}
	return cfg, nil
}

// newLogger builds the process logger. The TUI owns the terminal, so it
// always logs to a file.
func newLogger(cfg config.Config, tui bool) (*zap.SugaredLogger, error) {
	file := cfg.LogFile
	if tui && file == "" {
		var err error
		if file, err = config.DefaultLogFile(); err != nil {
			return nil, err
		}
	}

	l, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		File:   file,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l.Sugar(), nil
}

// loadCatalog returns the catalog file at path, or the built-in aircraft
// when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// newEngine builds a session engine from cfg. Extra options win over cfg.
func newEngine(cfg config.Config, log *zap.SugaredLogger, opts ...session.Option) (*session.Engine, error) {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	strategy, err := session.ParseBankStrategy(cfg.BankStrategy)
	if err != nil {
		return nil, err
	}

	base := []session.Option{
		session.WithBankStrategy(strategy),
		session.WithLogger(log.Named("session")),
	}
	return session.New(cat, append(base, opts...)...), nil
}
