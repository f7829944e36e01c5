// Package cmd provides the owlreasoner command line.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adalundhe/owlreasoner/core/config"
	"github.com/adalundhe/owlreasoner/core/knowledge/inference"
	"github.com/adalundhe/owlreasoner/core/storage"
)

// =============================================================================
// Global Flags
// =============================================================================

var (
	rootProject   string
	rootHome      string
	rootLogLevel  string
	rootLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "owlreasoner",
	Short: "owlreasoner - SWRL and OWL 2 rule reasoning",
	Long: `owlreasoner runs OWL 2, SKOS, OWL-Time and GeoSPARQL rules and
user-defined SWRL rules over ontologies, either deriving new axioms or
reporting inconsistencies.

Configuration is read from .owlreasoner/config.yaml in the project, the
user configuration directory, .owlreasoner/local/config.yaml and
OWLREASONER_* environment variables, in that order.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootProject, "project", ".", "Project root holding .owlreasoner/")
	rootCmd.PersistentFlags().StringVar(&rootHome, "home", "", "Base directory for config and data (default: XDG directories)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "", "Log format: text, json")
}

func Execute() error {
	return rootCmd.Execute()
}

// =============================================================================
// Application Environment
// =============================================================================

// env is what every command needs: the resolved directories, the loaded
// configuration with flag overrides applied, and the logger built from it.
type env struct {
	dirs        *storage.Dirs
	manager     *config.Manager
	projectRoot string
	logger      *slog.Logger
}

func resolveDirs() (*storage.Dirs, error) {
	if rootHome == "" {
		return storage.ResolveDirs()
	}
	return &storage.Dirs{
		Config: filepath.Join(rootHome, "config"),
		Data:   filepath.Join(rootHome, "data"),
		Cache:  filepath.Join(rootHome, "cache"),
		State:  filepath.Join(rootHome, "state"),
	}, nil
}

// newEnv loads the configuration and builds the logger. Log output goes to
// the command's error stream so results on stdout stay parseable.
func newEnv(cmd *cobra.Command) (*env, error) {
	dirs, err := resolveDirs()
	if err != nil {
		return nil, fmt.Errorf("resolve directories: %w", err)
	}

	root, err := filepath.Abs(rootProject)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	manager := config.NewManager(dirs, config.WithProjectRoot(root))
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := manager.Get().Overlay(&config.Config{
		Logging: config.LoggingConfig{Level: rootLogLevel, Format: rootLogFormat},
	})
	logger, err := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	return &env{
		dirs:        dirs,
		manager:     manager,
		projectRoot: root,
		logger:      logger,
	}, nil
}

// ruleDBPath returns the configured rule store or the per-project default.
func (e *env) ruleDBPath(cfg *config.Config) string {
	if cfg.Store.RuleDB != "" {
		return cfg.Store.RuleDB
	}
	return e.dirs.RuleStorePath(e.projectRoot)
}

// inferenceLogPath returns the configured inference log. "default" selects
// the per-project location and an empty value disables the log.
func (e *env) inferenceLogPath(cfg *config.Config) string {
	if cfg.Store.InferenceLog == "default" {
		return e.dirs.InferenceLogPath(e.projectRoot)
	}
	return cfg.Store.InferenceLog
}

// openRuleStore opens the rule store database. The caller closes db.
func (e *env) openRuleStore(ctx context.Context, cfg *config.Config) (*inference.RuleStore, *sql.DB, error) {
	path := e.ruleDBPath(cfg)
	db, err := inference.OpenDB(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rule store %s: %w", path, err)
	}
	e.logger.Debug("rule store opened", "path", path)
	return inference.NewRuleStore(db), db, nil
}

// ruleStoreExists reports whether the rule store has been created. Commands
// that only read rules skip a missing store instead of creating one.
func (e *env) ruleStoreExists(cfg *config.Config) bool {
	path := e.ruleDBPath(cfg)
	if path == ":memory:" {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}
