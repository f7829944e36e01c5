package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/adalundhe/owlreasoner/core/storage"
)

// envPrefix prefixes every environment override.
const envPrefix = "OWLREASONER_"

// DefaultReloadDebounce is how long Watch waits for writes to settle.
const DefaultReloadDebounce = 100 * time.Millisecond

// ErrManagerClosed is returned by Watch after Close.
var ErrManagerClosed = errors.New("config manager closed")

// Manager holds the active configuration and reloads it from the layered
// YAML files and the environment.
type Manager struct {
	config      atomic.Pointer[Config]
	dirs        *storage.Dirs
	projectRoot string
	logger      *slog.Logger

	watchers  []func(*Config)
	watcherMu sync.RWMutex
	stopWatch chan struct{}
	watchOnce sync.Once
}

type Config struct {
	Reasoner  ReasonerConfig  `yaml:"reasoner"`
	Validator ValidatorConfig `yaml:"validator"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ReasonerConfig struct {
	// Rules are standard rule names or glob patterns, e.g. "owl2:*".
	Rules []string `yaml:"rules"`
	// SWRLRules are names or glob patterns of rules in the rule store.
	SWRLRules   []string `yaml:"swrl_rules"`
	Parallelism int      `yaml:"parallelism"`
	Merge       bool     `yaml:"merge"`
	CacheSize   int      `yaml:"cache_size"`
}

type ValidatorConfig struct {
	Rules     []string `yaml:"rules"`
	SWRLRules []string `yaml:"swrl_rules"`
}

type StoreConfig struct {
	// RuleDB is the SQLite rule store. Empty means the per-project default.
	RuleDB string `yaml:"rule_db"`
	// InferenceLog is the SQLite inference log. Empty disables it.
	InferenceLog string `yaml:"inference_log"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithProjectRoot sets the directory holding the .owlreasoner project
// configuration. The default is the working directory.
func WithProjectRoot(root string) Option {
	return func(m *Manager) { m.projectRoot = root }
}

// WithLogger sets the logger used by Watch.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewManager(dirs *storage.Dirs, opts ...Option) *Manager {
	m := &Manager{
		dirs:        dirs,
		projectRoot: ".",
		logger:      slog.Default(),
		stopWatch:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.config.Store(DefaultConfig())
	return m
}

func DefaultConfig() *Config {
	return &Config{
		Reasoner: ReasonerConfig{
			Rules:     []string{"owl2:*"},
			CacheSize: 1024,
		},
		Validator: ValidatorConfig{
			Rules: []string{"owl2:*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (m *Manager) Get() *Config {
	return m.config.Load()
}

// Load rebuilds the configuration from defaults, the project file, the
// user file, the local file and the environment, in that order, and
// notifies OnChange callbacks.
func (m *Manager) Load() error {
	cfg := DefaultConfig()

	for _, layer := range []struct {
		name string
		path string
	}{
		{"project", m.projectConfigPath()},
		{"user", m.userConfigPath()},
		{"local", m.localConfigPath()},
	} {
		if err := loadYAMLFile(layer.path, cfg); err != nil {
			return fmt.Errorf("%s config: %w", layer.name, err)
		}
	}

	applyEnvironment(cfg)

	m.config.Store(cfg)
	m.notifyWatchers(cfg)
	return nil
}

func (m *Manager) projectConfigPath() string {
	return storage.ResolveProjectDirs(m.projectRoot).Config
}

func (m *Manager) userConfigPath() string {
	return m.dirs.ConfigDir("config.yaml")
}

func (m *Manager) localConfigPath() string {
	return filepath.Join(storage.ResolveProjectDirs(m.projectRoot).Local, "config.yaml")
}

// Paths returns the configuration files in layering order.
func (m *Manager) Paths() []string {
	return []string{m.projectConfigPath(), m.userConfigPath(), m.localConfigPath()}
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvironment applies OWLREASONER_<SECTION>_<KEY> overrides. Values
// that do not parse are ignored.
func applyEnvironment(cfg *Config) {
	if v, ok := lookupEnv("REASONER_RULES"); ok {
		cfg.Reasoner.Rules = splitList(v)
	}
	if v, ok := lookupEnv("REASONER_SWRL_RULES"); ok {
		cfg.Reasoner.SWRLRules = splitList(v)
	}
	if v, ok := lookupEnv("REASONER_PARALLELISM"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Reasoner.Parallelism = n
		}
	}
	if v, ok := lookupEnv("REASONER_MERGE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Reasoner.Merge = b
		}
	}
	if v, ok := lookupEnv("REASONER_CACHE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Reasoner.CacheSize = n
		}
	}
	if v, ok := lookupEnv("VALIDATOR_RULES"); ok {
		cfg.Validator.Rules = splitList(v)
	}
	if v, ok := lookupEnv("VALIDATOR_SWRL_RULES"); ok {
		cfg.Validator.SWRLRules = splitList(v)
	}
	if v, ok := lookupEnv("STORE_RULE_DB"); ok {
		cfg.Store.RuleDB = v
	}
	if v, ok := lookupEnv("STORE_INFERENCE_LOG"); ok {
		cfg.Store.InferenceLog = v
	}
	if v, ok := lookupEnv("LOGGING_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookupEnv("LOGGING_FORMAT"); ok {
		cfg.Logging.Format = v
	}
}

func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	return v, v != ""
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (m *Manager) OnChange(fn func(*Config)) {
	m.watcherMu.Lock()
	m.watchers = append(m.watchers, fn)
	m.watcherMu.Unlock()
}

func (m *Manager) notifyWatchers(cfg *Config) {
	m.watcherMu.RLock()
	watchers := m.watchers
	m.watcherMu.RUnlock()

	for _, fn := range watchers {
		fn(cfg)
	}
}

func (m *Manager) Reload() error {
	return m.Load()
}

// Watch reloads the configuration whenever one of its files changes, until
// ctx is done or Close is called. Reload errors are logged and the previous
// configuration stays active.
func (m *Manager) Watch(ctx context.Context) error {
	select {
	case <-m.stopWatch:
		return ErrManagerClosed
	default:
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	files := make(map[string]bool)
	watched := make(map[string]bool)
	for _, path := range m.Paths() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if watched[dir] {
			continue
		}
		// directories that do not exist yet cannot be watched
		if err := w.Add(dir); err == nil {
			watched[dir] = true
		}
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.stopWatch:
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[event.Name] || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DefaultReloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			if err := m.Load(); err != nil {
				m.logger.Warn("config reload failed", "error", err)
				continue
			}
			m.logger.Info("config reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("config watch error", "error", err)
		}
	}
}

func (m *Manager) Close() error {
	m.watchOnce.Do(func() {
		close(m.stopWatch)
	})
	return nil
}
