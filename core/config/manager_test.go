package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adalundhe/owlreasoner/core/storage"
)

func testManager(t *testing.T) (*Manager, *storage.Dirs, string) {
	t.Helper()
	dirs := &storage.Dirs{
		Config: t.TempDir(),
		Data:   t.TempDir(),
		Cache:  t.TempDir(),
		State:  t.TempDir(),
	}
	root := t.TempDir()
	return NewManager(dirs, WithProjectRoot(root)), dirs, root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Reasoner.Rules) != 1 || cfg.Reasoner.Rules[0] != "owl2:*" {
		t.Errorf("Reasoner.Rules: got %v, want [owl2:*]", cfg.Reasoner.Rules)
	}
	if cfg.Reasoner.CacheSize != 1024 {
		t.Errorf("Reasoner.CacheSize: got %d, want 1024", cfg.Reasoner.CacheSize)
	}
	if cfg.Reasoner.Merge {
		t.Error("Reasoner.Merge should default to false")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %s, want info", cfg.Logging.Level)
	}
}

func TestManagerGet(t *testing.T) {
	m, _, _ := testManager(t)

	cfg := m.Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Default format should be text")
	}
}

func TestManagerLayering(t *testing.T) {
	m, dirs, root := testManager(t)
	projectDirs := storage.ResolveProjectDirs(root)

	writeFile(t, projectDirs.Config, `
reasoner:
  rules: ["owl2:*", "skos:*"]
  parallelism: 2
store:
  rule_db: project.db
`)
	writeFile(t, dirs.ConfigDir("config.yaml"), `
reasoner:
  parallelism: 4
logging:
  level: debug
`)
	writeFile(t, filepath.Join(projectDirs.Local, "config.yaml"), `
store:
  rule_db: local.db
`)

	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if len(cfg.Reasoner.Rules) != 2 {
		t.Errorf("Rules: got %v, want 2 entries", cfg.Reasoner.Rules)
	}
	if cfg.Reasoner.Parallelism != 4 {
		t.Errorf("Parallelism: got %d, want 4 (user overrides project)", cfg.Reasoner.Parallelism)
	}
	if cfg.Store.RuleDB != "local.db" {
		t.Errorf("RuleDB: got %s, want local.db (local overrides project)", cfg.Store.RuleDB)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level: got %s, want debug", cfg.Logging.Level)
	}
	if cfg.Reasoner.CacheSize != 1024 {
		t.Errorf("CacheSize should keep the default: got %d", cfg.Reasoner.CacheSize)
	}
}

func TestManagerInvalidYAML(t *testing.T) {
	m, dirs, _ := testManager(t)
	writeFile(t, dirs.ConfigDir("config.yaml"), "reasoner: [unclosed")

	err := m.Load()
	if err == nil {
		t.Fatal("expected Load to fail")
	}
	if !strings.Contains(err.Error(), "user config") {
		t.Errorf("error should name the layer: %v", err)
	}
	if m.Get().Reasoner.CacheSize != 1024 {
		t.Error("failed Load should keep the previous configuration")
	}
}

func TestManagerEnvironmentOverride(t *testing.T) {
	m, _, _ := testManager(t)

	t.Setenv("OWLREASONER_REASONER_RULES", "owl2:ClassAssertionEntailment, skos:*")
	t.Setenv("OWLREASONER_REASONER_MERGE", "true")
	t.Setenv("OWLREASONER_REASONER_PARALLELISM", "8")
	t.Setenv("OWLREASONER_REASONER_CACHE_SIZE", "not-a-number")
	t.Setenv("OWLREASONER_STORE_INFERENCE_LOG", "/tmp/log.db")
	t.Setenv("OWLREASONER_LOGGING_FORMAT", "json")

	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := m.Get()
	if len(cfg.Reasoner.Rules) != 2 || cfg.Reasoner.Rules[1] != "skos:*" {
		t.Errorf("Rules: got %v", cfg.Reasoner.Rules)
	}
	if !cfg.Reasoner.Merge {
		t.Error("Merge should be true")
	}
	if cfg.Reasoner.Parallelism != 8 {
		t.Errorf("Parallelism: got %d, want 8", cfg.Reasoner.Parallelism)
	}
	if cfg.Reasoner.CacheSize != 1024 {
		t.Errorf("unparseable override should be ignored, got %d", cfg.Reasoner.CacheSize)
	}
	if cfg.Store.InferenceLog != "/tmp/log.db" {
		t.Errorf("InferenceLog: got %s", cfg.Store.InferenceLog)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format: got %s, want json", cfg.Logging.Format)
	}
}

func TestManagerOnChange(t *testing.T) {
	m, _, _ := testManager(t)

	called := false
	m.OnChange(func(cfg *Config) {
		called = true
	})

	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !called {
		t.Error("OnChange callback should have been called")
	}
}

func TestManagerReload(t *testing.T) {
	m, dirs, _ := testManager(t)
	configPath := dirs.ConfigDir("config.yaml")

	writeFile(t, configPath, "reasoner:\n  cache_size: 3")
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Get().Reasoner.CacheSize != 3 {
		t.Errorf("Initial CacheSize: got %d, want 3", m.Get().Reasoner.CacheSize)
	}

	writeFile(t, configPath, "reasoner:\n  cache_size: 7")
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if m.Get().Reasoner.CacheSize != 7 {
		t.Errorf("Reloaded CacheSize: got %d, want 7", m.Get().Reasoner.CacheSize)
	}
}

func TestManagerWatch(t *testing.T) {
	m, dirs, _ := testManager(t)
	configPath := dirs.ConfigDir("config.yaml")
	writeFile(t, configPath, "reasoner:\n  cache_size: 3")
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	changed := make(chan int, 8)
	m.OnChange(func(cfg *Config) { changed <- cfg.Reasoner.CacheSize })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	writeFile(t, configPath, "reasoner:\n  cache_size: 9")

	deadline := time.After(5 * time.Second)
	for got := 0; got != 9; {
		select {
		case got = <-changed:
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch returned %v, want context.Canceled", err)
	}
}

func TestManagerClose(t *testing.T) {
	m, _, _ := testManager(t)

	if err := m.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Double close should not fail: %v", err)
	}
	if err := m.Watch(context.Background()); !errors.Is(err, ErrManagerClosed) {
		t.Errorf("Watch after Close: got %v, want ErrManagerClosed", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	if _, err := NewLogger(LoggingConfig{Level: "loud"}, &buf); !errors.Is(err, ErrInvalidLogging) {
		t.Errorf("unknown level: got %v", err)
	}
	if _, err := NewLogger(LoggingConfig{Format: "xml"}, &buf); !errors.Is(err, ErrInvalidLogging) {
		t.Errorf("unknown format: got %v", err)
	}
}
