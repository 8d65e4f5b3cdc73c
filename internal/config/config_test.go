package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/internal/errors"
	"github.com/vango-dev/elmen/pkg/render"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Verbosity != "default" {
		t.Errorf("Verbosity = %q, want %q", cfg.Verbosity, "default")
	}
	if cfg.Render.Host != HostVDOM {
		t.Errorf("Render.Host = %q, want %q", cfg.Render.Host, HostVDOM)
	}
	if cfg.Render.Indent != DefaultIndent {
		t.Errorf("Render.Indent = %q, want %q", cfg.Render.Indent, DefaultIndent)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate should pass for defaults: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing config error should wrap fs.ErrNotExist: %v", err)
	}

	configJSON := `{
  "verbosity": "high",
  "render": {
    "pretty": true,
    "indent": "\t",
    "markListeners": true
  },
  "metrics": true,
  "trace": true
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := cfg.BuilderVerbosity(); got != elmen.High {
		t.Errorf("BuilderVerbosity() = %v, want %v", got, elmen.High)
	}
	want := RenderConfig{Host: HostVDOM, Pretty: true, Indent: "\t", MarkListeners: true}
	if diff := cmp.Diff(want, cfg.Render); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Metrics || !cfg.Trace {
		t.Errorf("Metrics = %v, Trace = %v, want both true", cfg.Metrics, cfg.Trace)
	}
	if cfg.Namespace != DefaultNamespace {
		t.Errorf("Namespace = %q, want default", cfg.Namespace)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("{\n  \"verbosity\": ,\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), errors.CodeConfigInvalid) {
		t.Errorf("Expected E120 error, got: %v", err)
	}

	var ee *errors.ElmenError
	if !stderrors.As(err, &ee) || ee.Location == nil {
		t.Fatalf("error should carry a location: %#v", err)
	}
	if ee.Location.Line != 2 || ee.Location.File != configPath {
		t.Errorf("Location = %v, want %s:2", ee.Location, configPath)
	}
	if len(ee.Context) == 0 {
		t.Error("Context should hold the surrounding lines")
	}
}

func TestLoadFile_WrongType(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"metrics": "yes"}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	var ee *errors.ElmenError
	if !stderrors.As(err, &ee) || ee.Code != errors.CodeConfigInvalid {
		t.Fatalf("LoadFile() = %v, want E120", err)
	}
	if ee.Location != nil {
		t.Errorf("type errors have no syntax offset, got location %v", ee.Location)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Verbosity = "none"
	cfg.Render.Host = HostHTML

	// Save should fail without configPath set
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.BuilderVerbosity() != elmen.NoChecks {
		t.Errorf("Verbosity = %q, want none", loaded.Verbosity)
	}
	if loaded.Render.Host != HostHTML {
		t.Errorf("Render.Host = %q, want %q", loaded.Render.Host, HostHTML)
	}

	loaded.Metrics = true
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reloaded.Metrics {
		t.Error("Metrics should be true after Save")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"high", func(c *Config) { c.Verbosity = "HIGH" }, true},
		{"html host", func(c *Config) { c.Render.Host = HostHTML }, true},
		{"unknown verbosity", func(c *Config) { c.Verbosity = "loud" }, false},
		{"unknown host", func(c *Config) { c.Render.Host = "canvas" }, false},
		{"non-blank indent", func(c *Config) { c.Render.Indent = "--" }, false},
		{"pretty html", func(c *Config) {
			c.Render.Host = HostHTML
			c.Render.Pretty = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ee *errors.ElmenError
			if !stderrors.As(err, &ee) || ee.Code != errors.CodeConfigValue {
				t.Errorf("Validate() = %v, want E121", err)
			}
		})
	}
}

func TestBuilderVerbosityFallback(t *testing.T) {
	cfg := New()
	cfg.Verbosity = "loud"
	if got := cfg.BuilderVerbosity(); got != elmen.Default {
		t.Errorf("BuilderVerbosity() = %v, want %v", got, elmen.Default)
	}
}

func TestRendererConfig(t *testing.T) {
	cfg := New()
	cfg.Render.Pretty = true
	cfg.Render.MarkListeners = true

	want := render.RendererConfig{Pretty: true, Indent: DefaultIndent, MarkListeners: true}
	if diff := cmp.Diff(want, cfg.RendererConfig()); diff != "" {
		t.Errorf("RendererConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for empty directory")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	// Create nested directory structure
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Should fail when no config exists
	_, err := FindProjectRoot(nestedDir)
	if !IsNotFound(err) {
		t.Errorf("FindProjectRoot error = %v, want not found", err)
	}

	// Create config in root
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	// Should find root from nested directory
	root, err := FindProjectRoot(nestedDir)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}

	// Should find root from middle directory
	root, err = FindProjectRoot(filepath.Join(tmpDir, "a"))
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "pages")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nestedDir)
	if err != nil {
		t.Fatalf("Discover without a file: %v", err)
	}
	if cfg.Path() != "" || cfg.Render.Host != HostVDOM {
		t.Errorf("Discover without a file should return defaults, got %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"verbosity":"none"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Discover(nestedDir)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if cfg.BuilderVerbosity() != elmen.NoChecks {
		t.Errorf("Verbosity = %q, want none", cfg.Verbosity)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	want := New()
	if diff := cmp.Diff(want, cfg, cmp.AllowUnexported(Config{})); diff != "" {
		t.Errorf("applyDefaults mismatch (-want +got):\n%s", diff)
	}
}
