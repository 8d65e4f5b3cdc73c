package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/internal/errors"
	"github.com/vango-dev/elmen/pkg/render"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "elmen.json"

	// DefaultIndent is the default indentation for pretty output.
	DefaultIndent = "  "

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "elmen"
)

// Hosts the render command can build into.
const (
	HostVDOM = "vdom"
	HostHTML = "html"
)

// Config represents the complete elmen.json configuration.
type Config struct {
	// Verbosity is the builder verbosity: "none", "default" or "high".
	Verbosity string `json:"verbosity,omitempty"`

	// Render contains HTML output configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Metrics enables the Prometheus dump after rendering.
	Metrics bool `json:"metrics,omitempty"`

	// Namespace is the Prometheus namespace for builder metrics.
	Namespace string `json:"namespace,omitempty"`

	// Trace enables OpenTelemetry spans for every builder.
	Trace bool `json:"trace,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Host is the document elements are built in: "vdom" or "html".
	Host string `json:"host,omitempty"`

	// Pretty enables indented output (vdom host only).
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the string used per indentation level.
	Indent string `json:"indent,omitempty"`

	// MarkListeners adds data-on-<event> attributes (vdom host only).
	MarkListeners bool `json:"markListeners,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Verbosity: elmen.Default.String(),
		Namespace: DefaultNamespace,
		Render: RenderConfig{
			Host:   HostVDOM,
			Indent: DefaultIndent,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for elmen.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found at " + path).
				Wrap(err)
		}
		return nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		e := errors.New(errors.CodeConfigInvalid).
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
		if offset, ok := errors.SyntaxOffset(err); ok {
			line, col := errors.Offset(data, offset)
			e = e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigInvalid).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Verbosity == "" {
		c.Verbosity = elmen.Default.String()
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Render.Host == "" {
		c.Render.Host = HostVDOM
	}
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := elmen.ParseVerbosity(c.Verbosity); err != nil {
		return errors.New(errors.CodeConfigValue).
			WithDetail("verbosity: " + err.Error()).
			WithSuggestion(`Use "none", "default" or "high"`)
	}
	switch c.Render.Host {
	case HostVDOM, HostHTML:
	default:
		return errors.New(errors.CodeConfigValue).
			WithDetail(`render.host must be "vdom" or "html", got "` + c.Render.Host + `"`)
	}
	if strings.TrimLeft(c.Render.Indent, " \t") != "" {
		return errors.New(errors.CodeConfigValue).
			WithDetail("render.indent may only contain spaces and tabs")
	}
	if c.Render.Host == HostHTML && (c.Render.Pretty || c.Render.MarkListeners) {
		return errors.New(errors.CodeConfigValue).
			WithDetail("render.pretty and render.markListeners need the vdom host")
	}
	return nil
}

// BuilderVerbosity returns the parsed verbosity, falling back to Default
// when the value is invalid.
func (c *Config) BuilderVerbosity() elmen.Verbosity {
	v, err := elmen.ParseVerbosity(c.Verbosity)
	if err != nil {
		return elmen.Default
	}
	return v
}

// RendererConfig returns the vdom renderer settings.
func (c *Config) RendererConfig() render.RendererConfig {
	return render.RendererConfig{
		Pretty:        c.Render.Pretty,
		Indent:        c.Render.Indent,
		MarkListeners: c.Render.MarkListeners,
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing elmen.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// Discover loads elmen.json from startDir or the nearest parent that has
// one. It returns the defaults when no file exists.
func Discover(startDir string) (*Config, error) {
	root, err := FindProjectRoot(startDir)
	if err != nil {
		if IsNotFound(err) {
			return New(), nil
		}
		return nil, err
	}
	return Load(root)
}

// IsNotFound reports whether err means no configuration file exists.
func IsNotFound(err error) bool {
	var ee *errors.ElmenError
	return stderrors.As(err, &ee) && ee.Code == errors.CodeConfigNotFound
}
