// Package config provides configuration loading and management.
package config

import (
	"time"
)

// Config is the application configuration root.
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Inference     InferenceConfig     `yaml:"inference" mapstructure:"inference"`
	Storage       StorageConfig       `yaml:"storage" mapstructure:"storage"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig holds application identity.
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig holds HTTP server configuration.
type HTTPServerConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// InferenceConfig holds inference engine configuration.
type InferenceConfig struct {
	// Backend selects the engine: server, local or stub.
	Backend       string        `yaml:"backend" mapstructure:"backend"`
	ContextWindow int           `yaml:"context_window" mapstructure:"context_window"`
	MaxTokens     int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature   float64       `yaml:"temperature" mapstructure:"temperature"`
	TopP          float64       `yaml:"top_p" mapstructure:"top_p"`
	Stop          []string      `yaml:"stop" mapstructure:"stop"`
	RetryOnce     bool          `yaml:"retry_once" mapstructure:"retry_once"`
	Server        ServerBackend `yaml:"server" mapstructure:"server"`
	Local         LocalBackend  `yaml:"local" mapstructure:"local"`
}

// ServerBackend holds llama-server client configuration.
type ServerBackend struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LocalBackend holds in-process engine configuration.
type LocalBackend struct {
	ModelPath string `yaml:"model_path" mapstructure:"model_path"`
	Threads   int    `yaml:"threads" mapstructure:"threads"`
	GPULayers int    `yaml:"gpu_layers" mapstructure:"gpu_layers"`
	Seed      int    `yaml:"seed" mapstructure:"seed"`
}

// StorageConfig holds state file configuration.
type StorageConfig struct {
	DataDir     string `yaml:"data_dir" mapstructure:"data_dir"`
	MemoryFile  string `yaml:"memory_file" mapstructure:"memory_file"`
	WorldFile   string `yaml:"world_file" mapstructure:"world_file"`
	StoriesFile string `yaml:"stories_file" mapstructure:"stories_file"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Exporter   string  `yaml:"exporter" mapstructure:"exporter"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig holds security configuration.
type SecurityConfig struct {
	CORS CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}
