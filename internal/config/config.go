package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the guide API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Database  DatabaseConfig  `yaml:"database"`
	Engine    EngineConfig    `yaml:"engine"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Answer    AnswerConfig    `yaml:"answer"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Corpus sources.
const (
	CorpusSourceFile  = "file"
	CorpusSourceRedis = "redis"
)

// CorpusConfig selects where records are loaded from.
type CorpusConfig struct {
	Source string `yaml:"source"` // file, redis (default: file)
	Path   string `yaml:"path"`
	Key    string `yaml:"key"`
}

// DatabaseConfig holds Redis connection settings. Optional unless the corpus lives in Redis.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool { return len(d.Addrs) > 0 }

// EngineConfig tunes the lexical engine. Scoring weights are fixed and not configurable.
type EngineConfig struct {
	Stemmer           string `yaml:"stemmer"` // suffix, snowball (default: suffix)
	Workers           int    `yaml:"workers"`
	ParallelThreshold int    `yaml:"parallel_threshold"`
	CacheSize         int    `yaml:"cache_size"` // 0 disables the result cache
}

// EmbeddingConfig holds semantic search settings.
type EmbeddingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Dimensions  int     `yaml:"dimensions"`
	Threshold   float64 `yaml:"threshold"`
	CacheTTLSec int     `yaml:"cache_ttl_sec"` // 0 = no expiry
}

// AnswerConfig holds LLM answer settings.
type AnswerConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Source == "" {
		c.Corpus.Source = CorpusSourceFile
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Engine.Stemmer == "" {
		c.Engine.Stemmer = "suffix"
	}
	if c.Engine.Workers <= 0 {
		c.Engine.Workers = runtime.NumCPU()
	}
	if c.Engine.ParallelThreshold <= 0 {
		c.Engine.ParallelThreshold = 256
	}
	if c.Embedding.Threshold <= 0 {
		c.Embedding.Threshold = 0.75
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Answer.Model == "" {
		c.Answer.Model = "gpt-4o-mini"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Corpus.Source {
	case CorpusSourceFile:
		if c.Corpus.Path == "" {
			return fmt.Errorf("corpus.path is required for file source")
		}
	case CorpusSourceRedis:
		if !c.Database.Enabled() {
			return fmt.Errorf("database.addrs is required for redis corpus source")
		}
	default:
		return fmt.Errorf("corpus.source must be %q or %q, got %q", CorpusSourceFile, CorpusSourceRedis, c.Corpus.Source)
	}
	switch c.Engine.Stemmer {
	case "suffix", "snowball":
	default:
		return fmt.Errorf("engine.stemmer must be \"suffix\" or \"snowball\", got %q", c.Engine.Stemmer)
	}
	if c.Engine.CacheSize < 0 {
		return fmt.Errorf("engine.cache_size must not be negative")
	}
	if c.Embedding.Enabled && c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required when embedding is enabled")
	}
	if c.Embedding.Threshold >= 1 {
		return fmt.Errorf("embedding.threshold must be below 1, got %g", c.Embedding.Threshold)
	}
	if c.Answer.Enabled && c.Answer.APIKey == "" {
		return fmt.Errorf("answer.api_key is required when answer is enabled")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
