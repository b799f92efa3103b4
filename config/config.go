package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig defines the HTTP server configuration.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GroqConfig defines the Groq (OpenAI-compatible) engine backend.
type GroqConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// OllamaConfig defines the local Ollama engine backend.
type OllamaConfig struct {
	Host  string `yaml:"host"`
	Model string `yaml:"model"`
}

// EngineConfig selects and configures the reasoning engine.
type EngineConfig struct {
	// Provider is "groq" or "ollama".
	Provider    string       `yaml:"provider"`
	Temperature float32      `yaml:"temperature"`
	APIKey      string       `yaml:"-"`
	Groq        GroqConfig   `yaml:"groq"`
	Ollama      OllamaConfig `yaml:"ollama"`
}

// AnalysisConfig defines the analysis parameters.
// The result cache has no size bound; stale entries are only evicted
// lazily when a lookup observes them.
type AnalysisConfig struct {
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
	MaxFindings     int `yaml:"max_findings"`
	MaxCodeBytes    int `yaml:"max_code_bytes"`
}

// FixConfig defines how /fix answers are produced.
type FixConfig struct {
	// Mode is "surgical" (search/replace change units) or "rewrite"
	// (full-file rewrite with explanation). One deployment uses exactly
	// one shape.
	Mode string `yaml:"mode"`
	// VerifySearch drops change units whose search text does not occur
	// literally in the submitted code.
	VerifySearch bool `yaml:"verify_search"`
}

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Engine   EngineConfig   `yaml:"engine"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Fix      FixConfig      `yaml:"fix"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Load reads the configuration file, fills defaults for anything left
// unset and picks up the engine credential from the environment. A .env
// file in the working directory is honored when present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; the credential may come from the real env.
	_ = godotenv.Load()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file at %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.Engine.APIKey = os.Getenv("GROQ_API_KEY")
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Engine.Provider == "" {
		c.Engine.Provider = "groq"
	}
	if c.Engine.Temperature == 0 {
		c.Engine.Temperature = 0.2
	}
	if c.Engine.Groq.BaseURL == "" {
		c.Engine.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Engine.Groq.Model == "" {
		c.Engine.Groq.Model = "llama-3.3-70b-versatile"
	}
	if c.Engine.Ollama.Host == "" {
		c.Engine.Ollama.Host = "http://localhost:11434"
	}
	if c.Engine.Ollama.Model == "" {
		c.Engine.Ollama.Model = "codellama"
	}
	if c.Analysis.CacheTTLMinutes == 0 {
		c.Analysis.CacheTTLMinutes = 60
	}
	if c.Analysis.MaxFindings == 0 {
		c.Analysis.MaxFindings = 10
	}
	if c.Analysis.MaxCodeBytes == 0 {
		c.Analysis.MaxCodeBytes = 1 << 20
	}
	if c.Fix.Mode == "" {
		c.Fix.Mode = "surgical"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// EngineModel reports the model name of the active provider, for the
// health endpoint.
func (c *Config) EngineModel() string {
	if c.Engine.Provider == "ollama" {
		return c.Engine.Ollama.Model
	}
	return c.Engine.Groq.Model
}
