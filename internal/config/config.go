// Package config provides configuration management for hunter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the agent configuration.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	API     APIConfig     `yaml:"api"`
	LLM     LLMConfig     `yaml:"llm"`
	Notify  NotifyConfig  `yaml:"notify"`
	Logging LoggingConfig `yaml:"logging"`
}

// AgentConfig contains poll loop and data-path settings.
type AgentConfig struct {
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	IntentThreshold     int    `yaml:"intent_threshold"`
	AccountsPath        string `yaml:"accounts_path"`
	KnowledgePath       string `yaml:"knowledge_path"`
}

// APIConfig contains status API settings.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LLMConfig contains LLM integration settings.
type LLMConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// NotifyConfig contains tool-execution delivery settings.
type NotifyConfig struct {
	APIKey         string `yaml:"api_key"`
	ToolID         string `yaml:"tool_id"`
	BaseURL        string `yaml:"base_url"`
	Channel        string `yaml:"channel"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level      string   `yaml:"level"`
	Format     string   `yaml:"format"`
	Output     []string `yaml:"output"`
	TimeFormat string   `yaml:"time_format"`
	File       string   `yaml:"file"`
	MaxSizeMB  int      `yaml:"max_size_mb"`
	MaxBackups int      `yaml:"max_backups"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			PollIntervalSeconds: 30,
			IntentThreshold:     75,
			AccountsPath:        "data/accounts.json",
			KnowledgePath:       "data/knowledge_base",
		},
		API: APIConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    8430,
		},
		LLM: LLMConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          "gemini-2.0-flash",
			EmbeddingModel: "text-embedding-004",
			TimeoutSeconds: 30,
		},
		Notify: NotifyConfig{
			APIKey:         os.Getenv("TOOL_EXEC_API_KEY"),
			ToolID:         os.Getenv("TOOL_EXEC_TOOL_ID"),
			BaseURL:        "https://api.arcade.dev",
			Channel:        "#gtm-opportunities",
			TimeoutSeconds: 15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"console"},
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return "hunter.yaml"
}

// Load loads configuration from a file, layered over defaults.
// A missing file is not an error. A .env file in the working directory is
// loaded first so that ${VAR} references in the config resolve.
func Load(path string) (*Config, error) {
	// Best effort: the .env file is optional.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the config
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.Agent.AccountsPath = expandHome(cfg.Agent.AccountsPath)
	cfg.Agent.KnowledgePath = expandHome(cfg.Agent.KnowledgePath)

	return cfg, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Address returns the full address string for the status API server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
