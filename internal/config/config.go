// Package config models marketeer.yml plus its defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"marketeer/internal/llm"
)

// Config holds all tunables for the generation pipelines.
type Config struct {
	LLM    LLMConfig      `yaml:"llm"`
	Copy   SamplingConfig `yaml:"copy"`
	Chat   SamplingConfig `yaml:"chat"`
	Video  SamplingConfig `yaml:"video"`
	Server ServerConfig   `yaml:"server"`
	Tables TablesConfig   `yaml:"tables"`
}

// LLMConfig points at the OpenAI-compatible backend.
type LLMConfig struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// SamplingConfig holds the sampling parameters for one pipeline.
type SamplingConfig struct {
	MaxNewTokens int     `yaml:"max_new_tokens"`
	Temperature  float64 `yaml:"temperature"`
	TopP         float64 `yaml:"top_p"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

// TablesConfig optionally overrides the built-in lookup tables.
type TablesConfig struct {
	Platforms  string `yaml:"platforms"`
	Blueprints string `yaml:"blueprints"`
}

// Params converts a sampling config to backend params.
func (s SamplingConfig) Params() llm.Params {
	return llm.Params{
		MaxNewTokens: s.MaxNewTokens,
		Temperature:  s.Temperature,
		TopP:         s.TopP,
	}
}

// Timeout returns the backend HTTP timeout.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSec) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			BaseURL:    "https://api.groq.com/openai/v1",
			Model:      "llama-3.3-70b-versatile",
			TimeoutSec: 60,
		},
		Copy:  SamplingConfig{MaxNewTokens: 256, Temperature: 0.8, TopP: 0.9},
		Chat:  SamplingConfig{MaxNewTokens: 256, Temperature: 0.8, TopP: 0.9},
		Video: SamplingConfig{MaxNewTokens: 256, Temperature: 0.7, TopP: 0.9},
		Server: ServerConfig{
			Addr:     ":8085",
			BasePath: "/v1",
		},
	}
}

// Load reads config from path, layered over the defaults. A missing file
// is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate ensures the config is usable.
func (c *Config) Validate() error {
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	for name, s := range map[string]SamplingConfig{"copy": c.Copy, "chat": c.Chat, "video": c.Video} {
		if s.MaxNewTokens <= 0 {
			return fmt.Errorf("%s.max_new_tokens must be positive", name)
		}
		if s.Temperature < 0 {
			return fmt.Errorf("%s.temperature must not be negative", name)
		}
		if s.TopP <= 0 || s.TopP > 1 {
			return fmt.Errorf("%s.top_p must be in (0, 1]", name)
		}
	}
	return nil
}
