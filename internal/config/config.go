// Package config provides orchestrator configuration loading. Config is read
// from forgeswarm.yaml in the project root. A missing file returns sane
// defaults without error. CLI flags (bound via cobra) override config file
// values at the highest precedence by mutating the returned struct after
// loading. API keys are never stored in the config file; they come from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values for Config fields. Endpoint and model defaults target
// OpenRouter-hosted coder models with a separate planning model.
const (
	DefaultOracleBaseURL  = "https://openrouter.ai/api/v1"
	DefaultCoderModel     = "qwen/qwen-2.5-coder-32b-instruct"
	DefaultArchitectModel = "openai/gpt-4o-mini"
	DefaultWorkspaceDir   = "workspaces"
	DefaultRepoName       = "forgeswarm-generated-repo"
	DefaultMaxIterations  = 5
	DefaultSandboxImage   = "python:3.11-slim"
	DefaultSandboxMemory  = "1g"
)

// APIKeyEnvVars lists the environment variables consulted, in order, for the
// oracle API key.
var APIKeyEnvVars = []string{"OPENROUTER_API_KEY", "OPENAI_API_KEY"}

// Config holds all configuration for the forgeswarm orchestrator.
// It is read from forgeswarm.yaml in the project root. CLI flags override it
// at the highest precedence by being applied after Load returns.
type Config struct {
	OracleBaseURL  string `yaml:"oracle_base_url"`
	CoderModel     string `yaml:"coder_model"`
	ArchitectModel string `yaml:"architect_model"`
	WorkspaceDir   string `yaml:"workspace_dir"`
	RepoName       string `yaml:"repo_name"`
	MaxIterations  int    `yaml:"max_iterations"`
	SandboxImage   string `yaml:"sandbox_image"`
	SandboxMemory  string `yaml:"sandbox_memory"`
	GitRemoteURL   string `yaml:"git_remote_url"`
	PushEnabled    bool   `yaml:"push_enabled"`
}

// defaults returns a Config populated with sane defaults.
func defaults() Config {
	return Config{
		OracleBaseURL:  DefaultOracleBaseURL,
		CoderModel:     DefaultCoderModel,
		ArchitectModel: DefaultArchitectModel,
		WorkspaceDir:   DefaultWorkspaceDir,
		RepoName:       DefaultRepoName,
		MaxIterations:  DefaultMaxIterations,
		SandboxImage:   DefaultSandboxImage,
		SandboxMemory:  DefaultSandboxMemory,
	}
}

// partialConfig is used during YAML parsing to distinguish between a field
// being absent (nil pointer) and a field being explicitly set to its zero value.
type partialConfig struct {
	OracleBaseURL  *string `yaml:"oracle_base_url"`
	CoderModel     *string `yaml:"coder_model"`
	ArchitectModel *string `yaml:"architect_model"`
	WorkspaceDir   *string `yaml:"workspace_dir"`
	RepoName       *string `yaml:"repo_name"`
	MaxIterations  *int    `yaml:"max_iterations"`
	SandboxImage   *string `yaml:"sandbox_image"`
	SandboxMemory  *string `yaml:"sandbox_memory"`
	GitRemoteURL   *string `yaml:"git_remote_url"`
	PushEnabled    *bool   `yaml:"push_enabled"`
}

// Load reads forgeswarm.yaml at path and returns a Config.
// If the file does not exist, defaults are returned without error.
// Fields absent from the file are filled with their default values.
// Fields present in the file override the corresponding default.
//
// CLI flag override pattern: cobra binds flags to the returned *Config after
// this call, giving flags the highest precedence automatically.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}

	var partial partialConfig
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return nil, err
	}

	if partial.OracleBaseURL != nil {
		cfg.OracleBaseURL = *partial.OracleBaseURL
	}
	if partial.CoderModel != nil {
		cfg.CoderModel = *partial.CoderModel
	}
	if partial.ArchitectModel != nil {
		cfg.ArchitectModel = *partial.ArchitectModel
	}
	if partial.WorkspaceDir != nil {
		cfg.WorkspaceDir = *partial.WorkspaceDir
	}
	if partial.RepoName != nil {
		cfg.RepoName = *partial.RepoName
	}
	if partial.MaxIterations != nil {
		cfg.MaxIterations = *partial.MaxIterations
	}
	if partial.SandboxImage != nil {
		cfg.SandboxImage = *partial.SandboxImage
	}
	if partial.SandboxMemory != nil {
		cfg.SandboxMemory = *partial.SandboxMemory
	}
	if partial.GitRemoteURL != nil {
		cfg.GitRemoteURL = *partial.GitRemoteURL
	}
	if partial.PushEnabled != nil {
		cfg.PushEnabled = *partial.PushEnabled
	}

	return &cfg, nil
}

// LoadDotEnv loads environment variables from a .env file in the working
// directory if one exists. A missing file is not an error; any other failure
// is reported so a malformed .env does not silently drop credentials.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// APIKey returns the oracle API key from the environment, consulting
// APIKeyEnvVars in order. An empty string means no key is configured.
func APIKey() string {
	for _, name := range APIKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
