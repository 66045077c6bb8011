// Package config loads aipath settings from an optional YAML file, a .env
// file and AIPATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/aipath/internal/coach"
	"github.com/abhisek/aipath/internal/llm"
	"github.com/abhisek/aipath/internal/logging"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "AIPATH"

// Config is the resolved application configuration.
type Config struct {
	DBPath string
	Log    logging.Config
	LLM    llm.Config
	Coach  coach.Config

	// File is the config file that was read, empty if none.
	File string
}

// CoachEnabled reports whether an LLM provider is configured.
func (c *Config) CoachEnabled() bool {
	return c.LLM.Enabled()
}

type fileConfig struct {
	DB  string `mapstructure:"db"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`
	LLM struct {
		Provider   string        `mapstructure:"provider"`
		Timeout    time.Duration `mapstructure:"timeout"`
		Anthropic  providerKeys  `mapstructure:"anthropic"`
		OpenAI     providerKeys  `mapstructure:"openai"`
		Gemini     providerKeys  `mapstructure:"gemini"`
		OpenRouter providerKeys  `mapstructure:"openrouter"`
		Retry      struct {
			MaxAttempts int `mapstructure:"max_attempts"`
		} `mapstructure:"retry"`
	} `mapstructure:"llm"`
	Coach struct {
		MaxTokens   int           `mapstructure:"max_tokens"`
		Temperature float64       `mapstructure:"temperature"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"coach"`
}

type providerKeys struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// envAliases maps keys to the short variable names users are told about.
// The long form (AIPATH_LLM_ANTHROPIC_API_KEY) is accepted as well.
var envAliases = map[string]string{
	"llm.anthropic.api_key":   "AIPATH_ANTHROPIC_API_KEY",
	"llm.anthropic.model":     "AIPATH_ANTHROPIC_MODEL",
	"llm.anthropic.base_url":  "AIPATH_ANTHROPIC_BASE_URL",
	"llm.openai.api_key":      "AIPATH_OPENAI_API_KEY",
	"llm.openai.model":        "AIPATH_OPENAI_MODEL",
	"llm.openai.base_url":     "AIPATH_OPENAI_BASE_URL",
	"llm.gemini.api_key":      "AIPATH_GEMINI_API_KEY",
	"llm.gemini.model":        "AIPATH_GEMINI_MODEL",
	"llm.gemini.base_url":     "AIPATH_GEMINI_BASE_URL",
	"llm.openrouter.api_key":  "AIPATH_OPENROUTER_API_KEY",
	"llm.openrouter.model":    "AIPATH_OPENROUTER_MODEL",
	"llm.openrouter.base_url": "AIPATH_OPENROUTER_BASE_URL",
}

// Load resolves configuration. path names a YAML file; when empty the
// default location is tried and a missing file is not an error.
func Load(path string) (*Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range v.AllKeys() {
		long := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		names := []string{key, long}
		if short, ok := envAliases[key]; ok {
			names = append(names, short)
		}
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigType("yaml")
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(path)

	var used string
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg := fc.resolve()
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	lc := llm.DefaultConfig()
	cc := coach.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", lc.Timeout)
	v.SetDefault("llm.retry.max_attempts", lc.Retry.MaxAttempts)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", lc.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", lc.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", lc.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", lc.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("coach.max_tokens", cc.MaxTokens)
	v.SetDefault("coach.temperature", cc.Temperature)
	v.SetDefault("coach.timeout", cc.Timeout)
}

func (fc *fileConfig) resolve() *Config {
	lc := llm.DefaultConfig()
	lc.Provider = strings.ToLower(strings.TrimSpace(fc.LLM.Provider))
	lc.Timeout = fc.LLM.Timeout
	lc.Retry.MaxAttempts = fc.LLM.Retry.MaxAttempts
	lc.Anthropic = llm.Endpoint(fc.LLM.Anthropic)
	lc.OpenAI = llm.Endpoint(fc.LLM.OpenAI)
	lc.Gemini = llm.Endpoint(fc.LLM.Gemini)
	lc.OpenRouter = llm.Endpoint(fc.LLM.OpenRouter)

	if lc.Provider == "" {
		lc.Provider = inferProvider(lc)
	}
	if lc.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Timeout = lc.Timeout
			discovered.Retry = lc.Retry
			lc = discovered
		}
	}

	return &Config{
		DBPath: fc.DB,
		Log: logging.Config{
			Level:  fc.Log.Level,
			Format: fc.Log.Format,
			File:   fc.Log.File,
		},
		LLM: lc,
		Coach: coach.Config{
			MaxTokens:   fc.Coach.MaxTokens,
			Temperature: fc.Coach.Temperature,
			Timeout:     fc.Coach.Timeout,
		},
	}
}

// inferProvider picks the first provider with an AIPATH_* key set.
func inferProvider(c llm.Config) string {
	switch {
	case c.Anthropic.APIKey != "":
		return llm.Anthropic
	case c.OpenAI.APIKey != "":
		return llm.OpenAI
	case c.Gemini.APIKey != "":
		return llm.Gemini
	case c.OpenRouter.APIKey != "":
		return llm.OpenRouter
	}
	return ""
}

// Validate reports every problem with the resolved configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if f := c.Log.Format; f != "json" && f != "console" {
		errs = append(errs, fmt.Errorf("log format must be json or console, got %q", f))
	}
	if c.LLM.Enabled() {
		if err := c.LLM.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("llm timeout must be positive"))
	}
	if c.Coach.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("coach max_tokens must be positive"))
	}
	if c.Coach.Temperature < 0 || c.Coach.Temperature > 2 {
		errs = append(errs, fmt.Errorf("coach temperature must be in [0, 2]"))
	}
	return errors.Join(errs...)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/aipath/config.yaml, falling
// back to ~/.config.
func DefaultConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "aipath", "config.yaml"), nil
}

// loadDotEnv loads path into the process environment when it exists.
// Variables already set win.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}
