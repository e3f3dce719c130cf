package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
)

const (
	ReportPolicyVendorOnly = "vendor_only"
	ReportPolicyTranscript = "transcript"
)

type Config struct {
	WorkspacePath          string
	CustomersDir           string
	PromptsDir             string
	MeetingsDir            string
	ResponseEvaluationsDir string
	MeetingEvaluationsDir  string
	StrategiesDir          string
	StateDir               string
	DBPath                 string
	LogPath                string
	FilePath               string

	Provider     string
	APIKey       string
	LLMTimeout   time.Duration
	LogLevel     string
	Models       map[string]ModelOverride
	ReportPolicy string
}

// ModelOverride replaces fields of a purpose's built-in model settings.
// Zero values keep the built-in value.
type ModelOverride struct {
	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
}

type env struct {
	Provider     string        `envconfig:"PITCH_PROVIDER"`
	AnthropicKey string        `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIKey    string        `envconfig:"OPENAI_API_KEY"`
	LLMTimeout   time.Duration `envconfig:"PITCH_LLM_TIMEOUT" default:"2m"`
	LogLevel     string        `envconfig:"PITCH_LOG_LEVEL" default:"info"`
}

type fileConfig struct {
	Models       map[string]ModelOverride `yaml:"models"`
	ReportPolicy string                   `yaml:"report_policy"`
}

// New derives the workspace layout. It touches neither the environment
// nor the file system.
func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	meetings := filepath.Join(workspacePath, "meetings")
	state := filepath.Join(workspacePath, ".pitch")
	return Config{
		WorkspacePath:          workspacePath,
		CustomersDir:           filepath.Join(workspacePath, "customers"),
		PromptsDir:             filepath.Join(workspacePath, "prompts"),
		MeetingsDir:            meetings,
		ResponseEvaluationsDir: filepath.Join(meetings, "response_evaluations"),
		MeetingEvaluationsDir:  filepath.Join(meetings, "meeting_evaluations"),
		StrategiesDir:          filepath.Join(workspacePath, "strategies"),
		StateDir:               state,
		DBPath:                 filepath.Join(state, "pitch.db"),
		LogPath:                filepath.Join(state, "pitch.log"),
		FilePath:               filepath.Join(state, "config.yaml"),
		LLMTimeout:             2 * time.Minute,
		LogLevel:               "info",
		Models:                 map[string]ModelOverride{},
		ReportPolicy:           ReportPolicyVendorOnly,
	}, nil
}

// Load layers the environment and the optional workspace config file on
// top of New.
func Load(workspacePath string) (Config, error) {
	cfg, err := New(workspacePath)
	if err != nil {
		return Config{}, err
	}

	var e env
	if err := envconfig.Process("", &e); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	cfg.LLMTimeout = e.LLMTimeout
	cfg.LogLevel = e.LogLevel
	cfg.Provider, cfg.APIKey, err = resolveProvider(e)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.loadFile(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	raw, err := os.ReadFile(c.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("decode config file %s: %w", c.FilePath, err)
	}
	for purpose, override := range fc.Models {
		c.Models[purpose] = override
	}
	switch policy := strings.TrimSpace(fc.ReportPolicy); policy {
	case "":
	case ReportPolicyVendorOnly, ReportPolicyTranscript:
		c.ReportPolicy = policy
	default:
		return fmt.Errorf("unknown report_policy %q", policy)
	}
	return nil
}

// resolveProvider honours an explicit PITCH_PROVIDER and otherwise picks
// the first provider with a key, anthropic first. No key leaves the
// provider empty; every model call then fails without aborting the app.
func resolveProvider(e env) (string, string, error) {
	switch strings.ToLower(strings.TrimSpace(e.Provider)) {
	case ProviderAnthropic:
		return ProviderAnthropic, e.AnthropicKey, nil
	case ProviderOpenAI:
		return ProviderOpenAI, e.OpenAIKey, nil
	case ProviderMock:
		return ProviderMock, "", nil
	case "":
	default:
		return "", "", fmt.Errorf("unknown PITCH_PROVIDER %q", e.Provider)
	}
	if e.AnthropicKey != "" {
		return ProviderAnthropic, e.AnthropicKey, nil
	}
	if e.OpenAIKey != "" {
		return ProviderOpenAI, e.OpenAIKey, nil
	}
	return "", "", nil
}
