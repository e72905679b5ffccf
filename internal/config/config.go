package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone       = "UTC"
	DefaultCronExpression = "0 22 * * 0"
	configPathEnv         = "TREND_ENGINE_CONFIG"
	envFileEnv            = "TREND_ENGINE_ENV_FILE"
	databaseDSNEnv        = "DATABASE_DSN"
	storageDriverEnv      = "STORAGE_DRIVER"
	anthropicAPIKeyEnv    = "ANTHROPIC_API_KEY"
	openAIAPIKeyEnv       = "OPENAI_API_KEY"
	strategyModelEnv      = "STRATEGY_MODEL"
	telegramTokenEnv      = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv     = "TELEGRAM_CHAT_ID"
	logLevelEnv           = "LOG_LEVEL"
	serverAddrEnv         = "SERVER_ADDR"
)

// Collector names understood by the source registry.
const (
	CollectorSearchMetrics = "search_metrics"
	CollectorWikipedia     = "wikipedia"
	CollectorReddit        = "reddit"
	CollectorQuestions     = "questions"
	CollectorHackerNews    = "hackernews"
	CollectorPubMed        = "pubmed"
	CollectorNews          = "news"
	CollectorLeads         = "leads"
)

// Strategy providers.
const (
	ProviderAuto      = "auto"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderTemplate  = "template"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Storage       StorageConfig      `yaml:"storage"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Collectors    CollectorConfig    `yaml:"collectors"`
	Sources       []SourceConfig     `yaml:"sources"`
	Strategy      StrategyConfig     `yaml:"strategy"`
	Notifications NotificationConfig `yaml:"notifications"`
	Server        ServerConfig       `yaml:"server"`
	Analysis      AnalysisConfig     `yaml:"analysis"`
}

// LoggingConfig sets the slog level (debug, info, warn, error).
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig selects the snapshot database.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SchedulerConfig defines when the weekly run fires.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// CollectorConfig tunes the shared HTTP behaviour of collectors.
type CollectorConfig struct {
	UserAgent      string        `yaml:"userAgent"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerSec float64       `yaml:"requestsPerSecond"`
	Burst          int           `yaml:"burst"`
	CacheSize      int           `yaml:"cacheSize"`
	CacheTTL       time.Duration `yaml:"cacheTTL"`
}

// SourceConfig describes one collector run: which collector, what to
// query and any collector-specific options.
type SourceConfig struct {
	Name      string            `yaml:"name"`
	Collector string            `yaml:"collector"`
	Enabled   *bool             `yaml:"enabled"`
	Targets   []string          `yaml:"targets"`
	Options   map[string]string `yaml:"options"`
}

// IsEnabled reports whether the source should run. Sources are on unless
// switched off explicitly.
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// StrategyConfig defines how the weekly content plan is produced.
type StrategyConfig struct {
	Provider        string       `yaml:"provider"`
	Model           string       `yaml:"model"`
	MaxTokens       int          `yaml:"maxTokens"`
	AnthropicAPIKey string       `yaml:"anthropicApiKey"`
	OpenAI          OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig defines how to contact an OpenAI-compatible chat API.
type OpenAIConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	APIBase  string `yaml:"apiBase"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AnalysisConfig tunes the analysis run.
type AnalysisConfig struct {
	EngagementTopN int `yaml:"engagementTopN"`
}

// Load reads .env and YAML configuration (if present) and applies
// environment overrides.
func Load() Config {
	cfg := defaultConfig()

	envFile := os.Getenv(envFileEnv)
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot load %s: %v", envFile, err)
	}

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources()
	}

	return cfg
}

// Parse decodes a YAML document into a Config without defaults applied.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(storageDriverEnv); v != "" {
		c.Storage.Driver = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(anthropicAPIKeyEnv); v != "" {
		c.Strategy.AnthropicAPIKey = v
	}
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.Strategy.OpenAI.APIKey = v
	}
	if v := os.Getenv(strategyModelEnv); v != "" {
		c.Strategy.Model = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Storage.Driver != "" {
		base.Storage.Driver = override.Storage.Driver
	}
	if override.Storage.DSN != "" {
		base.Storage.DSN = override.Storage.DSN
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Collectors.UserAgent != "" {
		base.Collectors.UserAgent = override.Collectors.UserAgent
	}
	if override.Collectors.Timeout > 0 {
		base.Collectors.Timeout = override.Collectors.Timeout
	}
	if override.Collectors.RequestsPerSec > 0 {
		base.Collectors.RequestsPerSec = override.Collectors.RequestsPerSec
	}
	if override.Collectors.Burst > 0 {
		base.Collectors.Burst = override.Collectors.Burst
	}
	if override.Collectors.CacheSize > 0 {
		base.Collectors.CacheSize = override.Collectors.CacheSize
	}
	if override.Collectors.CacheTTL > 0 {
		base.Collectors.CacheTTL = override.Collectors.CacheTTL
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if override.Strategy.Provider != "" {
		base.Strategy.Provider = override.Strategy.Provider
	}
	if override.Strategy.Model != "" {
		base.Strategy.Model = override.Strategy.Model
	}
	if override.Strategy.MaxTokens > 0 {
		base.Strategy.MaxTokens = override.Strategy.MaxTokens
	}
	if override.Strategy.AnthropicAPIKey != "" {
		base.Strategy.AnthropicAPIKey = override.Strategy.AnthropicAPIKey
	}
	if override.Strategy.OpenAI.Endpoint != "" {
		base.Strategy.OpenAI.Endpoint = override.Strategy.OpenAI.Endpoint
	}
	if override.Strategy.OpenAI.Model != "" {
		base.Strategy.OpenAI.Model = override.Strategy.OpenAI.Model
	}
	if override.Strategy.OpenAI.APIKey != "" {
		base.Strategy.OpenAI.APIKey = override.Strategy.OpenAI.APIKey
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Notifications.Telegram.APIBase != "" {
		base.Notifications.Telegram.APIBase = override.Notifications.Telegram.APIBase
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if override.Analysis.EngagementTopN > 0 {
		base.Analysis.EngagementTopN = override.Analysis.EngagementTopN
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Storage:   StorageConfig{Driver: "sqlite", DSN: "file:trendengine.db?_pragma=busy_timeout(5000)"},
		Scheduler: SchedulerConfig{CronExpression: DefaultCronExpression, Timezone: defaultTimezone, location: tz},
		Collectors: CollectorConfig{
			UserAgent:      "TrendEngine/1.0 (weekly content research)",
			Timeout:        15 * time.Second,
			RequestsPerSec: 1,
			Burst:          2,
			CacheSize:      256,
			CacheTTL:       time.Hour,
		},
		Sources: defaultSources(),
		Strategy: StrategyConfig{
			Provider:  ProviderAuto,
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 4096,
			OpenAI: OpenAIConfig{
				Endpoint: "https://api.openai.com/v1/chat/completions",
				Model:    "gpt-4o-mini",
			},
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{APIBase: "https://api.telegram.org"},
		},
		Server:   ServerConfig{Addr: ":8080"},
		Analysis: AnalysisConfig{EngagementTopN: 5},
	}
}
