// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Pool   PoolConfig   `yaml:"pool" mapstructure:"pool"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Score  ScoreConfig  `yaml:"score" mapstructure:"score"`
	Jina   JinaConfig   `yaml:"jina" mapstructure:"jina"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Debug  DebugConfig  `yaml:"debug" mapstructure:"debug"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// PoolConfig configures the enrichment worker pool.
type PoolConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// SearchConfig configures the web search phase.
type SearchConfig struct {
	Engines        []string `yaml:"engines" mapstructure:"engines"`
	MaxResults     int      `yaml:"max_results" mapstructure:"max_results"`
	TimeoutSecs    int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	EngineDelayMin int      `yaml:"engine_delay_min_ms" mapstructure:"engine_delay_min_ms"`
	EngineDelayMax int      `yaml:"engine_delay_max_ms" mapstructure:"engine_delay_max_ms"`
}

// FetchConfig configures per-URL page fetching.
type FetchConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	DelayMin    int `yaml:"delay_min_ms" mapstructure:"delay_min_ms"`
	DelayMax    int `yaml:"delay_max_ms" mapstructure:"delay_max_ms"`
}

// ScoreConfig holds the relevance scoring weights and the acceptance
// threshold. Weights are additive; penalties are negative.
type ScoreConfig struct {
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`

	EmailNameToken      float64 `yaml:"email_name_token" mapstructure:"email_name_token"`
	EmailProDomain      float64 `yaml:"email_pro_domain" mapstructure:"email_pro_domain"`
	EmailPracticeName   float64 `yaml:"email_practice_name" mapstructure:"email_practice_name"`
	EmailGenericPenalty float64 `yaml:"email_generic_penalty" mapstructure:"email_generic_penalty"`

	PhoneAreaCode float64 `yaml:"phone_area_code" mapstructure:"phone_area_code"`
	PhoneVerbatim float64 `yaml:"phone_verbatim" mapstructure:"phone_verbatim"`

	WebsiteNameToken       float64 `yaml:"website_name_token" mapstructure:"website_name_token"`
	WebsitePracticeName    float64 `yaml:"website_practice_name" mapstructure:"website_practice_name"`
	WebsiteProTerm         float64 `yaml:"website_pro_term" mapstructure:"website_pro_term"`
	WebsiteTLDBonus        float64 `yaml:"website_tld_bonus" mapstructure:"website_tld_bonus"`
	WebsiteLowValuePenalty float64 `yaml:"website_low_value_penalty" mapstructure:"website_low_value_penalty"`

	LocationBonus float64 `yaml:"location_bonus" mapstructure:"location_bonus"`
}

// JinaConfig holds Jina AI Reader settings. The Jina search engine and
// fetch fallback are enabled only when a key is present.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	BaseURL       string `yaml:"base_url" mapstructure:"base_url"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// StoreConfig configures run-history persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DebugConfig configures debug artifacts.
type DebugConfig struct {
	// Dir, when set, receives raw fetched page text per (record, URL) pair.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// Annex retains the raw discovered candidate sets on each output record.
	Annex bool `yaml:"annex" mapstructure:"annex"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("OUTREACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("pool.concurrency", 100)
	v.SetDefault("search.engines", []string{"google", "bing"})
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout_secs", 10)
	v.SetDefault("search.rate_limit", 1.0)
	v.SetDefault("search.engine_delay_min_ms", 2000)
	v.SetDefault("search.engine_delay_max_ms", 4000)
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.delay_min_ms", 1000)
	v.SetDefault("fetch.delay_max_ms", 3000)
	v.SetDefault("score.threshold", 0.3)
	v.SetDefault("score.email_name_token", 0.4)
	v.SetDefault("score.email_pro_domain", 0.2)
	v.SetDefault("score.email_practice_name", 0.3)
	v.SetDefault("score.email_generic_penalty", -0.2)
	v.SetDefault("score.phone_area_code", 0.3)
	v.SetDefault("score.phone_verbatim", 0.5)
	v.SetDefault("score.website_name_token", 0.4)
	v.SetDefault("score.website_practice_name", 0.3)
	v.SetDefault("score.website_pro_term", 0.2)
	v.SetDefault("score.website_tld_bonus", 0.1)
	v.SetDefault("score.website_low_value_penalty", -0.2)
	v.SetDefault("score.location_bonus", 0.1)
	v.SetDefault("jina.base_url", "https://r.jina.ai")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("store.path", "outreach.db")
	v.SetDefault("debug.annex", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
