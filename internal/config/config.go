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
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Prepare  PrepareConfig  `yaml:"prepare" mapstructure:"prepare"`
	Corpus   CorpusConfig   `yaml:"corpus" mapstructure:"corpus"`
	Evaluate EvaluateConfig `yaml:"evaluate" mapstructure:"evaluate"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the raw statistical inputs.
type DataConfig struct {
	TradeDir    string `yaml:"trade_dir" mapstructure:"trade_dir"`
	USGSDir     string `yaml:"usgs_dir" mapstructure:"usgs_dir"`
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
}

// PrepareConfig holds defaults for the corpus preparation pipeline.
type PrepareConfig struct {
	OutputDir  string  `yaml:"output_dir" mapstructure:"output_dir"`
	Seed       int64   `yaml:"seed" mapstructure:"seed"`
	TrainRatio float64 `yaml:"train_ratio" mapstructure:"train_ratio"`
	ValidRatio float64 `yaml:"valid_ratio" mapstructure:"valid_ratio"`
	TestRatio  float64 `yaml:"test_ratio" mapstructure:"test_ratio"`
}

// CorpusConfig configures chat example serialization.
type CorpusConfig struct {
	SystemPrompt string `yaml:"system_prompt" mapstructure:"system_prompt"`
}

// EvaluateConfig holds defaults for the evaluation pipeline.
type EvaluateConfig struct {
	OutputDir   string `yaml:"output_dir" mapstructure:"output_dir"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
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
	v.SetEnvPrefix("CMM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.trade_dir", "data/raw/trade")
	v.SetDefault("data.usgs_dir", "data/raw/usgs")
	v.SetDefault("data.catalog_path", "")
	v.SetDefault("prepare.output_dir", "data")
	v.SetDefault("prepare.seed", 42)
	v.SetDefault("prepare.train_ratio", 0.85)
	v.SetDefault("prepare.valid_ratio", 0.10)
	v.SetDefault("prepare.test_ratio", 0.05)
	v.SetDefault("corpus.system_prompt", "")
	v.SetDefault("evaluate.output_dir", "results")
	v.SetDefault("evaluate.concurrency", 8)
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
