package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PricingConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	PricingDB    `yaml:"pricing_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Pipeline     `yaml:"pipeline"`
	Sources      []SourceConfig `yaml:"sources"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PricingDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	GroupID string `yaml:"group_id" env-default:"pricing-service"`
	Enabled bool   `yaml:"enabled"`
}

// Pipeline durations are parsed with time.ParseDuration at startup so
// the yaml stays human-readable ("1h", "72h", "2160h").
type Pipeline struct {
	Interval        string `yaml:"interval" env-default:"1h"`
	Lookback        string `yaml:"lookback" env-default:"2160h"`
	MinHistorySpan  string `yaml:"min_history_span" env-default:"72h"`
	DefaultCurrency string `yaml:"default_currency" env-default:"CLP"`
}

// SourceConfig declares one retailer offer source. Every source feeds
// offers through its own kafka topic.
type SourceConfig struct {
	Name  string `yaml:"name"`
	Topic string `yaml:"topic"`
}

func MustLoad() *PricingConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PRICING_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PRICING_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PricingConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
