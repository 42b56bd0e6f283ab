package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PricingConfig struct {
	Env             string `yaml:"env"`
	HTTPServer      `yaml:"http_server"`
	PricingDB       `yaml:"pricing_db"`
	LogConfig       `yaml:"log_config"`
	CalendarService `yaml:"calendar-service"`
	KafkaService    `yaml:"kafka-service"`
	Horizon         `yaml:"horizon"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PricingDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

// CalendarService is the external channel manager rates are pulled from.
type CalendarService struct {
	BaseURL        string `yaml:"base_url"`
	Username       string `yaml:"username" env:"CALENDAR_SERVICE_USERNAME"`
	Password       string `yaml:"password" env:"CALENDAR_SERVICE_PASSWORD"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env-default:"30"`
}

type KafkaService struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Mechanism  string `yaml:"mechanism"`
	TLSEnabled bool   `yaml:"tls_enabled"`
}

type Horizon struct {
	PastDays    int `yaml:"past_days" env-default:"1"`
	FutureYears int `yaml:"future_years" env-default:"2"`
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
