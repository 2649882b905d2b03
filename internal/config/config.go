package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Embedder struct {
		Endpoint   string `yaml:"endpoint"`
		Dimensions int    `yaml:"dimensions"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"embedder"`

	Matching struct {
		CacheValidityDays int     `yaml:"cache_validity_days"`
		FuzzyThreshold    float64 `yaml:"fuzzy_threshold"`
		SearchLimit       int     `yaml:"search_limit"`
	} `yaml:"matching"`

	LLM struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"llm"`

	Worker struct {
		RefreshIntervalMin int `yaml:"refresh_interval_min"`
		BatchSize          int `yaml:"batch_size"`
	} `yaml:"worker"`

	// Seed credentials for the first admin account. Env only, never
	// stored in the config file.
	FirstAdminEmail    string `yaml:"-"`
	FirstAdminPassword string `yaml:"-"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
		cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Environment-driven mode (tests, containers)
	log.Println("Loading configuration from environment variables")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret
	cfg.JWT.TTL = 60

	cfg.Embedder.Endpoint = os.Getenv("EMBEDDER_ENDPOINT")
	cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedder.Dimensions == 0 {
		cfg.Embedder.Dimensions = 384
	}
	if cfg.Embedder.TimeoutSec == 0 {
		cfg.Embedder.TimeoutSec = 10
	}
	if cfg.Matching.CacheValidityDays == 0 {
		cfg.Matching.CacheValidityDays = 7
	}
	if cfg.Matching.FuzzyThreshold == 0 {
		cfg.Matching.FuzzyThreshold = 0.8
	}
	if cfg.Matching.SearchLimit == 0 {
		cfg.Matching.SearchLimit = 20
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.0-flash"
	}
	if cfg.Worker.RefreshIntervalMin == 0 {
		cfg.Worker.RefreshIntervalMin = 60
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = 50
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
