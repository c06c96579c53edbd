package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	APIPrefix string `env:"API_PREFIX" envDefault:"/api/v1"`
	JWTSecret string `env:"JWT_SECRET"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`

	// RabbitURL пустое значение отключает публикацию событий.
	RabbitURL string `env:"RABBITMQ_URL"`

	OpeningBalance decimal.Decimal `env:"OPENING_BALANCE" envDefault:"1000"`

	// PaymentTTL время жизни неоплаченного платежа. 0 отключает фоновую отмену.
	PaymentTTL     time.Duration `env:"PAYMENT_TTL" envDefault:"24h"`
	ExpireInterval time.Duration `env:"EXPIRE_INTERVAL" envDefault:"1m"`
	ExpireBatch    int           `env:"EXPIRE_BATCH" envDefault:"50"`
}

func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadConfig(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	// .env файл не обязателен
	_ = godotenv.Load()

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if err := loadFlags(&flagsConfig, args); err != nil {
		return nil, fmt.Errorf("parse flags: %s", err.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTSecret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	if conf.OpeningBalance.IsNegative() {
		return nil, errors.New("opening balance must not be negative")
	}
	if conf.ExpireBatch <= 0 {
		return nil, errors.New("expire batch must be positive")
	}
	return conf, nil
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("delivery", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")

	return fs.Parse(args)
}

// mergeConfig переменные окружения имеют приоритет над флагами.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	conf.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	return &conf
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
