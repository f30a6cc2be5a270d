package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Slots SlotsConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	MigrationsPath string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SlotsConfig controls availability slot generation.
// MaximumGenerationDays is the horizon beyond which no slots are ever
// generated in advance; the leave cascade reuses the same horizon.
type SlotsConfig struct {
	MaximumGenerationDays int
	AutoGenerateInterval  time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	maxGenerationDays := viper.GetInt("SLOTS_MAX_GENERATION_DAYS")
	if maxGenerationDays == 0 {
		maxGenerationDays = 15
	}

	autoGenerateInterval, err := time.ParseDuration(viper.GetString("SLOTS_AUTO_GENERATE_INTERVAL"))
	if err != nil {
		autoGenerateInterval = 24 * time.Hour
	}

	migrationsPath := viper.GetString("DB_MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "db/migrations"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			Name:           viper.GetString("DB_NAME"),
			MigrationsPath: migrationsPath,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Slots: SlotsConfig{
			MaximumGenerationDays: maxGenerationDays,
			AutoGenerateInterval:  autoGenerateInterval,
		},
	}

	return config, nil
}
