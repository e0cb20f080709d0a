package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultTelegramAPIEndpoint = "https://api.telegram.org/bot%s/%s"

type Config struct {
	RunAddress          string `env:"RUN_ADDRESS"`
	DatabaseDSN         string `env:"DATABASE_URI"`
	MigrationsDir       string `env:"MIGRATIONS_DIR"`
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	ManagerChatID       int64  `env:"MANAGER_CHAT_ID"`
	TelegramAPIEndpoint string `env:"TELEGRAM_API_ENDPOINT"`
}

// String нужен, чтобы токен бота не попадал в лог при старте.
func (c Config) String() string {
	return fmt.Sprintf(
		"{RunAddress:%s DatabaseDSN:*** MigrationsDir:%s TelegramBotToken:%s ManagerChatID:%d TelegramAPIEndpoint:%s}",
		c.RunAddress, c.MigrationsDir, maskSecret(c.TelegramBotToken), c.ManagerChatID, c.TelegramAPIEndpoint,
	)
}

// LoadConfig читает .env (если есть), переменные окружения и флаги. Переменные окружения приоритетнее флагов.
func LoadConfig() (*Config, error) {
	if dotenvErr := godotenv.Load(); dotenvErr != nil && !errors.Is(dotenvErr, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", dotenvErr.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(flag.CommandLine, os.Args[1:], &flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is not set")
	}
	if c.TelegramBotToken == "" {
		return errors.New("telegram bot token is not set")
	}
	return nil
}

func loadFlags(fs *flag.FlagSet, args []string, flagConfig *Config) {
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.TelegramBotToken, "t", "", "Telegram bot token")
	fs.Int64Var(&flagConfig.ManagerChatID, "c", 0, "Manager chat id for order notifications, 0 disables them")
	fs.StringVar(&flagConfig.TelegramAPIEndpoint, "e", DefaultTelegramAPIEndpoint, "Telegram Bot API endpoint format")

	_ = fs.Parse(args)
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	chatID := envConfig.ManagerChatID
	if chatID == 0 {
		chatID = flagsConfig.ManagerChatID
	}
	return &Config{
		RunAddress:          defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:         defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:       defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		TelegramBotToken:    defaultIfBlank(envConfig.TelegramBotToken, flagsConfig.TelegramBotToken),
		ManagerChatID:       chatID,
		TelegramAPIEndpoint: defaultIfBlank(envConfig.TelegramAPIEndpoint, flagsConfig.TelegramAPIEndpoint),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func maskSecret(s string) string {
	if len(s) <= 4 { //nolint:mnd
		return "***"
	}
	return s[:4] + "***"
}
