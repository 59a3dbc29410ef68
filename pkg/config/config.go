package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Redis struct {
		Addr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
		Pass     string        `env:"REDIS_PASS"`
		DB       int           `env:"REDIS_DB" env-default:"0"`
		CacheTTL time.Duration `env:"REDIS_CACHE_TTL" env-default:"0"`
	}
	Elastic struct {
		Addr string `env:"ELASTIC_ADDR"`
	}
	Telegram struct {
		User    int64  `env:"TELEGRAM_USER"`
		Token   string `env:"TELEGRAM_TOKEN"`
		Channel string `env:"TELEGRAM_CHANNEL"`
	}
	Feed struct {
		ApiURL     string `env:"FEED_API_URL"`
		TrendsCron string `env:"TRENDS_REFRESH_CRON"`
		PageSize   int    `env:"FEED_PAGE_SIZE" env-default:"10"`
	}
	Premium struct {
		ChatIDs []int64 `env:"PREMIUM_CHAT_IDS" env-separator:","`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// IsPremium reports whether a chat is entitled to the advanced search facets.
func (c *Config) IsPremium(chatID int64) bool {
	for _, id := range c.Premium.ChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
