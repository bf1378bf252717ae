// config предоставляет структуру конфигурации newsdotai
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// Поверх прочитанного файла всегда накладываются ENV-переменные.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	DB       DBConfig       `yaml:"db"`
	NewsAPI  NewsAPIConfig  `yaml:"news_api"`
	Auth     AuthConfig     `yaml:"auth"`
	Limits   LimitsConfig   `yaml:"limits"`
	Sessions SessionsConfig `yaml:"sessions"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// TimeoutConfig — общий дедлайн обработки запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// HTTPConfig — публичный REST-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// NewsAPIConfig — внешний поисковый API новостей.
type NewsAPIConfig struct {
	BaseURL string `yaml:"base_url" env:"NEWS_API_BASE_URL" env-default:"https://newsdata.io/api/1/news"`
	// APIKey может отсутствовать: тогда живой поиск недоступен (ErrNotConfigured), mock-режим работает.
	APIKey string `yaml:"api_key" env:"NEWS_API_KEY"`
	// ViaProxy — BaseURL указывает на прокси, который сам подставляет ключ.
	ViaProxy      bool          `yaml:"via_proxy"      env:"NEWS_API_VIA_PROXY"      env-default:"false"`
	Timeout       time.Duration `yaml:"timeout"        env:"NEWS_API_TIMEOUT"        env-default:"10s"`
	// MaxConcurrent > 0 ограничивает число одновременных поисков, 0 снимает ограничение.
	MaxConcurrent int           `yaml:"max_concurrent" env:"NEWS_API_MAX_CONCURRENT" env-default:"0"`
}

// Configured сообщает, можно ли выполнять живой поиск.
func (n NewsAPIConfig) Configured() bool {
	if strings.TrimSpace(n.BaseURL) == "" {
		return false
	}

	return n.ViaProxy || strings.TrimSpace(n.APIKey) != ""
}

// AuthConfig — проверка токенов внешнего провайдера идентификации.
// Пустой JWTSecret отключает проверку.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	Issuer    string `yaml:"issuer"     env:"AUTH_ISSUER"`
}

// LimitsConfig — серверные лимиты на выдачу ленты.
// Запрос без limit возвращает ленту целиком; Max ограничивает только явный limit.
type LimitsConfig struct {
	Max int `yaml:"max" env:"MAX_LIMIT" env-default:"500"`
}

// SessionsConfig — хранение живых выдач (AggregationState) по пользователям.
type SessionsConfig struct {
	TTL time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"30m"`
	Max int           `yaml:"max" env:"SESSION_MAX" env-default:"1000"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch envPath := os.Getenv("CONFIG_PATH"); {
	case path != "":
		// 1) Явный путь.
		c, err = tryRead(path)
	case envPath != "":
		// 2) CONFIG_PATH.
		c, err = tryRead(envPath)
	default:
		// 3) ./local.yaml.
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			c, err = tryRead("local.yaml")
			break
		}

		// 4) Только ENV.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.NewsAPI.Timeout <= 0 {
		return fmt.Errorf("news_api.timeout must be > 0")
	}

	if c.NewsAPI.MaxConcurrent < 0 {
		return fmt.Errorf("news_api.max_concurrent must be >= 0")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}

	if c.Sessions.TTL < time.Minute {
		return fmt.Errorf("sessions.ttl must be at least 1m")
	}

	if c.Sessions.Max <= 0 {
		return fmt.Errorf("sessions.max must be > 0")
	}

	return nil
}
