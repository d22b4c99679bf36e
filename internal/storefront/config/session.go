package config

import (
	"strconv"
	"time"
)

// Поддерживаемые хранилища сессии.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// SessionConfig представляет настройки хранилища токенов.
type SessionConfig struct {
	Backend  string      `yaml:"backend" env:"STOREFRONT_SESSION_BACKEND" env-default:"file"`
	FilePath string      `yaml:"file_path" env:"STOREFRONT_SESSION_FILE" env-default:".storefront/session.json"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig представляет настройки redis для хранения сессии.
type RedisConfig struct {
	Host      string        `yaml:"host" env:"STOREFRONT_REDIS_HOST" env-default:"localhost"`
	Port      int           `yaml:"port" env:"STOREFRONT_REDIS_PORT" env-default:"6379"`
	Password  string        `yaml:"password" env:"STOREFRONT_REDIS_PASSWORD" env-default:""`
	DB        int           `yaml:"db" env:"STOREFRONT_REDIS_DB" env-default:"0"`
	PoolSize  int           `yaml:"pool_size" env:"STOREFRONT_REDIS_POOL_SIZE" env-default:"4"`
	Timeout   time.Duration `yaml:"timeout" env:"STOREFRONT_REDIS_TIMEOUT" env-default:"3s"`
	KeyPrefix string        `yaml:"key_prefix" env:"STOREFRONT_REDIS_KEY_PREFIX" env-default:"storefront:session:"`
}

// GetAddressString возвращает адрес redis строкой.
func (c *RedisConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
