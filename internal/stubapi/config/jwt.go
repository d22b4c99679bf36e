package config

import "time"

// JWTConfig содержит настройки токенов.
type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"STUBAPI_JWT_SECRET_KEY" env-default:"stub-secret-change-me"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"STUBAPI_JWT_ACCESS_TOKEN_TTL" env-default:"5m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"STUBAPI_JWT_REFRESH_TOKEN_TTL" env-default:"24h"`
	BCryptCost      int           `yaml:"bcrypt_cost" env:"STUBAPI_BCRYPT_COST" env-default:"10"`
}
