package env

import (
	"arcade_backend/internal/config"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	redisAddrEnvName     = "REDIS_ADDR"
	redisPasswordEnvName = "REDIS_PASSWORD"
	redisDBEnvName       = "REDIS_DB"
	roundTTLEnvName      = "ROUND_TTL"

	defaultRoundTTL = 24 * time.Hour
)

type redisConfig struct {
	addr     string
	password string
	db       int
	roundTTL time.Duration
}

func NewRedisConfig() (config.RedisConfig, error) {
	addr := os.Getenv(redisAddrEnvName)
	if len(addr) == 0 {
		return nil, errors.New("redis addr not found")
	}

	db := 0
	if dbStr := os.Getenv(redisDBEnvName); len(dbStr) > 0 {
		parsed, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db: %w", err)
		}
		db = parsed
	}

	ttl := defaultRoundTTL
	if ttlStr := os.Getenv(roundTTLEnvName); len(ttlStr) > 0 {
		parsed, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid round ttl: %w", err)
		}
		ttl = parsed
	}

	return &redisConfig{
		addr:     addr,
		password: os.Getenv(redisPasswordEnvName),
		db:       db,
		roundTTL: ttl,
	}, nil
}

func (cfg *redisConfig) Addr() string {
	return cfg.addr
}

func (cfg *redisConfig) Password() string {
	return cfg.password
}

func (cfg *redisConfig) DB() int {
	return cfg.db
}

func (cfg *redisConfig) RoundTTL() time.Duration {
	return cfg.roundTTL
}
