package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type SlotsConfig interface {
	Symbols() []string
	Weights() []int
	TriplePayouts() map[string]int
	PairSymbol() string
	PairPayout() int
	SpoilerSymbol() string
}

type MinesConfig interface {
	Tiles() int
	MinMines() int
	MaxMines() int
}

type PlinkoConfig interface {
	Payouts() []int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Addr() string
	Password() string
	DB() int
	RoundTTL() time.Duration
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
