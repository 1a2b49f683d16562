package env

import (
	"arcade_backend/internal/config"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Схема config.yaml с настройками игр
type gamesFile struct {
	Slots struct {
		Symbols []struct {
			Symbol string `yaml:"symbol"`
			Weight int    `yaml:"weight"`
			Triple int    `yaml:"triple"`
		} `yaml:"symbols"`
		PairSymbol    string `yaml:"pair_symbol"`
		PairPayout    int    `yaml:"pair_payout"`
		SpoilerSymbol string `yaml:"spoiler_symbol"`
	} `yaml:"slots"`
	Mines struct {
		Tiles    int `yaml:"tiles"`
		MinMines int `yaml:"min_mines"`
		MaxMines int `yaml:"max_mines"`
	} `yaml:"mines"`
	Plinko struct {
		Payouts []int `yaml:"payouts"`
	} `yaml:"plinko"`
}

func loadGamesFile(path string) (*gamesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read games config: %w", err)
	}

	var f gamesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse games config: %w", err)
	}
	return &f, nil
}

type slotsConfig struct {
	symbols       []string
	weights       []int
	triples       map[string]int
	pairSymbol    string
	pairPayout    int
	spoilerSymbol string
}

func NewSlotsConfigFromYAML(path string) (config.SlotsConfig, error) {
	f, err := loadGamesFile(path)
	if err != nil {
		return nil, err
	}
	if len(f.Slots.Symbols) == 0 {
		return nil, errors.New("slots symbols not found in config")
	}

	cfg := &slotsConfig{
		triples:       make(map[string]int),
		pairSymbol:    f.Slots.PairSymbol,
		pairPayout:    f.Slots.PairPayout,
		spoilerSymbol: f.Slots.SpoilerSymbol,
	}
	// Порядок символов важен: детерминированный розыгрыш при заданном seed
	for _, s := range f.Slots.Symbols {
		cfg.symbols = append(cfg.symbols, s.Symbol)
		cfg.weights = append(cfg.weights, s.Weight)
		if s.Triple > 0 {
			cfg.triples[s.Symbol] = s.Triple
		}
	}
	return cfg, nil
}

func (cfg *slotsConfig) Symbols() []string           { return cfg.symbols }
func (cfg *slotsConfig) Weights() []int              { return cfg.weights }
func (cfg *slotsConfig) TriplePayouts() map[string]int { return cfg.triples }
func (cfg *slotsConfig) PairSymbol() string          { return cfg.pairSymbol }
func (cfg *slotsConfig) PairPayout() int             { return cfg.pairPayout }
func (cfg *slotsConfig) SpoilerSymbol() string       { return cfg.spoilerSymbol }

type minesConfig struct {
	tiles    int
	minMines int
	maxMines int
}

func NewMinesConfigFromYAML(path string) (config.MinesConfig, error) {
	f, err := loadGamesFile(path)
	if err != nil {
		return nil, err
	}
	if f.Mines.Tiles <= 0 {
		return nil, errors.New("mines tiles not found in config")
	}
	if f.Mines.MinMines <= 0 || f.Mines.MaxMines >= f.Mines.Tiles {
		return nil, errors.New("invalid mines bounds in config")
	}

	return &minesConfig{
		tiles:    f.Mines.Tiles,
		minMines: f.Mines.MinMines,
		maxMines: f.Mines.MaxMines,
	}, nil
}

func (cfg *minesConfig) Tiles() int    { return cfg.tiles }
func (cfg *minesConfig) MinMines() int { return cfg.minMines }
func (cfg *minesConfig) MaxMines() int { return cfg.maxMines }

type plinkoConfig struct {
	payouts []int
}

func NewPlinkoConfigFromYAML(path string) (config.PlinkoConfig, error) {
	f, err := loadGamesFile(path)
	if err != nil {
		return nil, err
	}
	if len(f.Plinko.Payouts) == 0 {
		return nil, errors.New("plinko payouts not found in config")
	}

	return &plinkoConfig{payouts: f.Plinko.Payouts}, nil
}

func (cfg *plinkoConfig) Payouts() []int { return cfg.payouts }
