package plinko

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/gamerand"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	cfg       config.PlinkoConfig
	userRepo  repository.UserRepository
	txManager trm.Manager
	rnd       *gamerand.Rand
}

// NewPlinkoService - конструктор сервиса плинко
func NewPlinkoService(cfg config.PlinkoConfig, userRepo repository.UserRepository, txManager trm.Manager, rnd *gamerand.Rand) service.PlinkoService {
	return &serv{
		cfg:       cfg,
		userRepo:  userRepo,
		txManager: txManager,
		rnd:       rnd,
	}
}
