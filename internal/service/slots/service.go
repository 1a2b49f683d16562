package slots

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/gamerand"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	cfg       config.SlotsConfig
	userRepo  repository.UserRepository
	txManager trm.Manager
	rnd       *gamerand.Rand
}

// NewSlotsService Создать сервис слота 3x1
func NewSlotsService(
	cfg config.SlotsConfig,
	userRepo repository.UserRepository,
	txManager trm.Manager,
	rnd *gamerand.Rand,
) service.SlotsService {
	return &serv{
		cfg:       cfg,
		userRepo:  userRepo,
		txManager: txManager,
		rnd:       rnd,
	}
}
