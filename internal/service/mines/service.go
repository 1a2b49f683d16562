package mines

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/gamerand"
)

type serv struct {
	cfg       config.MinesConfig
	userRepo  repository.UserRepository
	roundRepo repository.RoundRepository
	rnd       *gamerand.Rand
}

// NewMinesService Создать сервис минного поля
func NewMinesService(
	cfg config.MinesConfig,
	userRepo repository.UserRepository,
	roundRepo repository.RoundRepository,
	rnd *gamerand.Rand,
) service.MinesService {
	return &serv{
		cfg:       cfg,
		userRepo:  userRepo,
		roundRepo: roundRepo,
		rnd:       rnd,
	}
}
