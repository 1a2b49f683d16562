package blackjack

import (
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/gamerand"
)

type serv struct {
	userRepo  repository.UserRepository
	roundRepo repository.RoundRepository
	rnd       *gamerand.Rand
}

// NewBlackjackService Создать сервис блэкджека
func NewBlackjackService(
	userRepo repository.UserRepository,
	roundRepo repository.RoundRepository,
	rnd *gamerand.Rand,
) service.BlackjackService {
	return &serv{
		userRepo:  userRepo,
		roundRepo: roundRepo,
		rnd:       rnd,
	}
}
