package wallet

import (
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"
)

type serv struct {
	userRepo repository.UserRepository
}

// NewWalletService - конструктор сервиса кошелька
func NewWalletService(userRepo repository.UserRepository) service.WalletService {
	return &serv{
		userRepo: userRepo,
	}
}
