package auth

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
}

// NewService - конструктор сервиса аутентификации
func NewService(txManager trm.Manager, userRepo repository.UserRepository, authRepo repository.AuthRepository, jwtConfig config.JWTConfig) service.AuthService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
	}
}

// generateSessionID - генерация уникального идентификатора сессии
func generateSessionID() string {
	return uuid.NewString()
}
