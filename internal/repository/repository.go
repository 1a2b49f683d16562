package repository

import (
	"arcade_backend/internal/model"
	"context"
)

// UserRepository - шлюз к балансу (ledger gateway) и учеткам пользователей.
// Debit/Credit - атомарные одиночные UPDATE, баланс никогда
// не читается-и-перезаписывается двумя запросами
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int64, error)
	// Debit - условное списание: проходит только если balance >= amount,
	// иначе model.ErrInsufficientFunds. Возвращает новый баланс
	Debit(ctx context.Context, id int, amount int64) (int64, error)
	// Credit - начисление. Возвращает новый баланс
	Credit(ctx context.Context, id int, amount int64) (int64, error)
}

// RoundRepository - key-value хранилище состояний раундов (session store).
// Ключ - пара (пользователь, игра): не больше одного раунда на игру
type RoundRepository interface {
	// Load - загрузка состояния. model.ErrNoRound если раунда нет
	Load(ctx context.Context, userID int, gameKey string) (*model.StoredRound, error)
	// Save - сохранение. expectedVersion == 0 начинает новый раунд
	// (перезаписывает что было), иначе compare-and-swap по версии:
	// model.ErrRoundConflict если состояние менял кто-то еще
	Save(ctx context.Context, userID int, gameKey string, data []byte, expectedVersion int64) error
	Clear(ctx context.Context, userID int, gameKey string) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}
