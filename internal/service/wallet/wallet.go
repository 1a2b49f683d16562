package wallet

import (
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"context"
	"errors"
)

// Deposit - пополнение кошелька внутриигровыми монетами
func (s *serv) Deposit(ctx context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, model.ErrInvalidWager
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, errors.New("user id not found in context")
	}

	return s.userRepo.Credit(ctx, userID, amount)
}

// Balance - текущий баланс пользователя
func (s *serv) Balance(ctx context.Context) (*model.WalletData, error) {
	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.WalletData{Balance: balance}, nil
}
