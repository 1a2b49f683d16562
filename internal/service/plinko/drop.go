package plinko

import (
	"arcade_backend/internal/metrics"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"context"
	"errors"
)

const gameKey = "plinko"

// Drop - сброс шарика: номер лунки моделируется суммой
// независимых отскоков влево/вправо на каждом ряду колышков
func (s *serv) Drop(ctx context.Context, dropReq model.PlinkoDrop) (*model.PlinkoResult, error) {
	// Валидация ставки
	if dropReq.Bet <= 0 {
		return nil, model.ErrInvalidWager
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	payouts := s.cfg.Payouts()
	slot := s.rnd.Binomial(len(payouts) - 1)

	multiplier := 1
	if slot >= 0 && slot < len(payouts) {
		multiplier = payouts[slot]
	}
	payout := dropReq.Bet * int64(multiplier)

	// Инициализируем структуру для хранения результата сброса
	var res *model.PlinkoResult

	// Начало транзакции где выполняется процесс сброса
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Списание ставки
		balance, err := s.userRepo.Debit(txCtx, userID, dropReq.Bet)
		if err != nil {
			if errors.Is(err, model.ErrInsufficientFunds) {
				return model.ErrInvalidWager
			}
			return err
		}

		// Начисление выигрыша
		if payout > 0 {
			balance, err = s.userRepo.Credit(txCtx, userID, payout)
			if err != nil {
				return err
			}
		}

		res = &model.PlinkoResult{
			Slot:       slot,
			Multiplier: multiplier,
			Payout:     payout,
			CoinsDelta: payout - dropReq.Bet,
			Balance:    balance,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Обновляем статистику
	metrics.RecordBet(gameKey, dropReq.Bet)
	metrics.RecordPayout(gameKey, payout)

	return res, nil
}
