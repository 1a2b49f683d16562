package slots

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/metrics"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"context"
	"errors"
	"fmt"
)

const gameKey = "slots"

// Spin - один спин: списание ставки, розыгрыш трех символов,
// начисление выигрыша. Состояние между запросами не хранится,
// весь раунд живет внутри одной транзакции
func (s *serv) Spin(ctx context.Context, spinReq model.SlotsSpin) (*model.SlotsResult, error) {
	// Валидация ставки
	if spinReq.Bet <= 0 {
		return nil, model.ErrInvalidWager
	}

	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	// Три независимых розыгрыша по весам символов
	var symbols [3]string
	for i := range symbols {
		sym, err := s.rnd.WeightedChoice(s.cfg.Symbols(), s.cfg.Weights())
		if err != nil {
			return nil, err
		}
		symbols[i] = sym
	}

	payout := Settle(spinReq.Bet, symbols, s.cfg)

	// Инициализируем структуру для хранения результата спина
	var res *model.SlotsResult

	// Начало транзакции где выполняется процесс спина
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Списание ставки
		balance, err := s.userRepo.Debit(txCtx, userID, spinReq.Bet)
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

		res = &model.SlotsResult{
			Symbols:    symbols,
			Payout:     payout,
			CoinsDelta: payout - spinReq.Bet,
			Balance:    balance,
		}
		if payout > 0 {
			res.Message = fmt.Sprintf("You won %d coins!", payout)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Обновляем статистику
	metrics.RecordBet(gameKey, spinReq.Bet)
	metrics.RecordPayout(gameKey, payout)

	return res, nil
}

// Settle - чистый расчет выплаты по выпавшим символам.
// Точная тройка платит по таблице; ровно две вишни платят x2,
// но лимон в выпавшей тройке гасит парную выплату
func Settle(bet int64, symbols [3]string, cfg config.SlotsConfig) int64 {
	if symbols[0] == symbols[1] && symbols[1] == symbols[2] {
		if mult, ok := cfg.TriplePayouts()[symbols[0]]; ok {
			return bet * int64(mult)
		}
		return 0
	}

	pairs := 0
	spoiled := false
	for _, sym := range symbols {
		if sym == cfg.PairSymbol() {
			pairs++
		}
		if sym == cfg.SpoilerSymbol() {
			spoiled = true
		}
	}
	if pairs == 2 && !spoiled {
		return bet * int64(cfg.PairPayout())
	}

	return 0
}
