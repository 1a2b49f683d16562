package mines

import (
	"arcade_backend/internal/metrics"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Start - начало раунда: валидация и списание ставки, расстановка мин.
// Позиции мин генерируются один раз и сохраняются вместе с состоянием.
// Незавершенный предыдущий раунд закрывается с возвратом ставки
func (s *serv) Start(ctx context.Context, start model.MinesStart) (*model.MinesResult, error) {
	if start.Bet <= 0 {
		return nil, model.ErrInvalidWager
	}
	if start.MineCount < s.cfg.MinMines() || start.MineCount > s.cfg.MaxMines() {
		return nil, model.ErrIllegalAction
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	if err := s.refundAbandoned(ctx, userID); err != nil {
		return nil, err
	}

	// Списание ставки до расстановки мин
	balance, err := s.userRepo.Debit(ctx, userID, start.Bet)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return nil, model.ErrInvalidWager
		}
		return nil, err
	}

	mines := s.rnd.Sample(s.cfg.Tiles(), start.MineCount)
	sort.Ints(mines)

	round := &model.MinesRound{
		Bet:       start.Bet,
		Tiles:     s.cfg.Tiles(),
		MineCount: start.MineCount,
		Mines:     mines,
		Active:    true,
	}

	if err := s.saveRound(ctx, userID, round, 0); err != nil {
		// Раунд не сохранился - ставка возвращается
		if _, cerr := s.userRepo.Credit(ctx, userID, start.Bet); cerr != nil {
			logger.Error("failed to refund bet after save error",
				zap.Int("user_id", userID), zap.Error(cerr))
		}
		return nil, err
	}

	metrics.RecordBet(model.GameMines, start.Bet)

	return buildResult(round, 0, balance), nil
}

// Pick - открытие клетки. Повторное открытие той же клетки и ход
// по неактивному раунду - no-op без ошибки: повтор запроса
// не меняет состояние и не трогает баланс
func (s *serv) Pick(ctx context.Context, tile int) (*model.MinesResult, error) {
	userID, round, version, err := s.loadRound(ctx)
	if err != nil {
		return nil, err
	}

	if tile < 0 || tile >= round.Tiles {
		return nil, model.ErrIllegalAction
	}

	if !round.Active || round.IsRevealed(tile) {
		balance, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		return buildResult(round, 0, balance), nil
	}

	if round.IsMine(tile) {
		// Подрыв: раунд завершается проигрышем, выплаты нет
		round.Active = false
		if err := s.saveRound(ctx, userID, round, version); err != nil {
			return nil, err
		}

		balance, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			return nil, err
		}

		res := buildResult(round, -round.Bet, balance)
		res.HitMine = true
		res.HitTile = tile
		res.Message = "You hit a mine!"
		return res, nil
	}

	round.Revealed = append(round.Revealed, tile)
	if err := s.saveRound(ctx, userID, round, version); err != nil {
		return nil, err
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildResult(round, 0, balance), nil
}

// CashOut - забрать выигрыш по текущему множителю.
// Сначала CAS-запись завершенного состояния: рассчитать раунд
// сможет только один из конкурентных запросов
func (s *serv) CashOut(ctx context.Context) (*model.MinesResult, error) {
	userID, round, version, err := s.loadRound(ctx)
	if err != nil {
		return nil, err
	}
	if !round.Active {
		return nil, model.ErrIllegalAction
	}

	round.Active = false
	if err := s.saveRound(ctx, userID, round, version); err != nil {
		return nil, err
	}

	mult := Multiplier(round.Tiles, round.MineCount, len(round.Revealed))
	payout := Payout(round.Bet, mult)

	var balance int64
	if payout > 0 {
		balance, err = s.userRepo.Credit(ctx, userID, payout)
	} else {
		balance, err = s.userRepo.GetBalance(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if payout > 0 {
		metrics.RecordPayout(model.GameMines, payout)
	}

	res := buildResult(round, payout-round.Bet, balance)
	res.Payout = payout
	res.Message = fmt.Sprintf("Cashed out %d coins at %.2fx", payout, mult)
	return res, nil
}

// State - текущее состояние раунда без изменений
func (s *serv) State(ctx context.Context) (*model.MinesResult, error) {
	userID, round, _, err := s.loadRound(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildResult(round, 0, balance), nil
}

// refundAbandoned - закрывает брошенный активный раунд с возвратом
// ставки. CAS-запись исключает двойной возврат
func (s *serv) refundAbandoned(ctx context.Context, userID int) error {
	stored, err := s.roundRepo.Load(ctx, userID, model.GameMines)
	if err != nil {
		if errors.Is(err, model.ErrNoRound) {
			return nil
		}
		return err
	}

	var round model.MinesRound
	if err := json.Unmarshal(stored.Data, &round); err != nil {
		return fmt.Errorf("corrupt mines round state: %w", err)
	}
	if !round.Active {
		return nil
	}

	round.Active = false
	if err := s.saveRound(ctx, userID, &round, stored.Version); err != nil {
		return err
	}

	if _, err := s.userRepo.Credit(ctx, userID, round.Bet); err != nil {
		return err
	}

	return nil
}

func (s *serv) loadRound(ctx context.Context) (int, *model.MinesRound, int64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, nil, 0, errors.New("user id not found in context")
	}

	stored, err := s.roundRepo.Load(ctx, userID, model.GameMines)
	if err != nil {
		return 0, nil, 0, err
	}

	var round model.MinesRound
	if err := json.Unmarshal(stored.Data, &round); err != nil {
		return 0, nil, 0, fmt.Errorf("corrupt mines round state: %w", err)
	}

	return userID, &round, stored.Version, nil
}

func (s *serv) saveRound(ctx context.Context, userID int, round *model.MinesRound, version int64) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}
	return s.roundRepo.Save(ctx, userID, model.GameMines, data, version)
}

func buildResult(round *model.MinesRound, delta, balance int64) *model.MinesResult {
	res := &model.MinesResult{
		Tiles:      round.Tiles,
		MineCount:  round.MineCount,
		Revealed:   round.Revealed,
		Multiplier: Multiplier(round.Tiles, round.MineCount, len(round.Revealed)),
		GameOver:   !round.Active,
		CoinsDelta: delta,
		Balance:    balance,
	}
	// Позиции мин раскрываются только по завершении раунда
	if !round.Active {
		res.Mines = round.Mines
	}
	return res
}
