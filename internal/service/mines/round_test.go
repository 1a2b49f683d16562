package mines

import (
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository/mocks"
	"arcade_backend/pkg/gamerand"
	"arcade_backend/internal/metrics"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 1

type cfgStub struct{}

func (cfgStub) Tiles() int    { return 25 }
func (cfgStub) MinMines() int { return 1 }
func (cfgStub) MaxMines() int { return 24 }

func newTestService(t *testing.T, balance int64) (*serv, *mocks.UserRepo, *mocks.RoundRepo, context.Context) {
	t.Helper()

	userRepo := mocks.NewUserRepo()
	userRepo.SetBalance(testUserID, balance)
	roundRepo := mocks.NewRoundRepo()

	s := NewMinesService(cfgStub{}, userRepo, roundRepo, gamerand.NewSeeded(42)).(*serv)
	ctx := middleware.WithUserID(context.Background(), testUserID)

	return s, userRepo, roundRepo, ctx
}

func seedRound(t *testing.T, roundRepo *mocks.RoundRepo, round model.MinesRound) {
	t.Helper()

	data, err := json.Marshal(round)
	require.NoError(t, err)
	roundRepo.Seed(testUserID, model.GameMines, data)
}

// Мины на клетках 1..24: безопасна только клетка 0
func almostFullField(bet int64) model.MinesRound {
	mines := make([]int, 24)
	for i := range mines {
		mines[i] = i + 1
	}
	return model.MinesRound{
		Bet:       bet,
		Tiles:     25,
		MineCount: 24,
		Mines:     mines,
		Active:    true,
	}
}

func TestStart(t *testing.T) {
	t.Run("debits bet and hides mines", func(t *testing.T) {
		s, userRepo, _, ctx := newTestService(t, 1000)

		res, err := s.Start(ctx, model.MinesStart{Bet: 100, MineCount: 5})
		require.NoError(t, err)

		assert.Equal(t, 25, res.Tiles)
		assert.Equal(t, 5, res.MineCount)
		assert.Nil(t, res.Mines)
		assert.Equal(t, 1.0, res.Multiplier)
		assert.False(t, res.GameOver)
		assert.Equal(t, int64(900), res.Balance)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(900), balance)
	})

	t.Run("rejects non-positive bet", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 1000)

		_, err := s.Start(ctx, model.MinesStart{Bet: 0, MineCount: 5})
		assert.ErrorIs(t, err, model.ErrInvalidWager)
	})

	t.Run("rejects mine count out of bounds", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 1000)

		_, err := s.Start(ctx, model.MinesStart{Bet: 100, MineCount: 0})
		assert.ErrorIs(t, err, model.ErrIllegalAction)

		_, err = s.Start(ctx, model.MinesStart{Bet: 100, MineCount: 25})
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})

	t.Run("rejects bet above balance", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 50)

		_, err := s.Start(ctx, model.MinesStart{Bet: 100, MineCount: 5})
		assert.ErrorIs(t, err, model.ErrInvalidWager)
	})

	t.Run("refunds abandoned round before new start", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 900)
		seedRound(t, roundRepo, almostFullField(100))

		_, err := s.Start(ctx, model.MinesStart{Bet: 50, MineCount: 5})
		require.NoError(t, err)

		// 900 + возврат 100 - новая ставка 50
		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(950), balance)
	})
}

func TestPick(t *testing.T) {
	t.Run("safe tile raises multiplier", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 900)
		seedRound(t, roundRepo, almostFullField(100))

		res, err := s.Pick(ctx, 0)
		require.NoError(t, err)

		assert.Equal(t, []int{0}, res.Revealed)
		assert.InDelta(t, 25.0, res.Multiplier, 1e-9)
		assert.False(t, res.GameOver)
		assert.False(t, res.HitMine)
	})

	t.Run("mine ends round with loss", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 900)
		seedRound(t, roundRepo, almostFullField(100))

		res, err := s.Pick(ctx, 7)
		require.NoError(t, err)

		assert.True(t, res.HitMine)
		assert.Equal(t, 7, res.HitTile)
		assert.True(t, res.GameOver)
		assert.Equal(t, "You hit a mine!", res.Message)
		assert.Equal(t, int64(-100), res.CoinsDelta)
		assert.NotEmpty(t, res.Mines)

		// Баланс не меняется: ставка уже списана при старте
		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(900), balance)
	})

	t.Run("repeated pick is a no-op", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 900)
		seedRound(t, roundRepo, almostFullField(100))

		first, err := s.Pick(ctx, 0)
		require.NoError(t, err)
		second, err := s.Pick(ctx, 0)
		require.NoError(t, err)

		assert.Equal(t, first.Revealed, second.Revealed)
		assert.Equal(t, first.Multiplier, second.Multiplier)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(900), balance)
	})

	t.Run("pick on finished round returns state", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 900)
		round := almostFullField(100)
		round.Active = false
		seedRound(t, roundRepo, round)

		res, err := s.Pick(ctx, 0)
		require.NoError(t, err)

		assert.True(t, res.GameOver)
		assert.Empty(t, res.Revealed)
	})

	t.Run("rejects tile out of range", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 900)
		seedRound(t, roundRepo, almostFullField(100))

		_, err := s.Pick(ctx, -1)
		assert.ErrorIs(t, err, model.ErrIllegalAction)

		_, err = s.Pick(ctx, 25)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})

	t.Run("no round", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 900)

		_, err := s.Pick(ctx, 0)
		assert.ErrorIs(t, err, model.ErrNoRound)
	})
}

func TestCashOut(t *testing.T) {
	t.Run("pays bet times multiplier", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 900)
		round := almostFullField(100)
		round.Revealed = []int{0}
		seedRound(t, roundRepo, round)

		res, err := s.CashOut(ctx)
		require.NoError(t, err)

		assert.True(t, res.GameOver)
		assert.Equal(t, int64(2500), res.Payout)
		assert.Equal(t, int64(2400), res.CoinsDelta)
		assert.Equal(t, "Cashed out 2500 coins at 25.00x", res.Message)
		assert.Equal(t, int64(3400), res.Balance)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(3400), balance)
	})

	t.Run("failed credit is not counted as payout", func(t *testing.T) {
		userRepo := &failingCreditRepo{mocks.NewUserRepo()}
		userRepo.SetBalance(testUserID, 900)
		roundRepo := mocks.NewRoundRepo()
		s := NewMinesService(cfgStub{}, userRepo, roundRepo, gamerand.NewSeeded(42)).(*serv)
		ctx := middleware.WithUserID(context.Background(), testUserID)

		round := almostFullField(100)
		round.Revealed = []int{0}
		seedRound(t, roundRepo, round)

		before := testutil.ToFloat64(metrics.PayoutCoins.WithLabelValues(model.GameMines))

		_, err := s.CashOut(ctx)
		assert.Error(t, err)

		after := testutil.ToFloat64(metrics.PayoutCoins.WithLabelValues(model.GameMines))
		assert.Equal(t, before, after)
	})

	t.Run("illegal on finished round", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 900)
		round := almostFullField(100)
		round.Active = false
		seedRound(t, roundRepo, round)

		_, err := s.CashOut(ctx)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})

	t.Run("no round", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 900)

		_, err := s.CashOut(ctx)
		assert.ErrorIs(t, err, model.ErrNoRound)
	})
}

// failingCreditRepo - начисление всегда падает
type failingCreditRepo struct {
	*mocks.UserRepo
}

func (r *failingCreditRepo) Credit(_ context.Context, _ int, _ int64) (int64, error) {
	return 0, errors.New("ledger unavailable")
}

// racingRoundRepo - между load и save успевает сохраниться
// конкурирующий запрос, версия читателя устаревает
type racingRoundRepo struct {
	*mocks.RoundRepo
	once sync.Once
}

func (r *racingRoundRepo) Load(ctx context.Context, userID int, gameKey string) (*model.StoredRound, error) {
	stored, err := r.RoundRepo.Load(ctx, userID, gameKey)
	if err != nil {
		return nil, err
	}
	r.once.Do(func() {
		_ = r.RoundRepo.Save(ctx, userID, gameKey, stored.Data, stored.Version)
	})
	return stored, nil
}

func TestRoundConflict(t *testing.T) {
	userRepo := mocks.NewUserRepo()
	userRepo.SetBalance(testUserID, 900)
	base := mocks.NewRoundRepo()
	s := NewMinesService(cfgStub{}, userRepo, &racingRoundRepo{RoundRepo: base}, gamerand.NewSeeded(42)).(*serv)
	ctx := middleware.WithUserID(context.Background(), testUserID)

	// Прошедший CashOut начислил бы 2500
	round := almostFullField(100)
	round.Revealed = []int{0}
	data, err := json.Marshal(round)
	require.NoError(t, err)
	base.Seed(testUserID, model.GameMines, data)

	_, err = s.CashOut(ctx)
	assert.ErrorIs(t, err, model.ErrRoundConflict)

	// Проигравший гонку запрос не двигает монеты
	balance, _ := userRepo.GetBalance(ctx, testUserID)
	assert.Equal(t, int64(900), balance)
}

func TestState(t *testing.T) {
	s, _, roundRepo, ctx := newTestService(t, 900)
	round := almostFullField(100)
	round.Revealed = []int{0}
	seedRound(t, roundRepo, round)

	res, err := s.State(ctx)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, res.Revealed)
	assert.Nil(t, res.Mines)
	assert.False(t, res.GameOver)
	assert.Equal(t, int64(900), res.Balance)
}
