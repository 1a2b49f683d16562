package blackjack

import (
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository/mocks"
	"arcade_backend/pkg/gamerand"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 1

func newTestService(t *testing.T, balance int64) (*serv, *mocks.UserRepo, *mocks.RoundRepo, context.Context) {
	t.Helper()

	userRepo := mocks.NewUserRepo()
	userRepo.SetBalance(testUserID, balance)
	roundRepo := mocks.NewRoundRepo()

	s := NewBlackjackService(userRepo, roundRepo, gamerand.NewSeeded(42)).(*serv)
	ctx := middleware.WithUserID(context.Background(), testUserID)

	return s, userRepo, roundRepo, ctx
}

func seedRound(t *testing.T, roundRepo *mocks.RoundRepo, round model.BlackjackRound) {
	t.Helper()

	data, err := json.Marshal(round)
	require.NoError(t, err)
	roundRepo.Seed(testUserID, model.GameBlackjack, data)
}

func TestDeal(t *testing.T) {
	t.Run("debits bet and deals two cards each", func(t *testing.T) {
		s, userRepo, _, ctx := newTestService(t, 1000)

		res, err := s.Deal(ctx, model.BlackjackDeal{Bet: 50})
		require.NoError(t, err)

		assert.Len(t, res.Hands, 1)
		assert.Len(t, res.Hands[0], 2)
		assert.Len(t, res.Dealer, 2)
		assert.False(t, res.GameOver)
		assert.Equal(t, int64(950), res.Balance)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(950), balance)
	})

	t.Run("rejects non-positive bet", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 1000)

		_, err := s.Deal(ctx, model.BlackjackDeal{Bet: 0})
		assert.ErrorIs(t, err, model.ErrInvalidWager)

		_, err = s.Deal(ctx, model.BlackjackDeal{Bet: -10})
		assert.ErrorIs(t, err, model.ErrInvalidWager)
	})

	t.Run("rejects bet above balance", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 30)

		_, err := s.Deal(ctx, model.BlackjackDeal{Bet: 50})
		assert.ErrorIs(t, err, model.ErrInvalidWager)
	})

	t.Run("refunds abandoned round before new deal", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{5, 6},
			Hands:     [][]int{{10, 5}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		_, err := s.Deal(ctx, model.BlackjackDeal{Bet: 100})
		require.NoError(t, err)

		// 950 + возврат 50 - новая ставка 100
		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(900), balance)
	})
}

func TestStand(t *testing.T) {
	t.Run("win pays one to one", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{5},
			Hands:     [][]int{{10, 10}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Stand(ctx)
		require.NoError(t, err)

		assert.True(t, res.GameOver)
		assert.Equal(t, []string{model.OutcomeWin}, res.Outcomes)
		assert.Equal(t, "You win!", res.Message)
		assert.Equal(t, int64(50), res.CoinsDelta)
		assert.Equal(t, int64(1050), res.Balance)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(1050), balance)
	})

	t.Run("push returns stake", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{5},
			Hands:     [][]int{{10, 9}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Stand(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{model.OutcomePush}, res.Outcomes)
		assert.Equal(t, int64(0), res.CoinsDelta)
		assert.Equal(t, int64(1000), res.Balance)
	})

	t.Run("dealer draws to seventeen", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{9},
			Hands:     [][]int{{10, 8}},
			Bets:      []int64{50},
			Dealer:    []int{10, 5},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Stand(ctx)
		require.NoError(t, err)

		// Дилер обязан брать на 15 и перебирает: 10+5+9=24
		assert.Equal(t, 24, res.DealerScore)
		assert.Equal(t, []string{model.OutcomeWin}, res.Outcomes)
	})
}

func TestHit(t *testing.T) {
	t.Run("bust resolves round", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{10},
			Hands:     [][]int{{10, 9}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Hit(ctx)
		require.NoError(t, err)

		assert.True(t, res.GameOver)
		assert.Equal(t, []string{model.OutcomeBusted}, res.Outcomes)
		assert.Equal(t, "You busted! Dealer wins.", res.Message)
		assert.Equal(t, int64(-50), res.CoinsDelta)
		assert.Equal(t, int64(950), res.Balance)
	})

	t.Run("safe card keeps round open", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{2},
			Hands:     [][]int{{10, 5}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Hit(ctx)
		require.NoError(t, err)

		assert.False(t, res.GameOver)
		assert.Equal(t, 17, res.Scores[0])
	})

	t.Run("exhausted deck refunds stakes", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      nil,
			Hands:     [][]int{{10, 5}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Hit(ctx)
		require.NoError(t, err)

		assert.True(t, res.GameOver)
		assert.Equal(t, "Deck exhausted, bets refunded.", res.Message)
		assert.Equal(t, int64(1000), res.Balance)
	})

	t.Run("illegal on resolved round", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 1000)
		seedRound(t, roundRepo, model.BlackjackRound{
			Hands:     [][]int{{10, 10}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackResolved,
		})

		_, err := s.Hit(ctx)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})

	t.Run("no round", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 1000)

		_, err := s.Hit(ctx)
		assert.ErrorIs(t, err, model.ErrNoRound)
	})
}

func TestDouble(t *testing.T) {
	t.Run("doubles bet and deals one card", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{10},
			Hands:     [][]int{{5, 6}},
			Bets:      []int64{50},
			Dealer:    []int{10, 10},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Double(ctx)
		require.NoError(t, err)

		// 5+6+10=21 против 20 дилера: удвоенная ставка платит 1:1
		assert.True(t, res.GameOver)
		assert.Equal(t, []string{model.OutcomeWin}, res.Outcomes)
		assert.Equal(t, []int64{100}, res.Bets)
		assert.Equal(t, int64(100), res.CoinsDelta)
		assert.Equal(t, int64(1100), res.Balance)
	})

	t.Run("illegal after hit", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{10},
			Hands:     [][]int{{5, 6, 2}},
			Bets:      []int64{50},
			Dealer:    []int{10, 10},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		_, err := s.Double(ctx)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})

	t.Run("illegal without funds for extra stake", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 20)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{10},
			Hands:     [][]int{{5, 6}},
			Bets:      []int64{50},
			Dealer:    []int{10, 10},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		_, err := s.Double(ctx)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})
}

func TestSplit(t *testing.T) {
	t.Run("splits pair into two hands", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{3, 2},
			Hands:     [][]int{{8, 8}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Split(ctx)
		require.NoError(t, err)

		assert.Equal(t, [][]int{{8, 2}, {8, 3}}, res.Hands)
		assert.Equal(t, []int64{50, 50}, res.Bets)
		assert.Equal(t, 0, res.ActiveHand)
		assert.False(t, res.GameOver)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(900), balance)
	})

	t.Run("ten and face card split as equal ranks", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{3, 2},
			Hands:     [][]int{{10, 10}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		_, err := s.Split(ctx)
		assert.NoError(t, err)
	})

	t.Run("illegal on unequal ranks", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{3, 2},
			Hands:     [][]int{{10, 5}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		_, err := s.Split(ctx)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})

	t.Run("exhausted deck refunds extra stake too", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 950)
		// Одной карты на две половины не хватит
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{3},
			Hands:     [][]int{{8, 8}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		res, err := s.Split(ctx)
		require.NoError(t, err)

		assert.True(t, res.GameOver)
		assert.Equal(t, "Deck exhausted, bets refunded.", res.Message)

		// Возврат покрывает и ставку раунда, и списанную доплату за сплит
		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(1000), balance)
	})

	t.Run("illegal twice on same position", func(t *testing.T) {
		s, _, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{3, 2},
			Hands:     [][]int{{8, 8}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{true},
			Phase:     model.BlackjackInProgress,
		})

		_, err := s.Split(ctx)
		assert.ErrorIs(t, err, model.ErrIllegalAction)
	})
}

func TestNewRound(t *testing.T) {
	t.Run("refunds stakes and clears state", func(t *testing.T) {
		s, userRepo, roundRepo, ctx := newTestService(t, 950)
		seedRound(t, roundRepo, model.BlackjackRound{
			Deck:      []int{5},
			Hands:     [][]int{{10, 5}},
			Bets:      []int64{50},
			Dealer:    []int{10, 9},
			SplitUsed: []bool{false},
			Phase:     model.BlackjackInProgress,
		})

		err := s.NewRound(ctx)
		require.NoError(t, err)

		balance, _ := userRepo.GetBalance(ctx, testUserID)
		assert.Equal(t, int64(1000), balance)

		_, err = roundRepo.Load(ctx, testUserID, model.GameBlackjack)
		assert.ErrorIs(t, err, model.ErrNoRound)
	})

	t.Run("no-op without round", func(t *testing.T) {
		s, _, _, ctx := newTestService(t, 1000)
		assert.NoError(t, s.NewRound(ctx))
	})
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
	userRepo.SetBalance(testUserID, 950)
	base := mocks.NewRoundRepo()
	s := NewBlackjackService(userRepo, &racingRoundRepo{RoundRepo: base}, gamerand.NewSeeded(42)).(*serv)
	ctx := middleware.WithUserID(context.Background(), testUserID)

	// Выигрышная рука: прошедший Stand начислил бы 100
	seedRound(t, base, model.BlackjackRound{
		Deck:      []int{5},
		Hands:     [][]int{{10, 10}},
		Bets:      []int64{50},
		Dealer:    []int{10, 9},
		SplitUsed: []bool{false},
		Phase:     model.BlackjackInProgress,
	})

	_, err := s.Stand(ctx)
	assert.ErrorIs(t, err, model.ErrRoundConflict)

	// Проигравший гонку запрос не двигает монеты
	balance, _ := userRepo.GetBalance(ctx, testUserID)
	assert.Equal(t, int64(950), balance)
}

func TestState(t *testing.T) {
	s, _, roundRepo, ctx := newTestService(t, 950)
	seedRound(t, roundRepo, model.BlackjackRound{
		Deck:      []int{5},
		Hands:     [][]int{{10, 5}},
		Bets:      []int64{50},
		Dealer:    []int{10, 9},
		SplitUsed: []bool{false},
		Phase:     model.BlackjackInProgress,
	})

	res, err := s.State(ctx)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{10, 5}}, res.Hands)
	assert.Equal(t, 15, res.Scores[0])
	assert.False(t, res.GameOver)
	assert.Equal(t, int64(950), res.Balance)
}
