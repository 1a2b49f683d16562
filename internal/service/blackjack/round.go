package blackjack

import (
	"arcade_backend/internal/metrics"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/model"
	"arcade_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Deal - начало раунда: валидация и списание ставки, раздача.
// Незавершенный предыдущий раунд закрывается с возвратом ставок
func (s *serv) Deal(ctx context.Context, deal model.BlackjackDeal) (*model.BlackjackResult, error) {
	if deal.Bet <= 0 {
		return nil, model.ErrInvalidWager
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	if err := s.refundAbandoned(ctx, userID); err != nil {
		return nil, err
	}

	// Списание ставки до раздачи
	balance, err := s.userRepo.Debit(ctx, userID, deal.Bet)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return nil, model.ErrInvalidWager
		}
		return nil, err
	}

	round := s.newRoundState(deal.Bet)

	if err := s.saveRound(ctx, userID, round, 0); err != nil {
		// Раунд не сохранился - ставка возвращается
		if _, cerr := s.userRepo.Credit(ctx, userID, deal.Bet); cerr != nil {
			logger.Error("failed to refund bet after save error",
				zap.Int("user_id", userID), zap.Error(cerr))
		}
		return nil, err
	}

	metrics.RecordBet(model.GameBlackjack, deal.Bet)

	return buildResult(round, 0, balance), nil
}

// Hit - одна карта в активную руку. Перебор передает ход
// следующей руке либо завершает раунд
func (s *serv) Hit(ctx context.Context) (*model.BlackjackResult, error) {
	userID, round, version, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	card, err := pop(&round.Deck)
	if err != nil {
		return s.abortExhausted(ctx, userID, round, version)
	}
	round.Hands[round.ActiveHand] = append(round.Hands[round.ActiveHand], card)

	if Score(round.Hands[round.ActiveHand]) > 21 {
		if len(round.Hands) > 1 {
			round.Message = fmt.Sprintf("hand %d busted", round.ActiveHand+1)
		}
		if err := s.advance(round); err != nil {
			return s.abortExhausted(ctx, userID, round, version)
		}
	}

	return s.commit(ctx, userID, round, version)
}

// Stand - ход переходит следующей руке либо раунд разыгрывается до конца
func (s *serv) Stand(ctx context.Context) (*model.BlackjackResult, error) {
	userID, round, version, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.advance(round); err != nil {
		return s.abortExhausted(ctx, userID, round, version)
	}

	return s.commit(ctx, userID, round, version)
}

// Double - удвоение ставки активной руки. Допустимо только на двух
// картах и при балансе, покрывающем доплату. Сдается ровно одна
// карта, ход передается принудительно
func (s *serv) Double(ctx context.Context) (*model.BlackjackResult, error) {
	userID, round, version, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	if len(round.Hands[round.ActiveHand]) != 2 {
		return nil, model.ErrIllegalAction
	}

	extra := round.Bets[round.ActiveHand]
	if _, err := s.userRepo.Debit(ctx, userID, extra); err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return nil, model.ErrIllegalAction
		}
		return nil, err
	}
	round.Bets[round.ActiveHand] *= 2

	card, err := pop(&round.Deck)
	if err != nil {
		return s.abortExhausted(ctx, userID, round, version)
	}
	round.Hands[round.ActiveHand] = append(round.Hands[round.ActiveHand], card)

	if err := s.advance(round); err != nil {
		return s.abortExhausted(ctx, userID, round, version)
	}

	metrics.RecordBet(model.GameBlackjack, extra)

	return s.commit(ctx, userID, round, version)
}

// Split - разделение пары равных (по 10-кэпу) карт на две руки
// с равной дополнительной ставкой. В каждую половину сдается одна
// карта, повторный сплит этой позиции запрещен
func (s *serv) Split(ctx context.Context) (*model.BlackjackResult, error) {
	userID, round, version, err := s.loadActive(ctx)
	if err != nil {
		return nil, err
	}

	hand := round.Hands[round.ActiveHand]
	if len(hand) != 2 || capped(hand[0]) != capped(hand[1]) || round.SplitUsed[round.ActiveHand] {
		return nil, model.ErrIllegalAction
	}

	extra := round.Bets[round.ActiveHand]
	if _, err := s.userRepo.Debit(ctx, userID, extra); err != nil {
		if errors.Is(err, model.ErrInsufficientFunds) {
			return nil, model.ErrIllegalAction
		}
		return nil, err
	}

	// Доплата входит в ставки сразу после списания: если колода
	// кончится на раздаче, возврат покроет и ее
	i := round.ActiveHand
	round.Bets = slices.Insert(round.Bets, i+1, extra)

	left := []int{hand[0]}
	right := []int{hand[1]}

	cardLeft, err := pop(&round.Deck)
	if err != nil {
		return s.abortExhausted(ctx, userID, round, version)
	}
	cardRight, err := pop(&round.Deck)
	if err != nil {
		return s.abortExhausted(ctx, userID, round, version)
	}
	left = append(left, cardLeft)
	right = append(right, cardRight)

	round.Hands[i] = left
	round.Hands = slices.Insert(round.Hands, i+1, right)
	round.SplitUsed[i] = true
	round.SplitUsed = slices.Insert(round.SplitUsed, i+1, true)

	metrics.RecordBet(model.GameBlackjack, extra)

	return s.commit(ctx, userID, round, version)
}

// NewRound - явный сброс раунда. Незавершенный раунд закрывается
// с возвратом ставок, состояние удаляется
func (s *serv) NewRound(ctx context.Context) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return errors.New("user id not found in context")
	}

	if err := s.refundAbandoned(ctx, userID); err != nil {
		return err
	}

	return s.roundRepo.Clear(ctx, userID, model.GameBlackjack)
}

// State - текущее состояние раунда без изменений
func (s *serv) State(ctx context.Context) (*model.BlackjackResult, error) {
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

// newRoundState - свежая перемешанная колода и начальная раздача.
// Колода и карты - часть состояния: при перезагрузке не пересдаются
func (s *serv) newRoundState(bet int64) *model.BlackjackRound {
	deck := make([]int, 0, 52)
	for i := 0; i < 4; i++ {
		deck = append(deck, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10)
	}
	s.rnd.Shuffle(deck)

	round := &model.BlackjackRound{
		Deck:      deck,
		Hands:     [][]int{nil},
		Bets:      []int64{bet},
		Dealer:    nil,
		SplitUsed: []bool{false},
		Phase:     model.BlackjackInProgress,
	}

	// Полная колода не может закончиться на начальной раздаче
	for i := 0; i < 2; i++ {
		card, _ := pop(&round.Deck)
		round.Hands[0] = append(round.Hands[0], card)
	}
	for i := 0; i < 2; i++ {
		card, _ := pop(&round.Deck)
		round.Dealer = append(round.Dealer, card)
	}

	return round
}

// advance - передача хода следующей руке; когда руки закончились,
// раунд разыгрывается и рассчитывается
func (s *serv) advance(round *model.BlackjackRound) error {
	round.ActiveHand++
	if round.ActiveHand < len(round.Hands) {
		return nil
	}
	return resolve(round)
}

// resolve - добор дилера и расчет. Дилер берет карты, только
// если хотя бы одна рука игрока не перебрала
func resolve(round *model.BlackjackRound) error {
	anyLive := false
	for _, hand := range round.Hands {
		if Score(hand) <= 21 {
			anyLive = true
			break
		}
	}
	if anyLive {
		if err := dealerDraw(round); err != nil {
			return err
		}
	}

	outcomes, _, _ := settle(round.Hands, round.Bets, round.Dealer)
	round.Outcomes = outcomes
	round.Phase = model.BlackjackResolved
	round.Message = summarize(outcomes)

	return nil
}

// commit - сохранение состояния и, если раунд только что завершился,
// ровно одно начисление выигрыша. Сначала CAS-запись: из конкурентных
// запросов рассчитать раунд сможет только один
func (s *serv) commit(ctx context.Context, userID int, round *model.BlackjackRound, version int64) (*model.BlackjackResult, error) {
	if err := s.saveRound(ctx, userID, round, version); err != nil {
		return nil, err
	}

	var credit, delta int64
	if round.Resolved() {
		_, credit, delta = settle(round.Hands, round.Bets, round.Dealer)
	}

	var balance int64
	var err error
	if credit > 0 {
		balance, err = s.userRepo.Credit(ctx, userID, credit)
	} else {
		balance, err = s.userRepo.GetBalance(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if credit > 0 {
		metrics.RecordPayout(model.GameBlackjack, credit)
	}

	return buildResult(round, delta, balance), nil
}

// abortExhausted - в колоде кончились карты посреди раунда:
// раунд закрывается с полным возвратом ставок
func (s *serv) abortExhausted(ctx context.Context, userID int, round *model.BlackjackRound, version int64) (*model.BlackjackResult, error) {
	round.Phase = model.BlackjackResolved
	round.Outcomes = nil
	round.Message = "Deck exhausted, bets refunded."

	if err := s.saveRound(ctx, userID, round, version); err != nil {
		return nil, err
	}

	balance, err := s.userRepo.Credit(ctx, userID, round.TotalStaked())
	if err != nil {
		return nil, err
	}

	logger.Warn("blackjack round aborted on exhausted deck",
		zap.Int("user_id", userID), zap.Int64("refund", round.TotalStaked()))

	return buildResult(round, 0, balance), nil
}

// refundAbandoned - закрывает брошенный незавершенный раунд
// с возвратом ставок. CAS-запись исключает двойной возврат
func (s *serv) refundAbandoned(ctx context.Context, userID int) error {
	stored, err := s.roundRepo.Load(ctx, userID, model.GameBlackjack)
	if err != nil {
		if errors.Is(err, model.ErrNoRound) {
			return nil
		}
		return err
	}

	var round model.BlackjackRound
	if err := json.Unmarshal(stored.Data, &round); err != nil {
		return fmt.Errorf("corrupt blackjack round state: %w", err)
	}
	if round.Resolved() {
		return nil
	}

	round.Phase = model.BlackjackResolved
	round.Message = "Round abandoned, bets refunded."
	if err := s.saveRound(ctx, userID, &round, stored.Version); err != nil {
		return err
	}

	if _, err := s.userRepo.Credit(ctx, userID, round.TotalStaked()); err != nil {
		return err
	}

	return nil
}

// loadRound - состояние раунда из round store
func (s *serv) loadRound(ctx context.Context) (int, *model.BlackjackRound, int64, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return 0, nil, 0, errors.New("user id not found in context")
	}

	stored, err := s.roundRepo.Load(ctx, userID, model.GameBlackjack)
	if err != nil {
		return 0, nil, 0, err
	}

	var round model.BlackjackRound
	if err := json.Unmarshal(stored.Data, &round); err != nil {
		return 0, nil, 0, fmt.Errorf("corrupt blackjack round state: %w", err)
	}

	return userID, &round, stored.Version, nil
}

// loadActive - то же, но действие по завершенному раунду недопустимо
func (s *serv) loadActive(ctx context.Context) (int, *model.BlackjackRound, int64, error) {
	userID, round, version, err := s.loadRound(ctx)
	if err != nil {
		return 0, nil, 0, err
	}
	if round.Resolved() {
		return 0, nil, 0, model.ErrIllegalAction
	}
	return userID, round, version, nil
}

func (s *serv) saveRound(ctx context.Context, userID int, round *model.BlackjackRound, version int64) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}
	return s.roundRepo.Save(ctx, userID, model.GameBlackjack, data, version)
}

// capped - ранг с учетом того, что все картинки равны десятке
func capped(card int) int {
	if card > 10 {
		return 10
	}
	return card
}

func buildResult(round *model.BlackjackRound, delta, balance int64) *model.BlackjackResult {
	scores := make([]int, len(round.Hands))
	for i, hand := range round.Hands {
		scores[i] = Score(hand)
	}

	return &model.BlackjackResult{
		Hands:       round.Hands,
		Scores:      scores,
		Bets:        round.Bets,
		ActiveHand:  round.ActiveHand,
		Dealer:      round.Dealer,
		DealerScore: Score(round.Dealer),
		Outcomes:    round.Outcomes,
		GameOver:    round.Resolved(),
		Message:     round.Message,
		CoinsDelta:  delta,
		Balance:     balance,
	}
}
