package blackjack

import (
	"arcade_backend/internal/model"
	"fmt"
	"strings"
)

// Дилер добирает карты до 17 очков
const dealerStand = 17

// pop - снимает верхнюю карту колоды
func pop(deck *[]int) (int, error) {
	d := *deck
	if len(d) == 0 {
		return 0, model.ErrDeckExhausted
	}
	card := d[len(d)-1]
	*deck = d[:len(d)-1]
	return card, nil
}

// dealerDraw - добор дилера. Вызывается только когда
// есть хотя бы одна непроигранная рука игрока
func dealerDraw(round *model.BlackjackRound) error {
	for Score(round.Dealer) < dealerStand {
		card, err := pop(&round.Deck)
		if err != nil {
			return err
		}
		round.Dealer = append(round.Dealer, card)
	}
	return nil
}

// settle - чистый расчет раунда. По каждой руке определяет исход,
// возвращает сумму к начислению (проигранные ставки уже списаны
// при раздаче) и чистую дельту монет за раунд.
// Победа платит 1:1, ничья возвращает ставку
func settle(hands [][]int, bets []int64, dealer []int) (outcomes []string, credit int64, delta int64) {
	dealerScore := Score(dealer)
	outcomes = make([]string, len(hands))

	for i, hand := range hands {
		score := Score(hand)
		switch {
		case score > 21:
			outcomes[i] = model.OutcomeBusted
		case dealerScore > 21 || score > dealerScore:
			outcomes[i] = model.OutcomeWin
			credit += bets[i] * 2
		case score < dealerScore:
			outcomes[i] = model.OutcomeLoss
		default:
			outcomes[i] = model.OutcomePush
			credit += bets[i]
		}
	}

	var staked int64
	for _, b := range bets {
		staked += b
	}
	delta = credit - staked

	return outcomes, credit, delta
}

// summarize - итоговое сообщение для клиента
func summarize(outcomes []string) string {
	if len(outcomes) == 1 {
		switch outcomes[0] {
		case model.OutcomeWin:
			return "You win!"
		case model.OutcomePush:
			return "It's a tie!"
		case model.OutcomeBusted:
			return "You busted! Dealer wins."
		default:
			return "Dealer wins!"
		}
	}

	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprintf("hand %d: %s", i+1, o)
	}
	return strings.Join(parts, ", ")
}
