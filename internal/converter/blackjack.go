package converter

import (
	"arcade_backend/internal/api/dto/blackjack"
	"arcade_backend/internal/model"
)

func ToBlackjackDeal(req blackjack.DealRequest) model.BlackjackDeal {
	return model.BlackjackDeal{
		Bet: req.Bet,
	}
}

func ToBlackjackResponse(res model.BlackjackResult) blackjack.StateResponse {
	return blackjack.StateResponse{
		Hands:       res.Hands,
		Scores:      res.Scores,
		Bets:        res.Bets,
		ActiveHand:  res.ActiveHand,
		Dealer:      res.Dealer,
		DealerScore: res.DealerScore,
		Outcomes:    res.Outcomes,
		GameOver:    res.GameOver,
		Message:     res.Message,
		CoinsDelta:  res.CoinsDelta,
		Balance:     res.Balance,
	}
}
