package converter

import (
	"arcade_backend/internal/api/dto/plinko"
	"arcade_backend/internal/model"
)

func ToPlinkoDrop(req plinko.DropRequest) model.PlinkoDrop {
	return model.PlinkoDrop{
		Bet: req.Bet,
	}
}

func ToPlinkoResponse(res model.PlinkoResult) plinko.DropResponse {
	return plinko.DropResponse{
		Slot:       res.Slot,
		Multiplier: res.Multiplier,
		Payout:     res.Payout,
		CoinsDelta: res.CoinsDelta,
		Balance:    res.Balance,
	}
}
