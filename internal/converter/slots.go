package converter

import (
	"arcade_backend/internal/api/dto/slots"
	"arcade_backend/internal/model"
)

func ToSlotsSpin(req slots.SpinRequest) model.SlotsSpin {
	return model.SlotsSpin{
		Bet: req.Bet,
	}
}

func ToSlotsResponse(res model.SlotsResult) slots.SpinResponse {
	return slots.SpinResponse{
		Symbols:    res.Symbols,
		Payout:     res.Payout,
		Message:    res.Message,
		CoinsDelta: res.CoinsDelta,
		Balance:    res.Balance,
	}
}
