package converter

import (
	"arcade_backend/internal/api/dto/mines"
	"arcade_backend/internal/model"
)

func ToMinesStart(req mines.StartRequest) model.MinesStart {
	return model.MinesStart{
		Bet:       req.Bet,
		MineCount: req.Mines,
	}
}

func ToMinesResponse(res model.MinesResult) mines.StateResponse {
	return mines.StateResponse{
		Tiles:      res.Tiles,
		Mines:      res.MineCount,
		Revealed:   res.Revealed,
		MineTiles:  res.Mines,
		Multiplier: res.Multiplier,
		Payout:     res.Payout,
		HitMine:    res.HitMine,
		HitTile:    res.HitTile,
		GameOver:   res.GameOver,
		Message:    res.Message,
		CoinsDelta: res.CoinsDelta,
		Balance:    res.Balance,
	}
}
