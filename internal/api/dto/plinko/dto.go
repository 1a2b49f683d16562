package plinko

type DropRequest struct {
	Bet int64 `json:"bet"` // Размер ставки (положительное целое, >0)
}

type DropResponse struct {
	Slot       int   `json:"slot"`        // Лунка, в которую упал шарик
	Multiplier int   `json:"multiplier"`  // Множитель лунки
	Payout     int64 `json:"payout"`      // Выплата
	CoinsDelta int64 `json:"coins_delta"` // Изменение баланса за сброс
	Balance    int64 `json:"balance"`     // Баланс после
}
