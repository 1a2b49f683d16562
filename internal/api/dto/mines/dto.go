package mines

type StartRequest struct {
	Bet   int64 `json:"bet"`   // Размер ставки (положительное целое, >0)
	Mines int   `json:"mines"` // Количество мин на поле
}

type PickRequest struct {
	Tile int `json:"tile"` // Индекс клетки [0, tiles)
}

type StateResponse struct {
	Tiles      int     `json:"tiles"`              // Размер поля
	Mines      int     `json:"mines"`              // Количество мин
	Revealed   []int   `json:"revealed"`           // Открытые безопасные клетки
	MineTiles  []int   `json:"mine_tiles,omitempty"` // Позиции мин (только по завершении)
	Multiplier float64 `json:"multiplier"`         // Текущий множитель
	Payout     int64   `json:"payout"`             // Выплата (при кэшауте)
	HitMine    bool    `json:"hit_mine"`           // Подорвался
	HitTile    int     `json:"hit_tile"`           // Клетка с миной, если подорвался
	GameOver   bool    `json:"game_over"`          // Раунд завершен
	Message    string  `json:"message,omitempty"`  // Человекочитаемый итог
	CoinsDelta int64   `json:"coins_delta"`        // Изменение баланса за раунд
	Balance    int64   `json:"balance"`            // Баланс после
}
