package blackjack

type DealRequest struct {
	Bet int64 `json:"bet"` // Размер ставки (положительное целое, >0)
}

type StateResponse struct {
	Hands       [][]int  `json:"hands"`              // Карты игрока по рукам (после сплита рук две)
	Scores      []int    `json:"scores"`             // Очки каждой руки
	Bets        []int64  `json:"bets"`               // Ставка каждой руки
	ActiveHand  int      `json:"active_hand"`        // Индекс руки, ожидающей хода
	Dealer      []int    `json:"dealer"`             // Видимые карты дилера
	DealerScore int      `json:"dealer_score"`       // Очки видимых карт дилера
	Outcomes    []string `json:"outcomes,omitempty"` // Исход каждой руки (после расчета)
	GameOver    bool     `json:"game_over"`          // Раунд завершен
	Message     string   `json:"message,omitempty"`  // Человекочитаемый итог
	CoinsDelta  int64    `json:"coins_delta"`        // Изменение баланса за раунд
	Balance     int64    `json:"balance"`            // Баланс после
}
