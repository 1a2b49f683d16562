package slots

type SpinRequest struct {
	Bet int64 `json:"bet"` // Размер ставки (положительное целое, >0)
}

type SpinResponse struct {
	Symbols    [3]string `json:"symbols"`           // Выпавшие символы
	Payout     int64     `json:"payout"`            // Выплата
	Message    string    `json:"message,omitempty"` // Человекочитаемый итог
	CoinsDelta int64     `json:"coins_delta"`       // Изменение баланса за спин
	Balance    int64     `json:"balance"`           // Баланс после
}
