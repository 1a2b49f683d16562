package wallet

type DepositRequest struct {
	Amount int64 `json:"amount"` // Сумма депозита
}

type BalanceResponse struct {
	Balance int64 `json:"balance"` // Баланс пользователя
}
