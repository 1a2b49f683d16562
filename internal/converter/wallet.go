package converter

import (
	"arcade_backend/internal/api/dto/wallet"
	"arcade_backend/internal/model"
)

func ToBalanceResponse(data model.WalletData) wallet.BalanceResponse {
	return wallet.BalanceResponse{
		Balance: data.Balance,
	}
}
