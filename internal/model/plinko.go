package model

type PlinkoDrop struct {
	Bet int64
}

// PlinkoResult - результат одного сброса шарика
type PlinkoResult struct {
	Slot       int
	Multiplier int
	Payout     int64
	CoinsDelta int64
	Balance    int64
}
