package model

type SlotsSpin struct {
	Bet int64
}

// SlotsResult - результат одного спина. Раунд не персистится:
// спин рассчитывается целиком в одном запросе
type SlotsResult struct {
	Symbols    [3]string
	Payout     int64
	Message    string
	CoinsDelta int64
	Balance    int64
}
