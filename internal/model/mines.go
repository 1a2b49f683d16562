package model

// MinesRound - состояние раунда минного поля.
// Позиции мин генерируются один раз при старте и хранятся
// в round store, при перезагрузке раунда не пересоздаются
type MinesRound struct {
	Bet       int64 `json:"bet"`
	Tiles     int   `json:"tiles"`
	MineCount int   `json:"mine_count"`
	Mines     []int `json:"mines"`
	Revealed  []int `json:"revealed"`
	Active    bool  `json:"active"`
}

// IsMine - есть ли мина на клетке
func (r *MinesRound) IsMine(tile int) bool {
	for _, m := range r.Mines {
		if m == tile {
			return true
		}
	}
	return false
}

// IsRevealed - открыта ли уже клетка
func (r *MinesRound) IsRevealed(tile int) bool {
	for _, t := range r.Revealed {
		if t == tile {
			return true
		}
	}
	return false
}

type MinesStart struct {
	Bet       int64
	MineCount int
}

// MinesResult - результат действия, отдаваемый клиенту
type MinesResult struct {
	Tiles      int
	MineCount  int
	Revealed   []int
	Mines      []int // раскрываются только по завершении раунда
	Multiplier float64
	Payout     int64
	HitMine    bool
	HitTile    int
	GameOver   bool
	Message    string
	CoinsDelta int64
	Balance    int64
}
