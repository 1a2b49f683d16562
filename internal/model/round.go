package model

// Ключи игр в round store
const (
	GameBlackjack = "blackjack"
	GameMines     = "mines"
)

// StoredRound - сериализованное состояние раунда с версией.
// Версия растет на единицу при каждом сохранении и служит
// для optimistic-проверки при конкурентных запросах одной сессии
type StoredRound struct {
	Data    []byte
	Version int64
}
