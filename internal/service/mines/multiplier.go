package mines

import "github.com/shopspring/decimal"

// Multiplier - честный коэффициент выплаты: обратная вероятность
// открыть revealed клеток подряд на поле из tiles клеток
// с mines минами, не задев ни одной.
// Произведение (safe+mines-i)/(safe-i) по i < revealed,
// где safe = tiles - mines; не меньше 1.0 после первой
// открытой клетки
func Multiplier(tiles, mines, revealed int) float64 {
	safe := tiles - mines
	mult := 1.0
	for i := 0; i < revealed; i++ {
		mult *= float64(safe+mines-i) / float64(safe-i)
	}
	if revealed > 0 && mult < 1.0 {
		mult = 1.0
	}
	return mult
}

// Payout - выплата bet × multiplier, округленная вниз до целых монет
func Payout(bet int64, mult float64) int64 {
	return decimal.NewFromInt(bet).
		Mul(decimal.NewFromFloat(mult)).
		Floor().
		IntPart()
}
