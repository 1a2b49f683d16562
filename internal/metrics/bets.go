package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_bets_total",
			Help: "Total bets placed by game",
		},
		[]string{"game"},
	)

	WageredCoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_wagered_coins_total",
			Help: "Total coins wagered by game",
		},
		[]string{"game"},
	)

	PayoutCoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arcade_payout_coins_total",
			Help: "Total coins paid out by game",
		},
		[]string{"game"},
	)
)

// RecordBet - учитывает принятую ставку
func RecordBet(game string, amount int64) {
	BetsTotal.WithLabelValues(game).Inc()
	WageredCoins.WithLabelValues(game).Add(float64(amount))
}

// RecordPayout - учитывает выплату по результату раунда
func RecordPayout(game string, amount int64) {
	if amount <= 0 {
		return
	}
	PayoutCoins.WithLabelValues(game).Add(float64(amount))
}
