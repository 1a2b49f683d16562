package model

// Фазы раунда блэкджека
const (
	BlackjackInProgress = "in_progress"
	BlackjackResolved   = "resolved"
)

// Исходы руки при расчете против дилера
const (
	OutcomeWin    = "win"
	OutcomeLoss   = "loss"
	OutcomePush   = "push"
	OutcomeBusted = "busted"
)

// BlackjackRound - полное состояние раунда блэкджека.
// Сериализуется в JSON и хранится в round store между запросами,
// поэтому колода и все сданные карты - часть состояния, а не RNG
type BlackjackRound struct {
	Deck       []int    `json:"deck"`
	Hands      [][]int  `json:"hands"`
	Bets       []int64  `json:"bets"`
	ActiveHand int      `json:"active_hand"`
	Dealer     []int    `json:"dealer"`
	SplitUsed  []bool   `json:"split_used"`
	Outcomes   []string `json:"outcomes,omitempty"`
	Phase      string   `json:"phase"`
	Message    string   `json:"message"`
}

// Resolved - раунд завершен и рассчитан
func (r *BlackjackRound) Resolved() bool {
	return r.Phase == BlackjackResolved
}

// TotalStaked - сумма всех ставок раунда (для возврата при прерывании)
func (r *BlackjackRound) TotalStaked() int64 {
	var total int64
	for _, b := range r.Bets {
		total += b
	}
	return total
}

type BlackjackDeal struct {
	Bet int64
}

// BlackjackResult - результат действия, отдаваемый клиенту
type BlackjackResult struct {
	Hands       [][]int
	Scores      []int
	Bets        []int64
	ActiveHand  int
	Dealer      []int
	DealerScore int
	Outcomes    []string
	GameOver    bool
	Message     string
	CoinsDelta  int64
	Balance     int64
}
