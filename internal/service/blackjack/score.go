package blackjack

// Score - очки руки. Карты старше девятки дают 10 очков,
// каждый туз считается за 11, пока сумма не превышает 21
func Score(hand []int) int {
	score := 0
	aces := 0
	for _, card := range hand {
		v := card
		if v > 10 {
			v = 10
		}
		score += v
		if card == 1 {
			aces++
		}
	}

	for aces > 0 && score+10 <= 21 {
		score += 10
		aces--
	}

	return score
}
