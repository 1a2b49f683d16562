// Package gamerand - источник случайности для игровых сервисов.
// Все розыгрыши (перемешивание колоды, расстановка мин, символы слота)
// идут через Rand, чтобы тесты могли подменить seed
package gamerand

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var ErrInvalidConfiguration = errors.New("weights must sum to a positive number")

// Rand разделяется между обработчиками, методы безопасны для
// конкурентного вызова
type Rand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New - генератор со случайным seed для продакшена
func New() *Rand {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded - детерминированный генератор для тестов
func NewSeeded(seed int64) *Rand {
	return &Rand{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle - равномерная случайная перестановка среза на месте
func (r *Rand) Shuffle(seq []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rnd.Shuffle(len(seq), func(i, j int) {
		seq[i], seq[j] = seq[j], seq[i]
	})
}

// WeightedChoice - выбор символа по весам.
// Сумма весов должна быть положительной, иначе ErrInvalidConfiguration
func (r *Rand) WeightedChoice(symbols []string, weights []int) (string, error) {
	if len(symbols) != len(weights) {
		return "", ErrInvalidConfiguration
	}

	total := 0
	for _, w := range weights {
		if w < 0 {
			return "", ErrInvalidConfiguration
		}
		total += w
	}
	if total <= 0 {
		return "", ErrInvalidConfiguration
	}

	r.mu.Lock()
	num := r.rnd.Intn(total)
	r.mu.Unlock()
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if num < cumulative {
			return symbols[i], nil
		}
	}

	// Недостижимо при корректных весах
	return symbols[len(symbols)-1], nil
}

// Sample - k различных индексов из [0, n) без повторений
func (r *Rand) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	r.mu.Lock()
	perm := r.rnd.Perm(n)
	r.mu.Unlock()
	return perm[:k]
}

// Binomial - сумма n честных подбрасываний монеты.
// Моделирует падение шарика плинко через n рядов штырьков
func (r *Rand) Binomial(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for i := 0; i < n; i++ {
		if r.rnd.Intn(2) == 1 {
			count++
		}
	}
	return count
}
