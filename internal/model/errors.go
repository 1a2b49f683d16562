package model

import "errors"

// Ошибки игрового ядра. Сервисы возвращают их как есть,
// API-слой переводит в HTTP-статусы.
var (
	// ErrInvalidWager - ставка меньше либо равна нулю или превышает баланс.
	// Отклоняется до любых изменений состояния
	ErrInvalidWager = errors.New("invalid wager")

	// ErrIllegalAction - действие недопустимо для текущего состояния раунда
	// (сплит без пары, ход по завершенному раунду и т.п.). Состояние не меняется
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientFunds - недостаточно монет для списания
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNoRound - активный раунд для пользователя не найден
	ErrNoRound = errors.New("no active round")

	// ErrRoundConflict - состояние раунда изменилось между load и save.
	// Действие не применено, клиент может повторить запрос
	ErrRoundConflict = errors.New("round state conflict")

	// ErrDeckExhausted - в колоде закончились карты посреди раунда.
	// Раунд прерывается с возвратом всех ставок
	ErrDeckExhausted = errors.New("deck exhausted")
)
