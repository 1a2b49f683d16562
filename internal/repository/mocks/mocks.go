package mocks

import (
	"arcade_backend/internal/model"
	"context"
	"errors"
	"fmt"
	"sync"
)

// UserRepo - in-memory реализация repository.UserRepository для тестов
type UserRepo struct {
	mu       sync.Mutex
	nextID   int
	users    map[string]*model.User
	balances map[int]int64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		users:    make(map[string]*model.User),
		balances: make(map[int]int64),
	}
}

// SetBalance - выставить баланс пользователю напрямую
func (r *UserRepo) SetBalance(id int, balance int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[id] = balance
}

func (r *UserRepo) CreateUser(_ context.Context, user *model.User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Login]; ok {
		return 0, errors.New("login already taken")
	}

	r.nextID++
	u := *user
	u.ID = r.nextID
	r.users[user.Login] = &u
	r.balances[u.ID] = u.Balance

	return u.ID, nil
}

func (r *UserRepo) GetUserByLogin(_ context.Context, login string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[login]
	if !ok {
		return nil, errors.New("user not found")
	}
	copied := *u
	copied.Balance = r.balances[u.ID]
	return &copied, nil
}

func (r *UserRepo) GetBalance(_ context.Context, id int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[id], nil
}

func (r *UserRepo) Debit(_ context.Context, id int, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[id] < amount {
		return 0, model.ErrInsufficientFunds
	}
	r.balances[id] -= amount
	return r.balances[id], nil
}

func (r *UserRepo) Credit(_ context.Context, id int, amount int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.balances[id] += amount
	return r.balances[id], nil
}

// RoundRepo - in-memory реализация repository.RoundRepository для тестов.
// Повторяет семантику redis-реализации: версия 0 начинает раунд заново,
// ненулевая версия - compare-and-swap
type RoundRepo struct {
	mu     sync.Mutex
	rounds map[string]model.StoredRound
}

func NewRoundRepo() *RoundRepo {
	return &RoundRepo{
		rounds: make(map[string]model.StoredRound),
	}
}

func key(userID int, gameKey string) string {
	return fmt.Sprintf("%s:%d", gameKey, userID)
}

// Seed - подложить готовое состояние раунда
func (r *RoundRepo) Seed(userID int, gameKey string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds[key(userID, gameKey)] = model.StoredRound{Data: data, Version: 1}
}

func (r *RoundRepo) Load(_ context.Context, userID int, gameKey string) (*model.StoredRound, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rounds[key(userID, gameKey)]
	if !ok {
		return nil, model.ErrNoRound
	}
	copied := stored
	copied.Data = append([]byte(nil), stored.Data...)
	return &copied, nil
}

func (r *RoundRepo) Save(_ context.Context, userID int, gameKey string, data []byte, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(userID, gameKey)
	stored, ok := r.rounds[k]

	if expectedVersion == 0 {
		r.rounds[k] = model.StoredRound{Data: append([]byte(nil), data...), Version: 1}
		return nil
	}

	if !ok || stored.Version != expectedVersion {
		return model.ErrRoundConflict
	}

	r.rounds[k] = model.StoredRound{Data: append([]byte(nil), data...), Version: stored.Version + 1}
	return nil
}

func (r *RoundRepo) Clear(_ context.Context, userID int, gameKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rounds, key(userID, gameKey))
	return nil
}
