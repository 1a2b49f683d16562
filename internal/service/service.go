package service

import (
	"arcade_backend/internal/model"
	"context"
)

type BlackjackService interface {
	Deal(ctx context.Context, deal model.BlackjackDeal) (*model.BlackjackResult, error)
	Hit(ctx context.Context) (*model.BlackjackResult, error)
	Stand(ctx context.Context) (*model.BlackjackResult, error)
	Double(ctx context.Context) (*model.BlackjackResult, error)
	Split(ctx context.Context) (*model.BlackjackResult, error)
	NewRound(ctx context.Context) error
	State(ctx context.Context) (*model.BlackjackResult, error)
}

type MinesService interface {
	Start(ctx context.Context, start model.MinesStart) (*model.MinesResult, error)
	Pick(ctx context.Context, tile int) (*model.MinesResult, error)
	CashOut(ctx context.Context) (*model.MinesResult, error)
	State(ctx context.Context) (*model.MinesResult, error)
}

type SlotsService interface {
	Spin(ctx context.Context, spinReq model.SlotsSpin) (*model.SlotsResult, error)
}

type PlinkoService interface {
	Drop(ctx context.Context, dropReq model.PlinkoDrop) (*model.PlinkoResult, error)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}

type WalletService interface {
	Deposit(ctx context.Context, amount int64) (newBalance int64, err error)
	Balance(ctx context.Context) (*model.WalletData, error)
}
