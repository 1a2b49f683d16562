package mocks

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// TxManager - прозрачный trm.Manager для тестов: просто вызывает fn
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
