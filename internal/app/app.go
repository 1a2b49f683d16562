package app

import (
	"arcade_backend/internal/config"
	"arcade_backend/pkg/logger"
	"context"
	"net/http"

	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	logger.Init()

	err := config.Load(".env")
	if err != nil {
		logger.Warn("error loading .env file", zap.Error(err))
	}
	s.initServiceProvider()

	ctx := context.Background()
	r := s.ServiceProvider.Router(ctx)

	logger.Info("starting server", zap.String("address", s.ServiceProvider.HTTPCfg().Address()))
	err = http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
	if err != nil {
		return err
	}
	return err
}
