package app

import (
	authAPI "arcade_backend/internal/api/auth"
	blackjackAPI "arcade_backend/internal/api/blackjack"
	minesAPI "arcade_backend/internal/api/mines"
	plinkoAPI "arcade_backend/internal/api/plinko"
	slotsAPI "arcade_backend/internal/api/slots"
	walletAPI "arcade_backend/internal/api/wallet"
	"arcade_backend/internal/config"
	"arcade_backend/internal/config/env"
	"arcade_backend/internal/middleware"
	"arcade_backend/internal/repository"
	"arcade_backend/internal/repository/auth_repo"
	"arcade_backend/internal/repository/round_repo"
	"arcade_backend/internal/repository/user_repo"
	"arcade_backend/internal/service"
	"arcade_backend/internal/service/auth"
	"arcade_backend/internal/service/blackjack"
	"arcade_backend/internal/service/mines"
	"arcade_backend/internal/service/plinko"
	"arcade_backend/internal/service/slots"
	"arcade_backend/internal/service/wallet"
	"arcade_backend/pkg/gamerand"
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis (round store)
	redisConfig config.RedisConfig
	redisClient *redis.Client
	roundRepo   repository.RoundRepository

	// Auth bits
	jwtConfig config.JWTConfig
	authRepo  repository.AuthRepository
	authServ  service.AuthService
	authHand  *authAPI.Handler

	// User bits
	userRepo   repository.UserRepository
	walletServ service.WalletService
	walletHand *walletAPI.Handler

	// Общий источник случайности для всех игр
	rnd *gamerand.Rand

	// Blackjack bits
	blackjackServ service.BlackjackService
	blackjackHand *blackjackAPI.Handler

	// Mines bits
	minesCfg  config.MinesConfig
	minesServ service.MinesService
	minesHand *minesAPI.Handler

	// Slots bits
	slotsCfg  config.SlotsConfig
	slotsServ service.SlotsService
	slotsHand *slotsAPI.Handler

	// Plinko bits
	plinkoCfg  config.PlinkoConfig
	plinkoServ service.PlinkoService
	plinkoHand *plinkoAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) RedisConfig() config.RedisConfig {
	if sp.redisConfig == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisConfig = cfg
	}
	return sp.redisConfig
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		rdb := redis.NewClient(&redis.Options{
			Addr:     sp.RedisConfig().Addr(),
			Password: sp.RedisConfig().Password(),
			DB:       sp.RedisConfig().DB(),
		})
		err := rdb.Ping(ctx).Err()
		if err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtConfig == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtConfig = cfg
	}
	return sp.jwtConfig
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), trmpgx.DefaultCtxGetter)
	}
	return sp.userRepo
}

func (sp *ServiceProvider) RoundRepo(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		sp.roundRepo = round_repo.NewRoundRepository(sp.RedisClient(ctx), sp.RedisConfig().RoundTTL())
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) Rand() *gamerand.Rand {
	if sp.rnd == nil {
		sp.rnd = gamerand.New()
	}
	return sp.rnd
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTConfig())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(sp.AuthService(ctx))
	}
	return sp.authHand
}

func (sp *ServiceProvider) WalletService(ctx context.Context) service.WalletService {
	if sp.walletServ == nil {
		sp.walletServ = wallet.NewWalletService(sp.UserRepo(ctx))
	}
	return sp.walletServ
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(sp.WalletService(ctx))
	}
	return sp.walletHand
}

func (sp *ServiceProvider) BlackjackService(ctx context.Context) service.BlackjackService {
	if sp.blackjackServ == nil {
		sp.blackjackServ = blackjack.NewBlackjackService(sp.UserRepo(ctx), sp.RoundRepo(ctx), sp.Rand())
	}
	return sp.blackjackServ
}

func (sp *ServiceProvider) BlackjackHandler(ctx context.Context) *blackjackAPI.Handler {
	if sp.blackjackHand == nil {
		sp.blackjackHand = blackjackAPI.NewHandler(sp.BlackjackService(ctx))
	}
	return sp.blackjackHand
}

func (sp *ServiceProvider) MinesCfg() config.MinesConfig {
	if sp.minesCfg == nil {
		cfg, err := env.NewMinesConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get mines config: " + err.Error())
		}
		sp.minesCfg = cfg
	}
	return sp.minesCfg
}

func (sp *ServiceProvider) MinesService(ctx context.Context) service.MinesService {
	if sp.minesServ == nil {
		sp.minesServ = mines.NewMinesService(sp.MinesCfg(), sp.UserRepo(ctx), sp.RoundRepo(ctx), sp.Rand())
	}
	return sp.minesServ
}

func (sp *ServiceProvider) MinesHandler(ctx context.Context) *minesAPI.Handler {
	if sp.minesHand == nil {
		sp.minesHand = minesAPI.NewHandler(sp.MinesService(ctx))
	}
	return sp.minesHand
}

func (sp *ServiceProvider) SlotsCfg() config.SlotsConfig {
	if sp.slotsCfg == nil {
		cfg, err := env.NewSlotsConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get slots config: " + err.Error())
		}
		sp.slotsCfg = cfg
	}
	return sp.slotsCfg
}

func (sp *ServiceProvider) SlotsService(ctx context.Context) service.SlotsService {
	if sp.slotsServ == nil {
		sp.slotsServ = slots.NewSlotsService(sp.SlotsCfg(), sp.UserRepo(ctx), sp.TXManager(ctx), sp.Rand())
	}
	return sp.slotsServ
}

func (sp *ServiceProvider) SlotsHandler(ctx context.Context) *slotsAPI.Handler {
	if sp.slotsHand == nil {
		sp.slotsHand = slotsAPI.NewHandler(sp.SlotsService(ctx))
	}
	return sp.slotsHand
}

func (sp *ServiceProvider) PlinkoCfg() config.PlinkoConfig {
	if sp.plinkoCfg == nil {
		cfg, err := env.NewPlinkoConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get plinko config: " + err.Error())
		}
		sp.plinkoCfg = cfg
	}
	return sp.plinkoCfg
}

func (sp *ServiceProvider) PlinkoService(ctx context.Context) service.PlinkoService {
	if sp.plinkoServ == nil {
		sp.plinkoServ = plinko.NewPlinkoService(sp.PlinkoCfg(), sp.UserRepo(ctx), sp.TXManager(ctx), sp.Rand())
	}
	return sp.plinkoServ
}

func (sp *ServiceProvider) PlinkoHandler(ctx context.Context) *plinkoAPI.Handler {
	if sp.plinkoHand == nil {
		sp.plinkoHand = plinkoAPI.NewHandler(sp.PlinkoService(ctx))
	}
	return sp.plinkoHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints (без авторизации)
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Метрики prometheus
		r.Handle("/metrics", promhttp.Handler())

		// Игровые и кошельковые endpoints (только с access токеном)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTConfig()))

			walletHandler := sp.WalletHandler(ctx)
			rr.Route("/wallet", func(rw chi.Router) {
				rw.Post("/deposit", walletHandler.Deposit)
				rw.Get("/balance", walletHandler.Balance)
			})

			blackjackHandler := sp.BlackjackHandler(ctx)
			rr.Route("/blackjack", func(rb chi.Router) {
				rb.Post("/deal", blackjackHandler.Deal)
				rb.Post("/hit", blackjackHandler.Hit)
				rb.Post("/stand", blackjackHandler.Stand)
				rb.Post("/double", blackjackHandler.Double)
				rb.Post("/split", blackjackHandler.Split)
				rb.Post("/new-round", blackjackHandler.NewRound)
				rb.Get("/state", blackjackHandler.State)
			})

			minesHandler := sp.MinesHandler(ctx)
			rr.Route("/mines", func(rm chi.Router) {
				rm.Post("/start", minesHandler.Start)
				rm.Post("/pick", minesHandler.Pick)
				rm.Post("/cashout", minesHandler.CashOut)
				rm.Get("/state", minesHandler.State)
			})

			slotsHandler := sp.SlotsHandler(ctx)
			rr.Route("/slots", func(rs chi.Router) {
				rs.Post("/spin", slotsHandler.Spin)
			})

			plinkoHandler := sp.PlinkoHandler(ctx)
			rr.Route("/plinko", func(rp chi.Router) {
				rp.Post("/drop", plinkoHandler.Drop)
			})
		})

		sp.router = r
	}

	return sp.router
}
