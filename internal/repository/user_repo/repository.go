package user_repo

import (
	"arcade_backend/internal/model"
	"arcade_backend/internal/repository"
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "users"
	colID           = "id"
	colName         = "name"
	colLogin        = "login"
	colPasswordHash = "password_hash"
	colBalance      = "balance"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateUser - создает нового пользователя в БД.
// Возвращает ID созданного пользователя
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colName, colLogin, colPasswordHash, colBalance).
		Values(user.Name, user.Login, user.Password, user.Balance).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetUserByLogin - возвращает модель пользователя (ID, Name, Login, Password, Balance) по его логину
func (r *repo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colLogin, colPasswordHash, colBalance).
		From(table).
		Where(sq.Eq{colLogin: login}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.Name, &user.Login, &user.Password, &user.Balance)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID
// Возвращает баланс пользователя
func (r *repo) GetBalance(ctx context.Context, id int) (int64, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	return balance, nil
}

// Debit - атомарное списание монет одним условным UPDATE.
// Проходит только если balance >= amount: параллельное списание
// по тому же аккаунту не потеряет обновление
func (r *repo) Debit(ctx context.Context, id int, amount int64) (int64, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" - ?", amount)).
		Where(sq.Eq{colID: id}).
		Where(sq.Expr(colBalance+" >= ?", amount)).
		Suffix("RETURNING " + colBalance).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Условие balance >= amount не выполнилось
			return 0, model.ErrInsufficientFunds
		}
		return 0, err
	}

	return balance, nil
}

// Credit - атомарное начисление монет одним UPDATE
func (r *repo) Credit(ctx context.Context, id int, amount int64) (int64, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, sq.Expr(colBalance+" + ?", amount)).
		Where(sq.Eq{colID: id}).
		Suffix("RETURNING " + colBalance).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}
