package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"tutorhub/internal/domain"
)

type txKey struct{}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn returns the transaction stored in ctx, or the pool when there is none.
func conn(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

type TxManager struct {
	db *pgxpool.Pool
}

func NewTransactor(db *pgxpool.Pool) Transactor {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return domain.NewConflict("слот уже занят другим бронированием", nil)
		}
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return nil
}

// LockTutor сериализует записи расписания и бронирований одного репетитора до конца транзакции.
func (m *TxManager) LockTutor(ctx context.Context, tutorID int64) error {
	if _, err := conn(ctx, m.db).Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, tutorID); err != nil {
		return fmt.Errorf("ошибка блокировки репетитора %d: %w", tutorID, err)
	}
	return nil
}

// exclusion_violation
const pgExclusionViolation = "23P01"

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("некорректное десятичное значение %q: %w", s, err)
	}
	return d, nil
}

func parseClock(s string) (domain.Clock, error) {
	c, err := domain.ParseClock(s)
	if err != nil {
		return 0, fmt.Errorf("некорректное время в базе %q: %w", s, err)
	}
	return c, nil
}
