package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UOW struct {
	Pool *pgxpool.Pool
	Tx   pgx.Tx
}

func (u *UOW) Begin() (pgx.Tx, error) {
	tx, err := u.Pool.BeginTx(context.Background(), pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("can't begin tx, %v", err)
	}
	u.Tx = tx
	return u.Tx, nil
}

func (u *UOW) Commit() error {
	if u.Tx == nil {
		return fmt.Errorf("transaction is not started yet")
	}
	return u.Tx.Commit(context.Background())
}

func (u *UOW) Rollback() error {
	if u.Tx == nil {
		return fmt.Errorf("transaction is not started yet")
	}
	return u.Tx.Rollback(context.Background())
}

// Finalize commits the transaction when *errp is nil, rolls back otherwise.
// Meant to be deferred right after Begin.
func (u *UOW) Finalize(errp *error) {
	if u.Tx == nil {
		return
	}
	if *errp != nil {
		if err := u.Tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "err", err)
		}
		return
	}
	if err := u.Tx.Commit(context.Background()); err != nil {
		*errp = err
	}
}

type UOWFactory struct {
	Pool *pgxpool.Pool
}

func NewUoWFactory(pool *pgxpool.Pool) *UOWFactory {
	return &UOWFactory{
		Pool: pool,
	}
}

func (u *UOWFactory) GetUoW() *UOW {
	return &UOW{
		Pool: u.Pool,
	}
}
