package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eldermuller/dindin/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, tipo, descricao, valor, data, categoria_id, usuario_id, categoria_nome
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var kindStr string

	var categoryName sql.NullString

	if err := s.Scan(
		&tx.ID, &kindStr, &tx.Description, &tx.Amount, &tx.Date,
		&tx.CategoryID, &tx.OwnerID, &categoryName,
	); err != nil {
		return nil, err
	}

	tx.Kind = transaction.Kind(kindStr)
	tx.CategoryName = categoryName.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.tipo, t.descricao, t.valor, t.data, t.categoria_id, t.usuario_id,
	c.descricao as categoria_nome
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transacoes (descricao, valor, data, categoria_id, usuario_id, tipo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.CategoryID,
		tx.OwnerID,
		tx.Kind,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id, ownerID int64) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transacoes t
		LEFT JOIN categorias c ON t.categoria_id = c.id
		WHERE t.id = $1 AND t.usuario_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, ownerID int64) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transacoes t
		LEFT JOIN categorias c ON t.categoria_id = c.id
		WHERE t.usuario_id = $1`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// checkOwnership loads the target row's owner inside dbTx, locking the row
// until the enclosing transaction ends.
func checkOwnership(ctx context.Context, dbTx *sql.Tx, id, ownerID int64) error {
	var rowOwner int64

	err := dbTx.QueryRowContext(ctx,
		"SELECT usuario_id FROM transacoes WHERE id = $1 FOR UPDATE", id,
	).Scan(&rowOwner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("checking transaction ownership: %w", err)
	}

	if rowOwner != ownerID {
		return transaction.ErrForbidden
	}

	return nil
}

// UpdateTransaction replaces the row's fields. The existence and ownership
// checks run in the same database transaction as the write, so a concurrent
// delete cannot slip between check and mutation.
func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := checkOwnership(ctx, dbTx, tx.ID, tx.OwnerID); err != nil {
		return err
	}

	query := `
		UPDATE transacoes
		SET descricao = $1, valor = $2, data = $3, categoria_id = $4, usuario_id = $5, tipo = $6
		WHERE id = $7
	`

	if _, err := dbTx.ExecContext(ctx, query,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.CategoryID,
		tx.OwnerID,
		tx.Kind,
		tx.ID,
	); err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteTransaction removes the row permanently after the same atomic
// existence and ownership checks as UpdateTransaction.
func (s *Store) DeleteTransaction(ctx context.Context, id, ownerID int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := checkOwnership(ctx, dbTx, id, ownerID); err != nil {
		return err
	}

	if _, err := dbTx.ExecContext(ctx, "DELETE FROM transacoes WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) SumByKind(ctx context.Context, ownerID int64) (transaction.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(valor) FILTER (WHERE tipo = 'entrada'), 0),
			COALESCE(SUM(valor) FILTER (WHERE tipo = 'saida'), 0)
		FROM transacoes
		WHERE usuario_id = $1
	`

	var sum transaction.Summary
	if err := s.db.QueryRowContext(ctx, query, ownerID).Scan(&sum.Income, &sum.Expense); err != nil {
		return transaction.Summary{}, fmt.Errorf("summing transactions: %w", err)
	}

	return sum, nil
}
