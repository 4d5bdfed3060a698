package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

const pgUniqueViolation = "23505"

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

const selectItemColumns = `id, name, unit, quantity, critical_level, category, created_at, updated_at`

// scanItem reads an item row from the scanner.
// Expected column order: id, name, unit, quantity, critical_level, category, created_at, updated_at
func scanItem(s scanner) (*stock.Item, error) {
	var item stock.Item

	var qty, critical string

	if err := s.Scan(
		&item.ID, &item.Name, &item.Unit, &qty, &critical, &item.Category,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error

	item.Quantity, err = decimal.NewFromString(qty)
	if err != nil {
		return nil, fmt.Errorf("parsing quantity: %w", err)
	}

	item.CriticalLevel, err = decimal.NewFromString(critical)
	if err != nil {
		return nil, fmt.Errorf("parsing critical level: %w", err)
	}

	return &item, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (s *Store) CreateItem(ctx context.Context, item *stock.Item) error {
	query := `
		INSERT INTO stock_items (name, unit, quantity, critical_level, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		item.Name,
		item.Unit,
		item.Quantity,
		item.CriticalLevel,
		item.Category,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return stock.ErrDuplicateName
		}

		return fmt.Errorf("creating stock item: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*stock.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM stock_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, stock.ErrNotFound
		}

		return nil, fmt.Errorf("getting stock item: %w", err)
	}

	return item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]*stock.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM stock_items ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing stock items: %w", err)
	}
	defer rows.Close()

	var items []*stock.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock items: %w", err)
	}

	return items, nil
}

// UpdateItemMeta writes metadata only. The quantity column is owned by
// ApplyMovement and is never touched here.
func (s *Store) UpdateItemMeta(ctx context.Context, item *stock.Item) error {
	query := `
		UPDATE stock_items
		SET name = $1, unit = $2, critical_level = $3, category = $4, updated_at = NOW()
		WHERE id = $5
	`

	_, err := s.db.ExecContext(ctx, query,
		item.Name,
		item.Unit,
		item.CriticalLevel,
		item.Category,
		item.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return stock.ErrDuplicateName
		}

		return fmt.Errorf("updating stock item: %w", err)
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting stock item: %w", err)
	}

	return nil
}

// ApplyMovement writes the ledger entry and the balance change as one database
// transaction: the history insert comes first, then a single atomic
// `quantity = quantity + delta` update. A negative returned balance aborts the
// whole unit of work, so neither the movement row nor the adjustment survives.
func (s *Store) ApplyMovement(ctx context.Context, m *stock.Movement) (*stock.Item, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertQuery := `
		INSERT INTO stock_movements (item_id, user_id, type, quantity, project_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		m.ItemID,
		m.UserID,
		m.Type,
		m.Quantity,
		m.ProjectID,
		nullableString(m.Description),
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting movement: %w", err)
	}

	updateQuery := `
		UPDATE stock_items
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + selectItemColumns

	delta := m.Type.Signed(m.Quantity)

	item, err := scanItem(dbTx.QueryRowContext(ctx, updateQuery, delta, m.ItemID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, stock.ErrNotFound
		}

		return nil, fmt.Errorf("adjusting balance: %w", err)
	}

	if item.Quantity.IsNegative() {
		return nil, stock.ErrInsufficientStock
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing movement: %w", err)
	}

	return item, nil
}

// scanMovement reads a movement row joined with the acting user and optional project.
// Expected column order: id, item_id, user_id, type, quantity, project_id, description, created_at, user_name, project_name
func scanMovement(s scanner) (*stock.Movement, error) {
	var m stock.Movement

	var typeStr, qty string

	var desc sql.NullString

	var projectName sql.NullString

	if err := s.Scan(
		&m.ID, &m.ItemID, &m.UserID, &typeStr, &qty, &m.ProjectID, &desc,
		&m.CreatedAt, &m.UserName, &projectName,
	); err != nil {
		return nil, err
	}

	m.Type = stock.Type(typeStr)
	m.Description = desc.String

	var err error

	m.Quantity, err = decimal.NewFromString(qty)
	if err != nil {
		return nil, fmt.Errorf("parsing quantity: %w", err)
	}

	if projectName.Valid {
		m.ProjectName = &projectName.String
	}

	return &m, nil
}

func (s *Store) ListMovements(ctx context.Context, itemID uuid.UUID) ([]*stock.Movement, error) {
	query := `
		SELECT m.id, m.item_id, m.user_id, m.type, m.quantity, m.project_id, m.description,
			m.created_at, u.name AS user_name, p.name AS project_name
		FROM stock_movements m
		JOIN users u ON m.user_id = u.id
		LEFT JOIN projects p ON m.project_id = p.id
		WHERE m.item_id = $1
		ORDER BY m.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*stock.Movement

	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return movements, nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (stock.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindItemsByName(ctx context.Context, names []string) (map[string]*stock.Item, error) {
	if len(names) == 0 {
		return map[string]*stock.Item{}, nil
	}

	placeholders := make([]string, len(names))
	args := make([]any, len(names))

	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = name
	}

	query := `SELECT ` + selectItemColumns + ` FROM stock_items WHERE name IN (` +
		strings.Join(placeholders, ", ") + `)`

	rows, err := itx.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding items by name: %w", err)
	}
	defer rows.Close()

	found := make(map[string]*stock.Item, len(names))

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}

		found[item.Name] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock items: %w", err)
	}

	return found, nil
}

func (itx *importTx) InsertItem(ctx context.Context, item *stock.Item) error {
	query := `
		INSERT INTO stock_items (name, unit, quantity, critical_level, category, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := itx.tx.QueryRowContext(ctx, query,
		item.Name,
		item.Unit,
		item.Quantity,
		item.CriticalLevel,
		item.Category,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	return nil
}

func (itx *importTx) UpdateItemMeta(ctx context.Context, id uuid.UUID, category string, criticalLevel decimal.Decimal) error {
	query := `
		UPDATE stock_items
		SET category = $1, critical_level = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := itx.tx.ExecContext(ctx, query, category, criticalLevel, id); err != nil {
		return fmt.Errorf("updating item metadata: %w", err)
	}

	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
