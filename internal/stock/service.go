package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stock
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	UpdateItemMeta(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// ApplyMovement inserts the movement and adjusts the item balance in one
	// database transaction. A balance that would go negative rolls the whole
	// unit of work back and surfaces ErrInsufficientStock.
	ApplyMovement(ctx context.Context, m *Movement) (*Item, error)

	ListMovements(ctx context.Context, itemID uuid.UUID) ([]*Movement, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	FindItemsByName(ctx context.Context, names []string) (map[string]*Item, error)
	InsertItem(ctx context.Context, item *Item) error
	UpdateItemMeta(ctx context.Context, id uuid.UUID, category string, criticalLevel decimal.Decimal) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateItemParams struct {
	Name          string
	Unit          string
	Quantity      decimal.Decimal
	CriticalLevel decimal.Decimal
	Category      string
}

func (s *Service) CreateItem(ctx context.Context, params CreateItemParams) (*Item, error) {
	item := &Item{
		Name:          params.Name,
		Unit:          params.Unit,
		Quantity:      params.Quantity,
		CriticalLevel: params.CriticalLevel,
		Category:      params.Category,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) ListItems(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

type UpdateItemParams struct {
	Name          *string
	Unit          *string
	CriticalLevel *decimal.Decimal
	Category      *string
}

// UpdateItem edits item metadata. The balance is deliberately not editable
// here; it moves only through Apply.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, params UpdateItemParams) (*Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		item.Name = *params.Name
	}

	if params.Unit != nil {
		item.Unit = *params.Unit
	}

	if params.CriticalLevel != nil {
		item.CriticalLevel = *params.CriticalLevel
	}

	if params.Category != nil {
		item.Category = *params.Category
	}

	if err := s.repo.UpdateItemMeta(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}

type ApplyParams struct {
	ItemID      uuid.UUID
	UserID      uuid.UUID
	Type        Type
	Quantity    decimal.Decimal
	ProjectID   *uuid.UUID
	Description string
}

// Apply records one signed movement against an item and returns the item's
// new state. Either both the ledger entry and the balance change commit, or
// neither does.
func (s *Service) Apply(ctx context.Context, params ApplyParams) (*Item, error) {
	if !params.Type.Valid() {
		return nil, ErrInvalidType
	}

	if !params.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	m := &Movement{
		ItemID:      params.ItemID,
		UserID:      params.UserID,
		Type:        params.Type,
		Quantity:    params.Quantity,
		ProjectID:   params.ProjectID,
		Description: params.Description,
	}

	return s.repo.ApplyMovement(ctx, m)
}

// History returns an item's movements newest-first, enriched with the acting
// user's display name and the linked project's name.
func (s *Service) History(ctx context.Context, itemID uuid.UUID) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, itemID)
}

/// ImportItems upserts spreadsheet rows as one unit of work: unknown names are
// inserted with their full row (opening quantity included), known names get
// only category and critical level updated. Existing balances are never
// overwritten by an import. Returns the number of newly inserted items.
func (s *Service) ImportItems(ctx context.Context, rows []ItemRow) (int, error) {
	if len(rows) == 0 {
		return 0, ErrEmptyImport
	}

	rows = dedupeRows(rows)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.FindItemsByName(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("find existing items: %w", err)
	}

	inserted := 0

	for _, row := range rows {
		item, found := existing[row.Name]
		if found {
			if err := itx.UpdateItemMeta(ctx, item.ID, row.Category, row.CriticalLevel); err != nil {
				return 0, fmt.Errorf("update item %q: %w", row.Name, err)
			}

			continue
		}

		if err := itx.InsertItem(ctx, &Item{
			Name:          row.Name,
			Unit:          row.Unit,
			Quantity:      row.Quantity,
			CriticalLevel: row.CriticalLevel,
			Category:      row.Category,
		}); err != nil {
			return 0, fmt.Errorf("insert item %q: %w", row.Name, err)
		}

		inserted++
	}

	if err := itx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	return inserted, nil
}

// dedupeRows collapses rows sharing a name to the last occurrence, keeping
// first-seen order.
func dedupeRows(rows []ItemRow) []ItemRow {
	seen := make(map[string]int, len(rows))
	out := make([]ItemRow, 0, len(rows))

	for _, row := range rows {
		if idx, ok := seen[row.Name]; ok {
			out[idx] = row
			continue
		}

		seen[row.Name] = len(out)
		out = append(out, row)
	}

	return out
}
