package stock

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the direction of a stock movement.
type Type string

const (
	TypeIn  Type = "in"
	TypeOut Type = "out"
)

// Valid reports whether t is a known movement direction.
func (t Type) Valid() bool {
	return t == TypeIn || t == TypeOut
}

// Signed returns quantity with the sign implied by the movement direction.
func (t Type) Signed(quantity decimal.Decimal) decimal.Decimal {
	if t == TypeOut {
		return quantity.Neg()
	}

	return quantity
}

var (
	ErrNotFound          = errors.New("stock item not found")
	ErrDuplicateName     = errors.New("stock item with this name already exists")
	ErrInvalidQuantity   = errors.New("quantity must be a positive number")
	ErrInvalidType       = errors.New("movement type must be 'in' or 'out'")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyImport       = errors.New("import sheet contains no rows")
)

// Item is a trackable inventory entity with a running quantity balance.
//
// Quantity is a denormalized aggregate of the item's movements. The source of
// truth is the movement history; the balance is only ever written together
// with a movement insert inside one database transaction, or at first insert.
type Item struct {
	ID            uuid.UUID
	Name          string
	Unit          string
	Quantity      decimal.Decimal
	CriticalLevel decimal.Decimal
	Category      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// LowStock reports whether the balance has fallen to the critical level.
func (i *Item) LowStock() bool {
	return i.Quantity.LessThanOrEqual(i.CriticalLevel)
}

// Movement is one immutable ledger entry applied to an item.
type Movement struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	UserID      uuid.UUID
	Type        Type
	Quantity    decimal.Decimal
	ProjectID   *uuid.UUID
	Description string
	CreatedAt   time.Time

	// Loaded via JOIN on history reads.
	UserName    string
	ProjectName *string
}

// ItemRow is a normalized import row. Spreadsheet parsing resolves column
// aliases and defaults before anything touches the datastore.
type ItemRow struct {
	Name          string
	Category      string
	Quantity      decimal.Decimal
	Unit          string
	CriticalLevel decimal.Decimal
}
