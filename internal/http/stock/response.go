package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

type itemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	CriticalLevel decimal.Decimal `json:"critical_level"`
	Category      string          `json:"category"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func toItemResponse(item *stock.Item) itemResponse {
	return itemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Unit:          item.Unit,
		Quantity:      item.Quantity,
		CriticalLevel: item.CriticalLevel,
		Category:      item.Category,
		LowStock:      item.LowStock(),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func toItemResponseList(items []*stock.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toItemResponse(item)
	}

	return resp
}

type movementResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	Type        stock.Type      `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UserID      uuid.UUID       `json:"user_id"`
	UserName    string          `json:"user_name"`
	ProjectID   *uuid.UUID      `json:"project_id,omitempty"`
	ProjectName *string         `json:"project_name,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toMovementResponseList(movements []*stock.Movement) []movementResponse {
	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = movementResponse{
			ID:          m.ID,
			ItemID:      m.ItemID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UserID:      m.UserID,
			UserName:    m.UserName,
			ProjectID:   m.ProjectID,
			ProjectName: m.ProjectName,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		}
	}

	return resp
}
