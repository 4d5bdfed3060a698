package stock

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FarukBas12/servistakip-sub000/internal/auth"
	"github.com/FarukBas12/servistakip-sub000/internal/importer"
	"github.com/FarukBas12/servistakip-sub000/internal/stock"
)

type Handler struct {
	svc       *stock.Service
	importSvc *importer.Service
}

func NewHandler(svc *stock.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/transaction", h.applyMovement)
	r.Post("/bulk", h.bulkImport)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/history", h.history)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponseList(items))
}

type createItemRequest struct {
	Name          string           `json:"name"`
	Unit          string           `json:"unit"`
	Quantity      decimal.Decimal  `json:"quantity"`
	CriticalLevel *decimal.Decimal `json:"critical_level,omitempty"`
	Category      string           `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	params := stock.CreateItemParams{
		Name:     req.Name,
		Unit:     req.Unit,
		Quantity: req.Quantity,
		Category: req.Category,
	}
	if req.CriticalLevel != nil {
		params.CriticalLevel = *req.CriticalLevel
	}

	item, err := h.svc.CreateItem(r.Context(), params)
	if err != nil {
		if errors.Is(err, stock.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

type updateItemRequest struct {
	Name          *string          `json:"name,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	CriticalLevel *decimal.Decimal `json:"critical_level,omitempty"`
	Category      *string          `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, stock.UpdateItemParams{
		Name:          req.Name,
		Unit:          req.Unit,
		CriticalLevel: req.CriticalLevel,
		Category:      req.Category,
	})
	if err != nil {
		if errors.Is(err, stock.ErrNotFound) {
			http.Error(w, "stock item not found", http.StatusNotFound)
			return
		}

		if errors.Is(err, stock.ErrDuplicateName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "stock item deleted"})
}

type applyMovementRequest struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Type        stock.Type      `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	ProjectID   *uuid.UUID      `json:"project_id,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (h *Handler) applyMovement(w http.ResponseWriter, r *http.Request) {
	var req applyMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.Apply(r.Context(), stock.ApplyParams{
		ItemID:      req.ItemID,
		UserID:      auth.UserIDFromContext(r.Context()),
		Type:        req.Type,
		Quantity:    req.Quantity,
		ProjectID:   req.ProjectID,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, stock.ErrInvalidQuantity),
			errors.Is(err, stock.ErrInvalidType),
			errors.Is(err, stock.ErrInsufficientStock):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, stock.ErrNotFound):
			http.Error(w, "stock item not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	movements, err := h.svc.History(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMovementResponseList(movements))
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) bulkImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(header.Filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inserted, err := h.svc.ImportItems(r.Context(), rows)
	if err != nil {
		if errors.Is(err, stock.ErrEmptyImport) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("import complete: %d new items", inserted),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
