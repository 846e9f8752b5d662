package expense

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/transport"
	"github.com/mputra/treasury-management/pkg/logger"
)

type ServiceAPI interface {
	CreateEntry(ctx context.Context, role auth.Role, dto CreateExpenseDTO) (*Expense, error)
	GetEntry(role auth.Role, id int64) (*Expense, error)
	ListEntries(role auth.Role, limit, offset int) ([]*Expense, error)
	UpdateEntry(ctx context.Context, role auth.Role, id int64, dto UpdateExpenseDTO) (*Expense, error)
	DeleteEntry(role auth.Role, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateEntry(r.Context(), actor.Role, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	entry, err := h.Service.GetEntry(actor.Role, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := transport.Pagination(r)
	entries, err := h.Service.ListEntries(actor.Role, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"data":   entries,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateEntry(r.Context(), actor.Role, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.Service.DeleteEntry(actor.Role, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
