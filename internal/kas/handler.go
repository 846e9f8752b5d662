package kas

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
	CreateEntry(ctx context.Context, role auth.Role, dto CreateKasDTO) (*Kas, error)
	GetEntry(role auth.Role, id int64) (*Kas, error)
	ListEntries(role auth.Role, limit, offset int) ([]*Kas, error)
	ListMemberEntries(role auth.Role, userID int64, limit, offset int) ([]*Kas, error)
	UpdateEntry(ctx context.Context, role auth.Role, id int64, dto UpdateKasDTO) (*Kas, error)
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
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateKasDTO
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
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid kas entry ID")
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
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := transport.Pagination(r)

	var (
		entries []*Kas
		err     error
	)
	if memberStr := r.URL.Query().Get("user_id"); memberStr != "" {
		memberID, parseErr := strconv.ParseInt(memberStr, 10, 64)
		if parseErr != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		entries, err = h.Service.ListMemberEntries(actor.Role, memberID, limit, offset)
	} else {
		entries, err = h.Service.ListEntries(actor.Role, limit, offset)
	}

	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"kas":    entries,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid kas entry ID")
		return
	}

	var dto UpdateKasDTO
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
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid kas entry ID")
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
