package activity

import (
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
	CreateActivity(role auth.Role, dto CreateActivityDTO) (*Activity, error)
	GetActivity(role auth.Role, id int64) (*Activity, error)
	ListActivities(role auth.Role, limit, offset int) ([]*Activity, error)
	UpdateActivity(role auth.Role, id int64, dto UpdateActivityDTO) (*Activity, error)
	DeleteActivity(role auth.Role, id int64) error
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

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	act, err := h.Service.CreateActivity(actor.Role, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, act)
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	act, err := h.Service.GetActivity(actor.Role, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, act)
}

func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := transport.Pagination(r)
	activities, err := h.Service.ListActivities(actor.Role, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"data":   activities,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	var dto UpdateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	act, err := h.Service.UpdateActivity(actor.Role, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, act)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if err := h.Service.DeleteActivity(actor.Role, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
