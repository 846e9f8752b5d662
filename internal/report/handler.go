package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/transport"
	"github.com/mputra/treasury-management/pkg/logger"
)

type ServiceAPI interface {
	CreateReport(ctx context.Context, role auth.Role, dto CreateReportDTO) (*MonthlyReport, error)
	GetReport(role auth.Role, id int64) (*MonthlyReport, error)
	ListReports(role auth.Role, limit, offset int) ([]*MonthlyReport, error)
	PreviewTotals(ctx context.Context, role auth.Role, start, end time.Time) (PeriodTotals, error)
	UpdateReport(ctx context.Context, role auth.Role, id int64, dto UpdateReportDTO) (*MonthlyReport, error)
	DeleteReport(role auth.Role, id int64) error
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

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rep, err := h.Service.CreateReport(r.Context(), actor.Role, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rep)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	rep, err := h.Service.GetReport(actor.Role, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, offset := transport.Pagination(r)
	reports, err := h.Service.ListReports(actor.Role, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]any{
		"data":   reports,
		"limit":  limit,
		"offset": offset,
	})
}

// PreviewTotals handles GET /reports/preview?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) PreviewTotals(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
		return
	}

	totals, err := h.Service.PreviewTotals(r.Context(), actor.Role, start, end)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, totals)
}

func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	var dto UpdateReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rep, err := h.Service.UpdateReport(r.Context(), actor.Role, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	if err := h.Service.DeleteReport(actor.Role, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
