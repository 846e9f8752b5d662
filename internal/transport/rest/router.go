package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mputra/treasury-management/internal/activity"
	"github.com/mputra/treasury-management/internal/auth"
	"github.com/mputra/treasury-management/internal/expense"
	"github.com/mputra/treasury-management/internal/income"
	"github.com/mputra/treasury-management/internal/kas"
	"github.com/mputra/treasury-management/internal/report"
	"github.com/mputra/treasury-management/internal/transport/middleware"
	"github.com/mputra/treasury-management/internal/transport/swagger"
	"github.com/mputra/treasury-management/internal/user"
)

// Handlers bundles every feature handler the router mounts. Nil entries
// are skipped so partial wiring in tests stays cheap.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Kas      *kas.Handler
	Income   *income.Handler
	Expense  *expense.Handler
	Activity *activity.Handler
	Report   *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware())

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Everything below requires a valid access token. Route-level
		// policy guards reject early; services re-check on every call.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.Kas != nil {
				pr.Route("/kas", func(kr chi.Router) {
					kr.With(middleware.RequirePolicy(auth.EntityKas, auth.ActionViewAny)).Get("/", h.Kas.ListEntries)
					kr.With(middleware.RequirePolicy(auth.EntityKas, auth.ActionView)).Get("/{id}", h.Kas.GetEntry)
					kr.With(middleware.RequirePolicy(auth.EntityKas, auth.ActionCreate)).Post("/", h.Kas.CreateEntry)
					kr.With(middleware.RequirePolicy(auth.EntityKas, auth.ActionUpdate)).Put("/{id}", h.Kas.UpdateEntry)
					kr.With(middleware.RequirePolicy(auth.EntityKas, auth.ActionDelete)).Delete("/{id}", h.Kas.DeleteEntry)
				})
			}

			if h.Income != nil {
				pr.Route("/incomes", func(ir chi.Router) {
					ir.With(middleware.RequirePolicy(auth.EntityIncome, auth.ActionViewAny)).Get("/", h.Income.ListEntries)
					ir.With(middleware.RequirePolicy(auth.EntityIncome, auth.ActionView)).Get("/{id}", h.Income.GetEntry)
					ir.With(middleware.RequirePolicy(auth.EntityIncome, auth.ActionCreate)).Post("/", h.Income.CreateEntry)
					ir.With(middleware.RequirePolicy(auth.EntityIncome, auth.ActionUpdate)).Put("/{id}", h.Income.UpdateEntry)
					ir.With(middleware.RequirePolicy(auth.EntityIncome, auth.ActionDelete)).Delete("/{id}", h.Income.DeleteEntry)
				})
			}

			if h.Expense != nil {
				pr.Route("/expenses", func(er chi.Router) {
					er.With(middleware.RequirePolicy(auth.EntityExpense, auth.ActionViewAny)).Get("/", h.Expense.ListEntries)
					er.With(middleware.RequirePolicy(auth.EntityExpense, auth.ActionView)).Get("/{id}", h.Expense.GetEntry)
					er.With(middleware.RequirePolicy(auth.EntityExpense, auth.ActionCreate)).Post("/", h.Expense.CreateEntry)
					er.With(middleware.RequirePolicy(auth.EntityExpense, auth.ActionUpdate)).Put("/{id}", h.Expense.UpdateEntry)
					er.With(middleware.RequirePolicy(auth.EntityExpense, auth.ActionDelete)).Delete("/{id}", h.Expense.DeleteEntry)
				})
			}

			if h.Activity != nil {
				pr.Route("/activities", func(ar chi.Router) {
					ar.With(middleware.RequirePolicy(auth.EntityActivity, auth.ActionViewAny)).Get("/", h.Activity.ListActivities)
					ar.With(middleware.RequirePolicy(auth.EntityActivity, auth.ActionView)).Get("/{id}", h.Activity.GetActivity)
					ar.With(middleware.RequirePolicy(auth.EntityActivity, auth.ActionCreate)).Post("/", h.Activity.CreateActivity)
					ar.With(middleware.RequirePolicy(auth.EntityActivity, auth.ActionUpdate)).Put("/{id}", h.Activity.UpdateActivity)
					ar.With(middleware.RequirePolicy(auth.EntityActivity, auth.ActionDelete)).Delete("/{id}", h.Activity.DeleteActivity)
				})
			}

			if h.User != nil {
				pr.Route("/members", func(mr chi.Router) {
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionViewAny)).Get("/", h.User.ListMembers)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionView)).Get("/{id}", h.User.GetMember)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionCreate)).Post("/", h.User.CreateMember)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionUpdate)).Put("/{id}", h.User.UpdateMember)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionUpdate)).Patch("/{id}/assignment", h.User.UpdateAssignment)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionDelete)).Delete("/{id}", h.User.DeleteMember)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionRestore)).Post("/{id}/restore", h.User.RestoreMember)
					mr.With(middleware.RequirePolicy(auth.EntityMember, auth.ActionForceDelete)).Delete("/{id}/force", h.User.ForceDeleteMember)
				})
			}

			if h.Report != nil {
				pr.Route("/reports", func(rr chi.Router) {
					rr.With(middleware.RequirePolicy(auth.EntityReport, auth.ActionViewAny)).Get("/", h.Report.ListReports)
					rr.With(middleware.RequirePolicy(auth.EntityReport, auth.ActionView)).Get("/preview", h.Report.PreviewTotals)
					rr.With(middleware.RequirePolicy(auth.EntityReport, auth.ActionView)).Get("/{id}", h.Report.GetReport)
					rr.With(middleware.RequirePolicy(auth.EntityReport, auth.ActionCreate)).Post("/", h.Report.CreateReport)
					rr.With(middleware.RequirePolicy(auth.EntityReport, auth.ActionUpdate)).Put("/{id}", h.Report.UpdateReport)
					rr.With(middleware.RequirePolicy(auth.EntityReport, auth.ActionDelete)).Delete("/{id}", h.Report.DeleteReport)
				})
			}
		})
	})
}
