package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/config"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/handlers"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/middleware"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// New builds the HTTP API over store. ready, when set, backs /healthz.
func New(log zerolog.Logger, store repository.Store, cfg config.Config, ready func(context.Context) error) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	}))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.Error(w, http.StatusNotFound, "Route not found")
	})

	r.Get("/healthz", handlers.Health(ready))

	// Services + handlers
	verifier := service.CredentialVerifier{AllowPlaintext: cfg.AllowPlaintext}
	ah := handlers.NewAuthHTTP(log, service.NewAuthService(log, store.Users(), verifier, cfg.JWTSecret, cfg.TokenTTL))
	rh := handlers.NewRepairHTTP(log, service.NewRepairService(store))
	qh := handlers.NewRequestHTTP(log, service.NewRequestService(store))
	refs := service.NewReferenceService(store)
	fh := handlers.NewReferenceHTTP(log, refs)
	rsh := handlers.NewStatusHTTP(log, refs, models.RepairStatus)
	qsh := handlers.NewStatusHTTP(log, refs, models.RequestStatus)
	ph := handlers.NewReportsHTTP(log, service.NewReportService(store.Reports(), cfg.Reports))

	authn := middleware.Authenticate(log, cfg.JWTSecret)
	can := middleware.Require

	r.Post("/auth/login", ah.Login())
	r.With(authn).Get("/auth/me", ah.Me())

	r.Route("/api", func(r chi.Router) {
		r.Use(authn)

		r.Route("/repair", func(r chi.Router) {
			r.With(can(middleware.ViewTickets)).Get("/", rh.List())
			r.With(can(middleware.SubmitTickets)).Post("/", rh.Create())
			r.With(can(middleware.ViewTickets)).Get("/{id}", rh.Get())
			r.With(can(middleware.ManageTickets)).Put("/{id}", rh.Update())
			r.With(can(middleware.ManageTickets)).Delete("/{id}", rh.Delete())
		})

		r.Route("/request", func(r chi.Router) {
			r.With(can(middleware.ViewTickets)).Get("/", qh.List())
			r.With(can(middleware.SubmitTickets)).Post("/", qh.Create())
			r.With(can(middleware.ViewTickets)).Get("/{id}", qh.Get())
			r.With(can(middleware.ManageTickets)).Put("/{id}", qh.Update())
			r.With(can(middleware.ManageTickets)).Delete("/{id}", qh.Delete())
		})

		r.Route("/vendor", func(r chi.Router) {
			r.With(can(middleware.ViewReference)).Get("/", fh.ListVendors())
			r.With(can(middleware.ManageReference)).Post("/", fh.CreateVendor())
			r.With(can(middleware.ManageReference)).Put("/{id}", fh.UpdateVendor())
			r.With(can(middleware.ManageReference)).Delete("/{id}", fh.DeleteVendor())
		})

		r.Route("/department", func(r chi.Router) {
			r.With(can(middleware.ViewReference)).Get("/", fh.ListDepartments())
			r.With(can(middleware.ManageReference)).Post("/", fh.CreateDepartment())
			r.With(can(middleware.ManageReference)).Put("/{id}", fh.UpdateDepartment())
			r.With(can(middleware.ManageReference)).Delete("/{id}", fh.DeleteDepartment())
		})

		r.Route("/device", func(r chi.Router) {
			r.With(can(middleware.ViewReference)).Get("/", fh.ListCategories())
			r.With(can(middleware.ManageReference)).Post("/", fh.CreateCategory())
			r.With(can(middleware.ManageReference)).Put("/{id}", fh.UpdateCategory())
		})

		for path, h := range map[string]*handlers.StatusHTTP{"/repairStatus": rsh, "/requestStatus": qsh} {
			r.Route(path, func(r chi.Router) {
				r.With(can(middleware.ViewReference)).Get("/", h.List())
				r.With(can(middleware.ManageReference)).Post("/", h.Create())
				r.With(can(middleware.ManageReference)).Put("/{id}", h.Update())
				r.With(can(middleware.ManageReference)).Delete("/{id}", h.Delete())
			})
		}

		r.Route("/report", func(r chi.Router) {
			r.Use(can(middleware.ViewReports))
			r.Get("/reporttablerepair", ph.RepairTable())
			r.Get("/reporttablerequest", ph.RequestTable())
			r.Get("/repairsummary", ph.RepairSummary())
			r.Get("/requestsummary", ph.RequestSummary())
			r.Get("/devicecategorychart", ph.DeviceCategoryChart())
			r.Get("/requestmetric", ph.RequestMetric())
			r.Get("/repairmetric", ph.RepairMetric())
			r.Get("/departmentrequest", ph.DepartmentRequest())
			r.Get("/monthlyrepairs", ph.MonthlyRepairs())
			r.Get("/monthlyrequests", ph.MonthlyRequests())
			r.Get("/export.xlsx", ph.Export())
		})
	})

	return r
}
