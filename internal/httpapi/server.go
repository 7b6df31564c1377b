// Package httpapi wires the HTTP surface of HomeShare. It keeps handlers
// thin, delegating all business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/homeshare/internal/auth"
	"github.com/mmynk/homeshare/internal/middleware"
	"github.com/mmynk/homeshare/internal/service"
	"github.com/mmynk/homeshare/internal/storage"
)

// Server wires handlers and middleware using chi.
type Server struct {
	store      storage.Store
	authSvc    *service.AuthService
	expenseSvc *service.ExpenseService
	balanceSvc *service.BalanceService
	recurSvc   *service.RecurrenceService
	jwt        *auth.JWTManager
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
func New(store storage.Store, authSvc *service.AuthService, expenseSvc *service.ExpenseService,
	balanceSvc *service.BalanceService, recurSvc *service.RecurrenceService,
	jwt *auth.JWTManager, logger *slog.Logger) *Server {

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		store:      store,
		authSvc:    authSvc,
		expenseSvc: expenseSvc,
		balanceSvc: balanceSvc,
		recurSvc:   recurSvc,
		jwt:        jwt,
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Public
	s.rt.Post("/v1/auth/register", s.register)
	s.rt.Post("/v1/auth/login", s.login)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())

	// Authenticated
	s.rt.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.jwt))

		r.Post("/v1/households", s.createHousehold)
		r.Get("/v1/households/{id}", s.getHousehold)
		r.Post("/v1/households/{id}/members", s.addMember)
		r.Get("/v1/households/{id}/members", s.listMembers)

		r.Post("/v1/households/{id}/expenses", s.createExpense)
		r.Get("/v1/households/{id}/expenses", s.listExpenses)
		r.Get("/v1/expenses/{id}", s.getExpense)
		r.Put("/v1/expenses/{id}", s.updateExpense)
		r.Delete("/v1/expenses/{id}", s.deleteExpense)

		r.Post("/v1/households/{id}/settlements", s.createSettlement)
		r.Get("/v1/households/{id}/settlements", s.listSettlements)

		r.Get("/v1/households/{id}/balances", s.netBalances)
		r.Get("/v1/households/{id}/balances/{memberId}", s.pairwiseBalances)

		r.Post("/v1/households/{id}/tasks", s.createTask)
		r.Get("/v1/households/{id}/tasks", s.listTasks)
		r.Get("/v1/tasks/{id}", s.getTask)
		r.Put("/v1/tasks/{id}", s.updateTask)
		r.Patch("/v1/tasks/{id}/done", s.markTaskDone)
		r.Delete("/v1/tasks/{id}", s.deleteTask)

		r.Post("/v1/households/{id}/templates", s.createTemplate)
		r.Get("/v1/households/{id}/templates", s.listTemplates)
		r.Get("/v1/templates/{id}", s.getTemplate)
		r.Post("/v1/templates/run", s.runTemplates)
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
