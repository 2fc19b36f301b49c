package transport

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mzielinska/timetable-change-backend/internal/transport/handler"
	transportMiddleware "github.com/mzielinska/timetable-change-backend/internal/transport/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(
	changeRequestHandler *handler.ChangeRequestHandler,
	proposalHandler *handler.ProposalHandler,
	taskHandler *handler.TaskHandler,
	recommendationHandler *handler.RecommendationHandler,
	calendarHandler *handler.CalendarHandler,
	healthHandler *handler.HealthHandler,
	log *zap.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	// Recovery goes first so panics anywhere in the chain are handled
	router.Use(transportMiddleware.Recovery(log))

	// RequestID for tracing requests across log lines
	router.Use(middleware.RequestID)

	// Structured logging of every request
	router.Use(transportMiddleware.Logging(log))

	// Request deadline; matching is in-memory, only the store calls block
	router.Use(transportMiddleware.Timeout(500*time.Millisecond, log))

	// Prometheus counters and latency histograms
	router.Use(transportMiddleware.Metrics)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/changeRequests", func(r chi.Router) {
		r.Post("/create", changeRequestHandler.Create)
		r.Get("/get", changeRequestHandler.Get)
		r.Get("/list", changeRequestHandler.List)
		r.Post("/accept", changeRequestHandler.Accept)
		r.Post("/cancel", changeRequestHandler.Cancel)
	})

	router.Route("/proposals", func(r chi.Router) {
		r.Post("/create", proposalHandler.Create)
		r.Get("/list", proposalHandler.List)
		r.Get("/common", proposalHandler.Common)
		r.Post("/withdraw", proposalHandler.Withdraw)
	})

	router.Get("/tasks", taskHandler.ListTasks)

	router.Route("/recommendations", func(r chi.Router) {
		r.Post("/generate", recommendationHandler.Generate)
		r.Get("/list", recommendationHandler.List)
		r.Post("/clear", recommendationHandler.Clear)
	})

	router.Route("/calendar", func(r chi.Router) {
		r.Get("/slots", calendarHandler.DaySlots)
		r.Get("/events", calendarHandler.Events)
	})

	router.Get("/health", healthHandler.HealthCheck)
	return router
}
