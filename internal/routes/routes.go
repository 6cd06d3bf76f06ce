// Package routes assembles the API router.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinledger/vinledger/internal/handler"
	"github.com/vinledger/vinledger/internal/middleware"
	"github.com/vinledger/vinledger/internal/router"
	"github.com/vinledger/vinledger/internal/telemetry"
)

// Deps carries everything the router needs.
type Deps struct {
	Reminders *handler.ReminderHandler
	Emails    *handler.EmailLogHandler
	Settings  *handler.SettingsHandler
	Metrics   *telemetry.Metrics
	Registry  *prometheus.Registry
	Logger    *slog.Logger
}

// New builds the full route table.
func New(deps Deps) *router.Router {
	r := router.New(
		middleware.RequestLogger(deps.Logger),
		middleware.Metrics(deps.Metrics),
	)

	r.Post("/api/reminders/send", deps.Reminders.Send)
	r.Post("/api/reminders/queue", deps.Reminders.Queue)
	r.Post("/api/reminders/probe", deps.Reminders.Probe)
	r.Post("/api/reminders/test", deps.Reminders.TestSend)

	r.Get("/api/emails", deps.Emails.List)

	r.Get("/api/settings", deps.Settings.Get)
	r.Put("/api/settings", deps.Settings.Update)
	r.Get("/api/branches", deps.Settings.Branches)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle(http.MethodGet, "/metrics",
		promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	return r
}
