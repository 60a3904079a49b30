package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"

	"agentcore/src/handler"
)

// NewRouter builds the admin API routes. Split out from StartServer so tests
// can mount the full routing table without binding a port.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck write error")
		}
	})

	r.Route("/agents", func(r chi.Router) {
		r.Post("/", handler.DefaultCreateAgentHandler())
		r.Get("/", handler.DefaultListAgentsHandler())
		r.Get("/{id}", handler.DefaultGetAgentHandler())
		r.Put("/{id}/status", handler.DefaultUpdateAgentStatusHandler())
		r.Get("/{id}/metrics", handler.DefaultListAgentMetricsHandler())
		r.Post("/{id}/metrics/rollup", handler.DefaultRollupAgentMetricsHandler())
	})

	r.Route("/trades", func(r chi.Router) {
		r.Post("/", handler.DefaultCreateTradeHandler())
		r.Get("/", handler.DefaultSearchTradesHandler())
	})

	r.Route("/risk-events", func(r chi.Router) {
		r.Post("/", handler.DefaultCreateRiskEventHandler())
		r.Get("/", handler.DefaultListUnresolvedRiskEventsHandler())
		r.Post("/{id}/resolve", handler.DefaultResolveRiskEventHandler())
	})

	r.Route("/configurations", func(r chi.Router) {
		r.Get("/", handler.DefaultListConfigurationsHandler())
		r.Post("/", handler.DefaultCreateConfigurationHandler())
		r.Put("/value", handler.DefaultUpdateConfigurationValueHandler())
	})

	return r
}

func StartServer(port string) {
	config := GetConfig()
	if port == "" {
		port = config.Port
	}

	r := NewRouter()

	// Graceful server
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
