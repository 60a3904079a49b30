package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"agentcore/src/controller"
	"agentcore/src/model"
	"agentcore/src/repository"
)

type metricReader interface {
	FindByAgent(ctx context.Context, agentID uint) ([]model.PerformanceMetric, error)
}

type metricRoller interface {
	RollupDay(ctx context.Context, agentID uint, at time.Time) (*model.PerformanceMetric, error)
}

// ListAgentMetricsHandler returns an agent's performance rollups, newest
// period first.
func ListAgentMetricsHandler(repo metricReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid agent id", http.StatusBadRequest)
			return
		}

		metrics, err := repo.FindByAgent(r.Context(), uint(id))
		if err != nil {
			logger.WithError(err).Error("failed to list agent metrics")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

// RollupAgentMetricsHandler aggregates the agent's executed trades for the
// UTC day given by ?day= (RFC3339 date, default today) into a stored rollup.
func RollupAgentMetricsHandler(roller metricRoller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid agent id", http.StatusBadRequest)
			return
		}

		at := time.Now().UTC()
		if dayParam := r.URL.Query().Get("day"); dayParam != "" {
			parsed, err := time.Parse("2006-01-02", dayParam)
			if err != nil {
				http.Error(w, "invalid day", http.StatusBadRequest)
				return
			}
			at = parsed
		}

		metric, err := roller.RollupDay(r.Context(), uint(id), at)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, metric)
	}
}

// DefaultListAgentMetricsHandler wires the handler to the production repository implementation.
func DefaultListAgentMetricsHandler() http.HandlerFunc {
	return ListAgentMetricsHandler(repository.NewMetricRepository())
}

// DefaultRollupAgentMetricsHandler wires the handler to the production controller implementation.
func DefaultRollupAgentMetricsHandler() http.HandlerFunc {
	return RollupAgentMetricsHandler(controller.NewMetricsController())
}
