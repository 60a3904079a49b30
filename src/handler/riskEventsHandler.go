package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"agentcore/src/model"
	"agentcore/src/repository"
)

type riskEventCreator interface {
	Create(ctx context.Context, event *model.RiskEvent) error
}

type riskEventResolver interface {
	Resolve(ctx context.Context, id uint, now time.Time) (*model.RiskEvent, error)
}

type riskEventLister interface {
	FindUnresolved(ctx context.Context, severity string) ([]model.RiskEvent, error)
}

// CreateRiskEventHandler raises a new risk event against an agent.
func CreateRiskEventHandler(repo riskEventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.CreateRiskEventPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		event := payload.ToModel()
		if err := repo.Create(r.Context(), event); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, event)
	}
}

// ResolveRiskEventHandler marks an event resolved. The resolution timestamp
// always comes from the server clock; any resolved/resolved_at values in the
// request body are ignored.
func ResolveRiskEventHandler(repo riskEventResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid event id", http.StatusBadRequest)
			return
		}

		// drain the optional body; its fields are deliberately ignored
		var payload model.ResolveRiskEventPayload
		_ = json.NewDecoder(r.Body).Decode(&payload)

		event, err := repo.Resolve(r.Context(), uint(id), time.Now().UTC())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, event)
	}
}

// ListUnresolvedRiskEventsHandler lists open events, oldest first, optionally
// narrowed to one severity.
func ListUnresolvedRiskEventsHandler(repo riskEventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := repo.FindUnresolved(r.Context(), r.URL.Query().Get("severity"))
		if err != nil {
			logger.WithError(err).Error("failed to list unresolved risk events")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, events)
	}
}

// DefaultCreateRiskEventHandler wires the handler to the production repository implementation.
func DefaultCreateRiskEventHandler() http.HandlerFunc {
	return CreateRiskEventHandler(repository.NewRiskEventRepository())
}

// DefaultResolveRiskEventHandler wires the handler to the production repository implementation.
func DefaultResolveRiskEventHandler() http.HandlerFunc {
	return ResolveRiskEventHandler(repository.NewRiskEventRepository())
}

// DefaultListUnresolvedRiskEventsHandler wires the handler to the production repository implementation.
func DefaultListUnresolvedRiskEventsHandler() http.HandlerFunc {
	return ListUnresolvedRiskEventsHandler(repository.NewRiskEventRepository())
}
