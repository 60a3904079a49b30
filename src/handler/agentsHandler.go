package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"agentcore/src/model"
	"agentcore/src/repository"
)

type agentCreator interface {
	Create(ctx context.Context, agent *model.TradingAgent) error
}

type agentReader interface {
	FindByID(ctx context.Context, id uint) (*model.TradingAgent, error)
	FindAll(ctx context.Context) ([]model.TradingAgent, error)
}

type agentStatusUpdater interface {
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// agentResponse decorates the stored agent with its derived fields.
type agentResponse struct {
	model.TradingAgent
	WinRate float64 `json:"win_rate"`
	Active  bool    `json:"active"`
}

func toAgentResponse(agent *model.TradingAgent) agentResponse {
	return agentResponse{
		TradingAgent: *agent,
		WinRate:      agent.WinRate(),
		Active:       agent.IsActive(),
	}
}

// CreateAgentHandler registers a new trading agent. Field violations come
// back as 422 with every violation listed; a duplicate name is a 409.
func CreateAgentHandler(repo agentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.CreateAgentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		agent := payload.ToModel()
		if err := repo.Create(r.Context(), agent); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAgentResponse(agent))
	}
}

// GetAgentHandler returns a single agent with its derived win rate.
func GetAgentHandler(repo agentReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid agent id", http.StatusBadRequest)
			return
		}

		agent, err := repo.FindByID(r.Context(), uint(id))
		if err != nil {
			logger.WithError(err).Error("failed to fetch agent")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if agent == nil {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAgentResponse(agent))
	}
}

// ListAgentsHandler returns every agent ordered by ID.
func ListAgentsHandler(repo agentReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agents, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list agents")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		responses := make([]agentResponse, 0, len(agents))
		for i := range agents {
			responses = append(responses, toAgentResponse(&agents[i]))
		}

		writeJSON(w, http.StatusOK, responses)
	}
}

// UpdateAgentStatusHandler transitions an agent to a new status.
func UpdateAgentStatusHandler(repo agentStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid agent id", http.StatusBadRequest)
			return
		}

		var payload struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := repo.UpdateStatus(r.Context(), uint(id), payload.Status); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DefaultCreateAgentHandler wires the handler to the production repository implementation.
func DefaultCreateAgentHandler() http.HandlerFunc {
	return CreateAgentHandler(repository.NewAgentRepository())
}

// DefaultGetAgentHandler wires the handler to the production repository implementation.
func DefaultGetAgentHandler() http.HandlerFunc {
	return GetAgentHandler(repository.NewAgentRepository())
}

// DefaultListAgentsHandler wires the handler to the production repository implementation.
func DefaultListAgentsHandler() http.HandlerFunc {
	return ListAgentsHandler(repository.NewAgentRepository())
}

// DefaultUpdateAgentStatusHandler wires the handler to the production repository implementation.
func DefaultUpdateAgentStatusHandler() http.HandlerFunc {
	return UpdateAgentStatusHandler(repository.NewAgentRepository())
}
