package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	logger "github.com/sirupsen/logrus"

	"agentcore/src/controller"
	"agentcore/src/model"
	"agentcore/src/repository"
)

type tradeRecorder interface {
	RecordExecution(ctx context.Context, trade *model.Trade) error
}

type tradeSearcher interface {
	Search(ctx context.Context, options repository.TradeSearchOptions) ([]model.Trade, error)
}

// CreateTradeHandler records a trade and updates the owning agent's
// counters. A trade against an unknown agent is a 404 with a not_found
// violation on agent_id.
func CreateTradeHandler(recorder tradeRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload model.CreateTradePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		trade := payload.ToModel()
		if err := recorder.RecordExecution(r.Context(), trade); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, trade)
	}
}

// SearchTradesHandler lists trades, newest first.
// Supports pagination and filters (agentId, symbol, status, executedFrom, executedTo).
func SearchTradesHandler(repo tradeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var agentID uint
		if agentParam := r.URL.Query().Get("agentId"); agentParam != "" {
			id, err := strconv.ParseUint(agentParam, 10, 64)
			if err != nil {
				http.Error(w, "invalid agentId", http.StatusBadRequest)
				return
			}
			agentID = uint(id)
		}

		var symbol *string
		if symbolParam := r.URL.Query().Get("symbol"); symbolParam != "" {
			symbol = &symbolParam
		}

		var status *string
		if statusParam := r.URL.Query().Get("status"); statusParam != "" {
			status = &statusParam
		}

		var executedFrom, executedTo *time.Time
		if fromParam := r.URL.Query().Get("executedFrom"); fromParam != "" {
			parsed, err := time.Parse(time.RFC3339, fromParam)
			if err != nil {
				http.Error(w, "invalid executedFrom", http.StatusBadRequest)
				return
			}
			executedFrom = &parsed
		}

		if toParam := r.URL.Query().Get("executedTo"); toParam != "" {
			parsed, err := time.Parse(time.RFC3339, toParam)
			if err != nil {
				http.Error(w, "invalid executedTo", http.StatusBadRequest)
				return
			}
			executedTo = &parsed
		}

		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			page = parsedPage
		}

		pageSize := 20
		if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 {
				http.Error(w, "invalid pageSize", http.StatusBadRequest)
				return
			}
			pageSize = parsedSize
		}

		offset := (page - 1) * pageSize

		trades, err := repo.Search(r.Context(), repository.TradeSearchOptions{
			AgentID:        agentID,
			Symbol:         symbol,
			Status:         status,
			ExecutedAfter:  executedFrom,
			ExecutedBefore: executedTo,
			Limit:          pageSize,
			Offset:         offset,
		})
		if err != nil {
			logger.WithError(err).Error("failed to search trades")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, trades)
	}
}

// DefaultCreateTradeHandler wires the handler to the production controller implementation.
func DefaultCreateTradeHandler() http.HandlerFunc {
	return CreateTradeHandler(controller.NewTradeController())
}

// DefaultSearchTradesHandler wires the handler to the read-only repository implementation.
func DefaultSearchTradesHandler() http.HandlerFunc {
	return SearchTradesHandler(repository.NewTradeRepositoryReadOnly())
}
