package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"agentcore/src/model"
	"agentcore/src/registry"
	"agentcore/src/repository"
)

type configReader interface {
	FindAll(ctx context.Context) ([]model.SystemConfiguration, error)
}

type configWriter interface {
	Create(ctx context.Context, cfg *model.SystemConfiguration) error
	UpdateValue(ctx context.Context, key, value string) error
}

// ListConfigurationsHandler lists configuration entries. With ?category= the
// result is narrowed to that category, preserving insertion order; encrypted
// values are returned as stored, never decrypted here.
func ListConfigurationsHandler(repo configReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := repo.FindAll(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list configurations")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if category := r.URL.Query().Get("category"); category != "" {
			group := registry.ByCategory(configs)[category]
			if group == nil {
				group = []model.SystemConfiguration{}
			}
			writeJSON(w, http.StatusOK, group)
			return
		}

		writeJSON(w, http.StatusOK, configs)
	}
}

// CreateConfigurationHandler registers a new configuration entry. A
// duplicate key is a 409.
func CreateConfigurationHandler(repo configWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg model.SystemConfiguration
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := repo.Create(r.Context(), &cfg); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, cfg)
	}
}

// UpdateConfigurationValueHandler overwrites the value of an existing key.
func UpdateConfigurationValueHandler(repo configWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := repo.UpdateValue(r.Context(), payload.Key, payload.Value); err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DefaultListConfigurationsHandler wires the handler to the read-only repository implementation.
func DefaultListConfigurationsHandler() http.HandlerFunc {
	return ListConfigurationsHandler(repository.NewConfigRepositoryReadOnly())
}

// DefaultCreateConfigurationHandler wires the handler to the production repository implementation.
func DefaultCreateConfigurationHandler() http.HandlerFunc {
	return CreateConfigurationHandler(repository.NewConfigRepository())
}

// DefaultUpdateConfigurationValueHandler wires the handler to the production repository implementation.
func DefaultUpdateConfigurationValueHandler() http.HandlerFunc {
	return UpdateConfigurationValueHandler(repository.NewConfigRepository())
}
