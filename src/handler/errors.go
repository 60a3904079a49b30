// Package handler contains the HTTP handlers of the admin API. Handlers take
// their collaborators as small interfaces so tests can swap in fakes; Default
// constructors wire the production repositories.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"agentcore/src/repository"
	"agentcore/src/validation"
)

// validationResponse is the error body for rejected writes: one entry per
// violated rule, all of them, never just the first.
type validationResponse struct {
	Errors []validation.Violation `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeDomainError maps domain failures onto HTTP statuses: uniqueness
// conflicts are 409, dangling references and missing records are 404, field
// violations are 422, everything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *validation.Errors
	if errors.As(err, &verr) {
		status := http.StatusUnprocessableEntity
		switch {
		case repository.IsConflict(err):
			status = http.StatusConflict
		case repository.IsDanglingReference(err):
			status = http.StatusNotFound
		}
		writeJSON(w, status, validationResponse{Errors: verr.Violations})
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	logger.WithError(err).Error("request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
