package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore/src/model"
	"agentcore/src/repository"
	"agentcore/src/validation"
)

type fakeRiskEventRepo struct {
	created    *model.RiskEvent
	createErr  error
	resolved   *model.RiskEvent
	resolveErr error
	resolveAt  time.Time
	unresolved []model.RiskEvent
	severity   string
}

func (f *fakeRiskEventRepo) Create(_ context.Context, event *model.RiskEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = 7
	event.EventUID = "evt-7"
	f.created = event
	return nil
}

func (f *fakeRiskEventRepo) Resolve(_ context.Context, id uint, now time.Time) (*model.RiskEvent, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	f.resolveAt = now
	f.resolved = &model.RiskEvent{ID: id, Resolved: true, ResolvedAt: &now}
	return f.resolved, nil
}

func (f *fakeRiskEventRepo) FindUnresolved(_ context.Context, severity string) ([]model.RiskEvent, error) {
	f.severity = severity
	return f.unresolved, nil
}

func TestCreateRiskEventHandlerCreated(t *testing.T) {
	repo := &fakeRiskEventRepo{}
	rec := routedRequest(t, CreateRiskEventHandler(repo), http.MethodPost, "/risk-events",
		`{"agent_id":3,"event_type":"drawdown_warning","severity":"critical","message":"drawdown exceeded 10%"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.created)

	var resp model.RiskEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "evt-7", resp.EventUID)
}

func TestCreateRiskEventHandlerValidationFailure(t *testing.T) {
	repo := &fakeRiskEventRepo{
		createErr: &validation.Errors{Violations: []validation.Violation{
			{Field: "severity", Kind: validation.KindNotInEnum},
			{Field: "message", Kind: validation.KindMissing},
		}},
	}

	rec := routedRequest(t, CreateRiskEventHandler(repo), http.MethodPost, "/risk-events",
		`{"agent_id":3,"event_type":"drawdown_warning","severity":"catastrophic"}`, "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)
}

func TestResolveRiskEventHandlerIgnoresClientTimestamps(t *testing.T) {
	repo := &fakeRiskEventRepo{}

	// client tries to smuggle in its own resolution time
	rec := routedRequest(t, ResolveRiskEventHandler(repo), http.MethodPost, "/risk-events/7/resolve",
		`{"resolved":false,"resolved_at":"1999-01-01T00:00:00Z"}`, "7")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.resolved)
	assert.True(t, repo.resolved.Resolved)
	assert.True(t, time.Since(repo.resolveAt) < time.Minute,
		"resolution must be stamped with the server clock")
}

func TestResolveRiskEventHandlerNotFound(t *testing.T) {
	repo := &fakeRiskEventRepo{resolveErr: repository.ErrNotFound}
	rec := routedRequest(t, ResolveRiskEventHandler(repo), http.MethodPost, "/risk-events/99/resolve", "", "99")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUnresolvedRiskEventsHandlerPassesSeverity(t *testing.T) {
	repo := &fakeRiskEventRepo{unresolved: []model.RiskEvent{{ID: 1}, {ID: 2}}}

	rec := routedRequest(t, ListUnresolvedRiskEventsHandler(repo), http.MethodGet,
		"/risk-events?severity=critical", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "critical", repo.severity)

	var resp []model.RiskEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
