package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore/src/model"
	"agentcore/src/repository"
	"agentcore/src/validation"
)

type fakeAgentRepo struct {
	created     *model.TradingAgent
	createErr   error
	agents      map[uint]*model.TradingAgent
	statusCalls []string
	statusErr   error
}

func (f *fakeAgentRepo) Create(_ context.Context, agent *model.TradingAgent) error {
	if f.createErr != nil {
		return f.createErr
	}
	agent.ID = 1
	f.created = agent
	return nil
}

func (f *fakeAgentRepo) FindByID(_ context.Context, id uint) (*model.TradingAgent, error) {
	return f.agents[id], nil
}

func (f *fakeAgentRepo) FindAll(_ context.Context) ([]model.TradingAgent, error) {
	var all []model.TradingAgent
	for _, a := range f.agents {
		all = append(all, *a)
	}
	return all, nil
}

func (f *fakeAgentRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusCalls = append(f.statusCalls, status)
	return nil
}

func routedRequest(t *testing.T, h http.HandlerFunc, method, target, body, idParam string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if idParam != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", idParam)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAgentHandlerCreated(t *testing.T) {
	repo := &fakeAgentRepo{}
	rec := routedRequest(t, CreateAgentHandler(repo), http.MethodPost, "/agents",
		`{"name":"alpha","balance":"1000","risk_tolerance":"0.05"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp agentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alpha", resp.Name)
	assert.Equal(t, 0.0, resp.WinRate)
	assert.False(t, resp.Active)
	require.NotNil(t, repo.created)
}

func TestCreateAgentHandlerValidationFailure(t *testing.T) {
	repo := &fakeAgentRepo{
		createErr: &validation.Errors{Violations: []validation.Violation{
			{Field: "name", Kind: validation.KindMissing},
			{Field: "risk_tolerance", Kind: validation.KindOutOfRange},
		}},
	}

	rec := routedRequest(t, CreateAgentHandler(repo), http.MethodPost, "/agents",
		`{"balance":"1000","risk_tolerance":"0"}`, "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "name", resp.Errors[0].Field)
	assert.Equal(t, validation.KindMissing, resp.Errors[0].Kind)
}

func TestCreateAgentHandlerDuplicateName(t *testing.T) {
	repo := &fakeAgentRepo{createErr: validation.NewConflict("name")}

	rec := routedRequest(t, CreateAgentHandler(repo), http.MethodPost, "/agents",
		`{"name":"alpha","balance":"1000","risk_tolerance":"0.05"}`, "")

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateAgentHandlerBadBody(t *testing.T) {
	rec := routedRequest(t, CreateAgentHandler(&fakeAgentRepo{}), http.MethodPost, "/agents", "{not json", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAgentHandlerDerivedFields(t *testing.T) {
	agent := &model.TradingAgent{
		ID:            4,
		Name:          "momentum",
		Status:        model.AgentStatusActive,
		Balance:       decimal.NewFromInt(5000),
		RiskTolerance: decimal.RequireFromString("0.10"),
		TotalTrades:   3,
		WinningTrades: 2,
		LosingTrades:  1,
	}
	repo := &fakeAgentRepo{agents: map[uint]*model.TradingAgent{4: agent}}

	rec := routedRequest(t, GetAgentHandler(repo), http.MethodGet, "/agents/4", "", "4")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp agentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 66.66666, resp.WinRate, 0.001)
	assert.True(t, resp.Active)
}

func TestGetAgentHandlerNotFound(t *testing.T) {
	repo := &fakeAgentRepo{agents: map[uint]*model.TradingAgent{}}
	rec := routedRequest(t, GetAgentHandler(repo), http.MethodGet, "/agents/99", "", "99")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAgentStatusHandler(t *testing.T) {
	repo := &fakeAgentRepo{}
	rec := routedRequest(t, UpdateAgentStatusHandler(repo), http.MethodPut, "/agents/4/status",
		`{"status":"active"}`, "4")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, []string{"active"}, repo.statusCalls)
}

func TestUpdateAgentStatusHandlerUnknownAgent(t *testing.T) {
	repo := &fakeAgentRepo{statusErr: repository.ErrNotFound}
	rec := routedRequest(t, UpdateAgentStatusHandler(repo), http.MethodPut, "/agents/99/status",
		`{"status":"active"}`, "99")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAgentStatusHandlerBadStatus(t *testing.T) {
	repo := &fakeAgentRepo{
		statusErr: &validation.Errors{Violations: []validation.Violation{
			{Field: "status", Kind: validation.KindNotInEnum},
		}},
	}
	rec := routedRequest(t, UpdateAgentStatusHandler(repo), http.MethodPut, "/agents/4/status",
		`{"status":"sleeping"}`, "4")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
