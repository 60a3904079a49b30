package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentcore/src/model"
	"agentcore/src/repository"
	"agentcore/src/validation"
)

type fakeConfigRepo struct {
	configs   []model.SystemConfiguration
	created   *model.SystemConfiguration
	createErr error
	updates   map[string]string
	updateErr error
}

func (f *fakeConfigRepo) FindAll(_ context.Context) ([]model.SystemConfiguration, error) {
	return f.configs, nil
}

func (f *fakeConfigRepo) Create(_ context.Context, cfg *model.SystemConfiguration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = cfg
	return nil
}

func (f *fakeConfigRepo) UpdateValue(_ context.Context, key, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updates == nil {
		f.updates = map[string]string{}
	}
	f.updates[key] = value
	return nil
}

func sampleConfigs() []model.SystemConfiguration {
	return []model.SystemConfiguration{
		{ID: 1, Key: "platform_name", Value: "agentcore", Category: model.ConfigCategoryGeneral},
		{ID: 2, Key: "max_daily_loss", Value: "500", Category: model.ConfigCategoryRiskManagement},
		{ID: 3, Key: "drawdown_warning_threshold", Value: "0.10", Category: model.ConfigCategoryRiskManagement},
	}
}

func TestListConfigurationsHandlerAll(t *testing.T) {
	repo := &fakeConfigRepo{configs: sampleConfigs()}

	rec := routedRequest(t, ListConfigurationsHandler(repo), http.MethodGet, "/configurations", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []model.SystemConfiguration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 3)
}

func TestListConfigurationsHandlerByCategory(t *testing.T) {
	repo := &fakeConfigRepo{configs: sampleConfigs()}

	rec := routedRequest(t, ListConfigurationsHandler(repo), http.MethodGet,
		"/configurations?category=risk_management", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []model.SystemConfiguration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	// insertion order preserved within the category
	assert.Equal(t, "max_daily_loss", resp[0].Key)
	assert.Equal(t, "drawdown_warning_threshold", resp[1].Key)
}

func TestListConfigurationsHandlerUnknownCategory(t *testing.T) {
	repo := &fakeConfigRepo{configs: sampleConfigs()}

	rec := routedRequest(t, ListConfigurationsHandler(repo), http.MethodGet,
		"/configurations?category=nonexistent", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateConfigurationHandlerDuplicateKey(t *testing.T) {
	repo := &fakeConfigRepo{createErr: validation.NewConflict("key")}

	rec := routedRequest(t, CreateConfigurationHandler(repo), http.MethodPost, "/configurations",
		`{"key":"platform_name","value":"other"}`, "")

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateConfigurationValueHandler(t *testing.T) {
	repo := &fakeConfigRepo{}

	rec := routedRequest(t, UpdateConfigurationValueHandler(repo), http.MethodPut, "/configurations/value",
		`{"key":"max_daily_loss","value":"750"}`, "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "750", repo.updates["max_daily_loss"])
}

func TestUpdateConfigurationValueHandlerUnknownKey(t *testing.T) {
	repo := &fakeConfigRepo{updateErr: repository.ErrNotFound}

	rec := routedRequest(t, UpdateConfigurationValueHandler(repo), http.MethodPut, "/configurations/value",
		`{"key":"missing","value":"x"}`, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}
