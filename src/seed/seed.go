// Package seed inserts the default dataset: baseline system configuration
// and a few starter agents. The procedure is idempotent; rows that already
// exist are skipped via the storage layer's uniqueness conflicts.
package seed

import (
	"context"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/model"
	"agentcore/src/repository"
)

// Report summarizes one bootstrap run.
type Report struct {
	ConfigsAttempted int
	ConfigsInserted  int
	ConfigsSkipped   int
	AgentsAttempted  int
	AgentsInserted   int
	AgentsSkipped    int
}

func defaultConfigurations() []model.SystemConfiguration {
	return []model.SystemConfiguration{
		{
			Key:         "platform_name",
			Value:       "agentcore",
			Description: "Display name used in notifications and exports",
			Category:    model.ConfigCategoryGeneral,
		},
		{
			Key:         "max_position_size",
			Value:       "10000",
			Description: "Maximum notional value of a single position",
			Category:    model.ConfigCategoryTrading,
		},
		{
			Key:         "max_daily_trades",
			Value:       "200",
			Description: "Hard cap on trades per agent per day",
			Category:    model.ConfigCategoryTrading,
		},
		{
			Key:         "max_daily_loss",
			Value:       "500",
			Description: "Daily loss limit before agents are stopped",
			Category:    model.ConfigCategoryRiskManagement,
		},
		{
			Key:         "drawdown_warning_threshold",
			Value:       "0.10",
			Description: "Drawdown fraction that raises a drawdown_warning event",
			Category:    model.ConfigCategoryRiskManagement,
		},
		{
			Key:         "api_rate_limit",
			Value:       "120",
			Description: "Requests per minute allowed on the admin API",
			Category:    model.ConfigCategoryAPI,
		},
		{
			Key:         "market_data_refresh_seconds",
			Value:       "15",
			Description: "Polling interval for market data feeds",
			Category:    model.ConfigCategoryMarketData,
		},
		{
			Key:         "risk_webhook_url",
			Value:       "https://hooks.example.com/agentcore/risk",
			Description: "Endpoint notified about unresolved critical risk events",
			Category:    model.ConfigCategoryNotifications,
		},
	}
}

func starterAgents() []model.TradingAgent {
	return []model.TradingAgent{
		{
			Name:          "conservative-starter",
			Status:        model.AgentStatusIdle,
			Balance:       decimal.NewFromInt(10000),
			RiskTolerance: decimal.RequireFromString("0.01"),
			StrategyParams: map[string]any{
				"strategy":     "dca",
				"max_slippage": "0.001",
			},
		},
		{
			Name:          "balanced-starter",
			Status:        model.AgentStatusIdle,
			Balance:       decimal.NewFromInt(10000),
			RiskTolerance: decimal.RequireFromString("0.05"),
			StrategyParams: map[string]any{
				"strategy": "momentum",
				"lookback": "14d",
			},
		},
		{
			Name:          "aggressive-starter",
			Status:        model.AgentStatusIdle,
			Balance:       decimal.NewFromInt(10000),
			RiskTolerance: decimal.RequireFromString("0.20"),
			StrategyParams: map[string]any{
				"strategy": "breakout",
				"leverage": "3",
			},
		},
	}
}

// Run validates and inserts the default dataset. Uniqueness conflicts mean
// the row is already present and are skipped; any other failure aborts the
// rest of the batch.
func Run(ctx context.Context, db *gorm.DB) (*Report, error) {
	report := &Report{}

	configRepo := repository.NewConfigRepositoryWithDB(db)
	agentRepo := repository.NewAgentRepositoryWithDB(db)

	for _, cfg := range defaultConfigurations() {
		report.ConfigsAttempted++

		entry := cfg
		err := configRepo.Create(ctx, &entry)
		switch {
		case err == nil:
			report.ConfigsInserted++
		case repository.IsConflict(err):
			report.ConfigsSkipped++
			logger.WithField("key", entry.Key).Debug("configuration already seeded, skipping")
		default:
			return report, err
		}
	}

	for _, agent := range starterAgents() {
		report.AgentsAttempted++

		candidate := agent
		err := agentRepo.Create(ctx, &candidate)
		switch {
		case err == nil:
			report.AgentsInserted++
		case repository.IsConflict(err):
			report.AgentsSkipped++
			logger.WithField("name", candidate.Name).Debug("agent already seeded, skipping")
		default:
			return report, err
		}
	}

	logger.WithFields(map[string]interface{}{
		"configs_attempted": report.ConfigsAttempted,
		"configs_inserted":  report.ConfigsInserted,
		"configs_skipped":   report.ConfigsSkipped,
		"agents_attempted":  report.AgentsAttempted,
		"agents_inserted":   report.AgentsInserted,
		"agents_skipped":    report.AgentsSkipped,
	}).Info("Seed run completed")

	return report, nil
}
