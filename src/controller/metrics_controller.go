package controller

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/model"
	"agentcore/src/repository"
	"agentcore/src/utils"
)

// MetricsController aggregates executed trades into per-period performance
// rollups.
type MetricsController struct {
	trades  *repository.TradeRepository
	metrics *repository.MetricRepository
}

// NewMetricsController creates a controller wired to the main database.
func NewMetricsController() *MetricsController {
	return &MetricsController{
		trades:  repository.NewTradeRepository(),
		metrics: repository.NewMetricRepository(),
	}
}

// NewMetricsControllerWithDB creates a controller bound to a specific DB
// instance, for tests or transactions.
func NewMetricsControllerWithDB(db *gorm.DB) *MetricsController {
	return &MetricsController{
		trades:  repository.NewTradeRepositoryWithDB(db),
		metrics: repository.NewMetricRepositoryWithDB(db),
	}
}

// RollupDay aggregates one agent's executed trades for the UTC day
// containing `at` and stores the rollup. Returns the stored metric; a day
// with no executed trades still produces a zero-valued row.
func (c *MetricsController) RollupDay(
	ctx context.Context,
	agentID uint,
	at time.Time,
) (*model.PerformanceMetric, error) {

	periodStart := utils.ResetTime(at, "day")
	periodEnd := periodStart.Add(24 * time.Hour)

	status := model.TradeStatusExecuted
	trades, err := c.trades.Search(ctx, repository.TradeSearchOptions{
		AgentID:        agentID,
		Status:         &status,
		ExecutedAfter:  &periodStart,
		ExecutedBefore: &periodEnd,
	})
	if err != nil {
		return nil, err
	}

	metric := buildMetric(agentID, periodStart, periodEnd, trades)

	if err := c.metrics.Create(ctx, metric); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"agent_id":     agentID,
		"period_start": periodStart.Format(time.RFC3339),
		"trade_count":  metric.TradeCount,
		"total_pnl":    metric.TotalPnL.String(),
	}).Info("Performance rollup stored")

	return metric, nil
}

// buildMetric folds trades into a rollup. Trades arrive newest first from
// Search; drawdown walks them oldest first over the running net pnl.
// Max drawdown is reported as a non-negative magnitude.
func buildMetric(
	agentID uint,
	periodStart, periodEnd time.Time,
	trades []model.Trade,
) *model.PerformanceMetric {

	total := decimal.Zero
	running := decimal.Zero
	peak := decimal.Zero
	maxDrawdown := decimal.Zero

	for i := len(trades) - 1; i >= 0; i-- {
		net := trades[i].NetPnL()
		if net == nil {
			continue
		}

		total = total.Add(*net)
		running = running.Add(*net)

		if running.GreaterThan(peak) {
			peak = running
		}
		drawdown := peak.Sub(running)
		if drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}

	return &model.PerformanceMetric{
		AgentID:     agentID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TotalPnL:    total,
		MaxDrawdown: maxDrawdown,
		TradeCount:  len(trades),
	}
}
