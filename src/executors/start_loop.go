package executors

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"agentcore/src/database"
	"agentcore/src/model"
	"agentcore/src/notifier"
	"agentcore/src/registry"
	"agentcore/src/repository"
	"agentcore/src/risk"
)

// loopDeps bundles the collaborators one tick needs, so tests can run ticks
// against an in-memory database and a local webhook receiver.
type loopDeps struct {
	configs *repository.ConfigRepository
	events  *repository.RiskEventRepository
	agents  *repository.AgentRepository
}

func newLoopDeps(db *gorm.DB) *loopDeps {
	return &loopDeps{
		configs: repository.NewConfigRepositoryWithDB(db),
		events:  repository.NewRiskEventRepositoryWithDB(db),
		agents:  repository.NewAgentRepositoryWithDB(db),
	}
}

// StartLoop runs the risk notifier loop against the main database until the
// context is cancelled.
func StartLoop(ctx context.Context) error {
	return StartLoopWithDB(ctx, database.MainDB)
}

// StartLoopWithDB runs the loop against a specific database handle.
// Flow per tick:
// 1) resolve the webhook URL from system configuration
// 2) load open risk events and select the ones warranting an alert
// 3) deliver alerts; delivery failures are logged and retried next tick
// 4) stop agents with an open critical emergency_stop event
func StartLoopWithDB(ctx context.Context, db *gorm.DB) error {
	config := GetConfig()

	ticker := time.NewTicker(config.LoopPeriod)
	defer ticker.Stop()

	deps := newLoopDeps(db)

	alertCfg := risk.AlertConfig{
		MinSeverity:     config.AlertMinSeverity,
		StaleAfterHours: config.StaleAfterHours,
	}

	logger.WithFields(map[string]interface{}{
		"loop_period":  config.LoopPeriod.String(),
		"min_severity": config.AlertMinSeverity,
	}).Info("Risk notifier loop started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("loop stopped")
			return nil

		case <-ticker.C:
			logger.Debug("loop tick")
			if err := runTick(ctx, deps, config, alertCfg, time.Now().UTC()); err != nil {
				logger.WithError(err).Error("Notifier tick failed, will exit here")
				return err
			}
		}
	}
}

// runTick executes one pass of the notifier loop. Only storage failures are
// returned; a missing webhook configuration or a failed delivery is logged
// and retried on the next tick. The emergency-stop pass does not depend on
// the webhook and runs on every tick.
func runTick(
	ctx context.Context,
	deps *loopDeps,
	config Config,
	alertCfg risk.AlertConfig,
	now time.Time,
) error {

	events, err := deps.events.FindUnresolved(ctx, "")
	if err != nil {
		return err
	}

	if url := resolveWebhookURL(ctx, deps, config); url != "" {
		selected := risk.SelectAlerts(events, now, alertCfg)
		if len(selected) > 0 {
			client := notifier.NewWebhookClient(url)
			for i := range selected {
				event := &selected[i]
				if err := client.NotifyRiskEvent(ctx, event, now); err != nil {
					logger.WithField("event_uid", event.EventUID).
						WithError(err).Warn("Alert delivery failed, will retry next tick")
				}
			}
		}
	}

	return stopHaltedAgents(ctx, deps, events)
}

// resolveWebhookURL returns the alert destination, or "" when alerts cannot
// be delivered this tick.
func resolveWebhookURL(ctx context.Context, deps *loopDeps, config Config) string {
	webhookCfg, err := deps.configs.FindByKey(ctx, config.WebhookConfigKey)
	if err != nil {
		logger.WithError(err).Error("Failed to load webhook configuration, skipping alerts")
		return ""
	}
	if webhookCfg == nil {
		logger.WithField("key", config.WebhookConfigKey).
			Warn("Webhook URL not configured, skipping alerts")
		return ""
	}

	url, err := registry.Value(webhookCfg)
	if err != nil {
		logger.WithError(err).Error("Failed to resolve webhook URL, skipping alerts")
		return ""
	}

	return url
}

// stopHaltedAgents flips agents with an open critical emergency_stop event
// into the stopped state. Already-stopped agents are left alone.
func stopHaltedAgents(ctx context.Context, deps *loopDeps, events []model.RiskEvent) error {
	byAgent := make(map[uint][]model.RiskEvent)
	for _, event := range events {
		byAgent[event.AgentID] = append(byAgent[event.AgentID], event)
	}

	for agentID, agentEvents := range byAgent {
		if !risk.RequiresEmergencyStop(agentEvents) {
			continue
		}

		agent, err := deps.agents.FindByID(ctx, agentID)
		if err != nil {
			return err
		}
		if agent == nil || agent.IsStopped() {
			continue
		}

		if err := deps.agents.UpdateStatus(ctx, agentID, model.AgentStatusStopped); err != nil {
			return err
		}

		logger.WithField("agent_id", agentID).
			Warn("Agent stopped due to open emergency_stop event")
	}

	return nil
}
