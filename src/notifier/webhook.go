// Package notifier pushes alerts about unresolved critical risk events to an
// external webhook endpoint.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"

	"agentcore/src/model"
)

const (
	defaultRetryAttempts   = 3
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMaxBackoff = 5 * time.Second
)

// WebhookClient delivers risk alerts over HTTP.
type WebhookClient struct {
	url  string
	http *resty.Client
}

// riskAlert is the wire payload. EventUID lets the receiver deduplicate
// repeated deliveries of the same event across loop ticks.
type riskAlert struct {
	EventUID    string `json:"event_uid"`
	AgentID     uint   `json:"agent_id"`
	EventType   string `json:"event_type"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	AgeInHours  int    `json:"age_in_hours"`
	TriggeredAt string `json:"triggered_at"`
}

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}

	code := r.StatusCode()

	if code >= 500 && code <= 599 {
		return true
	}
	if code == 429 {
		return true
	}
	if code == 408 {
		return true
	}
	return false
}

// NewWebhookClient builds a client posting to the given URL with bounded
// retries for transient failures.
func NewWebhookClient(url string) *WebhookClient {
	httpClient := resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(defaultRetryAttempts - 1).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &WebhookClient{
		url:  url,
		http: httpClient,
	}
}

// NotifyRiskEvent posts one event to the webhook. Any non-2xx response is an
// error so the caller can decide whether to retry on the next tick.
func (c *WebhookClient) NotifyRiskEvent(
	ctx context.Context,
	event *model.RiskEvent,
	now time.Time,
) error {

	alert := riskAlert{
		EventUID:    event.EventUID,
		AgentID:     event.AgentID,
		EventType:   event.EventType,
		Severity:    event.Severity,
		Message:     event.Message,
		AgeInHours:  event.AgeInHours(now),
		TriggeredAt: event.CreatedAt.UTC().Format(time.RFC3339),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(alert).
		Post(c.url)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"event_uid": event.EventUID,
			"url":       c.url,
		}).WithError(err).Error("Failed to deliver risk alert")
		return err
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		err := fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.String())
		logger.WithFields(map[string]interface{}{
			"event_uid": event.EventUID,
			"status":    resp.StatusCode(),
		}).WithError(err).Error("Webhook rejected risk alert")
		return err
	}

	logger.WithFields(map[string]interface{}{
		"event_uid": event.EventUID,
		"severity":  event.Severity,
	}).Info("Risk alert delivered")

	return nil
}
