package utils

import (
	"time"

	"certstock/config"

	"github.com/go-resty/resty/v2"
)

// NotifyAudit pushes a state-changing action to the downstream audit sink.
// Fire-and-forget: the authoritative record is the activity_logs table, the
// webhook only feeds external consumers and is skipped when unconfigured.
func NotifyAudit(actionType string, payload map[string]interface{}) {
	if config.AppConfig == nil || config.AppConfig.AuditWebhookURL == "" {
		return
	}

	go func() {
		client := resty.New().SetTimeout(5 * time.Second)
		_, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]interface{}{
				"actionType": actionType,
				"occurredAt": time.Now().UTC(),
				"payload":    payload,
			}).
			Post(config.AppConfig.AuditWebhookURL)
		if err != nil {
			Log.Warnf("Audit webhook delivery failed: %v", err)
		}
	}()
}
