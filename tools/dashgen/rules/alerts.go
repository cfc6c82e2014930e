package rules

type severity string

const (
	critical severity = "critical"
	warning  severity = "warning"
)

func alert(name, expr, forDur string, sev severity, summary, description string) Rule {
	return Rule{
		Alert:  name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": string(sev)},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}

// AlertRules returns the operational alerts for markdown-pricer.
func AlertRules() PrometheusRule {
	return newRuleCR("mdp-alerts", "mdp-alerts",
		alert("MdpDown", `absent(up{job="markdown-pricer"})`, "2m", critical,
			"Markdown pricer is down",
			"The markdown-pricer job has been absent for more than 2 minutes."),
		alert("MdpReadinessDown", `mdp_readiness_status == 0`, "2m", critical,
			"Markdown pricer readiness check is failing",
			"The inventory store has been unreachable for more than 2 minutes."),
		alert("MdpHighErrorRate", `mdp:http_errors:rate5m / mdp:http_requests:rate5m > 0.05`, "5m", warning,
			"High HTTP error rate on markdown pricer",
			"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
		alert("MdpPredictionFailures", `sum(mdp:prediction_failures:rate5m) > 0.1`, "10m", warning,
			"Model predictions are failing",
			"ML pricing is falling back to zero discount at more than 0.1/s."),
		alert("MdpImportErrors", `mdp:import_errors:rate5m > 0`, "5m", warning,
			"Inventory import errors detected",
			"Scheduled or triggered inventory imports have been failing for more than 5 minutes."),
		alert("MdpImportStale", `time() - mdp_import_last_success_timestamp > 86400`, "15m", warning,
			"Inventory has not been imported in 24 hours",
			"Discounts are being computed from inventory older than a day."),
		alert("MdpNotificationFailures", `increase(mdp_notification_failures_total[1h]) > 0`, "1m", warning,
			"Markdown digest delivery failed",
			"One or more markdown digests failed to send to the Discord webhook."),
	)
}
