package rules

func record(name, expr string) Rule {
	return Rule{Record: name, Expr: expr}
}

// RecordingRules returns the pre-computed rates used by dashboards and
// alert rules.
func RecordingRules() PrometheusRule {
	return newRuleCR("mdp-recording-rules", "mdp-recording",
		record("mdp:http_requests:rate5m", `sum(rate(mdp_http_requests_total[5m]))`),
		record("mdp:http_errors:rate5m", `sum(rate(mdp_http_requests_total{status=~"5.."}[5m]))`),
		record("mdp:prediction_failures:rate5m", `sum by (reason) (rate(mdp_prediction_failures_total[5m]))`),
		record("mdp:import_errors:rate5m", `rate(mdp_import_errors_total[5m])`),
		record("mdp:discounts:mean1h",
			`sum by (mode) (rate(mdp_discount_percent_sum[1h])) / `+
				`sum by (mode) (rate(mdp_discount_percent_count[1h]))`),
	)
}
