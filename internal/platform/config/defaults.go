package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"database.path":         "data/jalon.db",
		"database.busy_timeout": "5s",

		"notify.channel":                                 "log",
		"notify.gateway.base_url":                        "http://localhost:8081",
		"notify.gateway.timeout":                         "10s",
		"notify.gateway.retry.max_attempts":              defaultRetryMaxAttempts,
		"notify.gateway.retry.initial_interval":          "100ms",
		"notify.gateway.retry.max_interval":              "10s",
		"notify.gateway.retry.multiplier":                defaultRetryMultiplier,
		"notify.gateway.rate_limit.requests_per_second":  0,
		"notify.gateway.rate_limit.burst_size":           0,
		"notify.gateway.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"notify.gateway.circuit_breaker.timeout":         "30s",
		"notify.gateway.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"reminder.enabled":   false,
		"reminder.interval":  "1h",
		"reminder.lookahead": "24h",

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
