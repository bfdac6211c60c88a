package cmd

const (
	flagConfigPath     = "config"
	flagLogLevel       = "log-level"
	flagJSON           = "json"
	flagMetricsAddress = "metrics-address"
	flagMetricsPort    = "metrics-port"
	flagServerAddress  = "address"
	flagToken          = "token"
	flagOwner          = "owner"

	defaultConfigPath = "./config.yaml"
)
