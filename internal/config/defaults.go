package config

const (
	defaultOnError   = "continue"
	defaultLogLevel  = "warn"
	defaultLogFormat = "console"
)
