// Package config loads, normalizes, and validates dropsort settings.
//
// Values come from repository defaults, an optional TOML or YAML file, and
// DROPSORT_* environment variables, in that order. The category table can be
// replaced from the file; Config.Table turns it into an organize.Table and
// rejects overlapping extensions. No file is ever written.
package config
