// Package logging configures the process-wide slog logger.
//
// Two output formats are supported: a human-oriented console format for
// interactive use and JSON for log files and machine consumption. Field-name
// constants keep structured keys consistent across packages.
package logging
