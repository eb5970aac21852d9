// Package logging builds the slog loggers used across the CLI.
//
// Two output formats are supported: a compact console format
// (timestamp, level, component, message, key=value attrs) and line-delimited
// JSON. Loggers optionally tee into a log file under the configured log
// directory. Subsystems attach a "component" attribute which the console
// handler folds into the message prefix.
package logging
