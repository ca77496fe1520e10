// Package logger wraps zerolog with service- and component-scoped loggers,
// console/JSON output formats, and structured field helpers.
package logger
