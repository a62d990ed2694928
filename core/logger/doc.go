// Package logger provides a structured logging facility based on Zap.
//
// Level "debug" selects zap's development configuration, every other level
// the production one. Format is json or console; the CLI error path uses
// console output.
//
// WithRayID attaches the request id set by the rayid middleware so that every
// log line of a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
