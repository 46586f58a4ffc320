// Package logging provides structured logging configuration for harrec.
//
// It wraps log/slog so every component logs consistently. Components accept
// a *slog.Logger in their constructor or via an option; when none is given
// they use logging.Nop() and stay silent, which is the right default for a
// library that runs inside other people's test suites.
//
// Create a logger with the desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//
//	logger.Debug("exchange recorded", "method", "GET", "url", "/users")
package logging
