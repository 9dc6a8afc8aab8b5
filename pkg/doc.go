// Package pkg provides shared utilities for the ak8963 driver.
//
// This package contains common functionality used across the driver core
// and the transport implementations, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for bus and sensor conditions
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with driver-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentDriver, "device armed", "mode", "continuous")
//
// # Errors
//
// Common driver errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrNotReady) {
//	    // No new sample this tick; poll again later.
//	}
package pkg
