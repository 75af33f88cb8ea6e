//go:build !linux && !darwin

package system

import "log/slog"

// RaiseFileLimit is a no-op on other platforms.
func RaiseFileLimit(want uint64, logger *slog.Logger) {}
