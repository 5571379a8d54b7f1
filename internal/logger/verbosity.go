package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for the -v flag count.
const (
	VerbosityDefault = 0 // progress and warnings
	VerbosityDebug   = 1 // -v: + per-file and per-cell detail
)

// VerbosityToLevel maps the -v count to a zap level.
//
//	0 (none) -> InfoLevel
//	1+ (-v)  -> DebugLevel
func VerbosityToLevel(verbosity int) zapcore.Level {
	if verbosity >= VerbosityDebug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
