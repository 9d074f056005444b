package logging

import (
	"fmt"
	"log/slog"
)

// EngineLogger adapts a slog.Logger to the printf-style interface the scoring engine logs through
type EngineLogger struct {
	Logger *slog.Logger
}

// NewEngineLogger wraps l under the "engine" group
func NewEngineLogger(l *slog.Logger) EngineLogger {
	return EngineLogger{Logger: l.WithGroup("engine")}
}

func (e EngineLogger) Debugf(format string, args ...any) {
	e.Logger.Debug(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Infof(format string, args ...any) {
	e.Logger.Info(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Warnf(format string, args ...any) {
	e.Logger.Warn(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Errorf(format string, args ...any) {
	e.Logger.Error(fmt.Sprintf(format, args...))
}
