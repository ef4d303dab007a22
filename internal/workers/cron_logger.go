package workers

import (
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/rs/zerolog"
)

// cronLogger routes cron's key/value logging into zerolog.
type cronLogger struct {
	logger *logger.Logger
}

func newCronLogger(log *logger.Logger) cronLogger {
	return cronLogger{logger: log}
}

// Info is called for every scheduler tick, so it logs at debug level.
func (l cronLogger) Info(msg string, keysAndValues ...any) {
	withFields(l.logger.Debug(), keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	withFields(l.logger.Error().Err(err), keysAndValues).Msg(msg)
}

func withFields(e *zerolog.Event, keysAndValues []any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keysAndValues[i+1])
	}

	return e
}
