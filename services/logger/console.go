package logsvc

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/umoja/portal/core"
)

// ConsoleLogger writes human-readable log lines to stderr.
type ConsoleLogger struct {
	log zerolog.Logger
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(conf *core.Config) *ConsoleLogger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().
		Timestamp().
		Str("env", conf.Env).
		Logger()

	if conf.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	return &ConsoleLogger{log: logger}
}

func (l *ConsoleLogger) event(ev *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			ev = ev.Err(a)
		case map[string]interface{}:
			ev = ev.Fields(a)
		default:
			ev = ev.Interface("detail", a)
		}
	}
	ev.Msg(msg)
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.event(l.log.Debug(), msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.event(l.log.Info(), msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.event(l.log.Warn(), msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.event(l.log.Error(), msg, args) }
func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) { l.event(l.log.Fatal(), msg, args) }
