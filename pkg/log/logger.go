package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level controls logger verbosity
type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logging interface shared by all packages
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger. The name shows up as the module column of every line.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink. The current level is kept.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for all loggers
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// ParseLevel maps a level name (debug, info, notice, warning, error) to a Level
func ParseLevel(name string) (Level, error) {
	level, err := logging.LogLevel(name)
	if err != nil {
		return Notice, err
	}
	switch level {
	case logging.DEBUG:
		return Debug, nil
	case logging.INFO:
		return Info, nil
	case logging.WARNING:
		return Warning, nil
	case logging.ERROR, logging.CRITICAL:
		return Error, nil
	default:
		return Notice, nil
	}
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
