package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// logrusLogger implementa Logger sobre logrus.
type logrusLogger struct {
	entry *logrus.Entry
}

type Options struct {
	Level  Level
	Format Format
	App    string
}

func New(opts Options) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(toLogrusLevel(opts.Level))

	switch opts.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			// Keys ordenadas => salida estable (útil en tests/logs).
			DisableSorting: false,
		})
	}

	entry := logrus.NewEntry(l)
	if app := strings.TrimSpace(opts.App); app != "" {
		entry = entry.WithField("app", app)
	}

	return &logrusLogger{entry: entry}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=whiskerverse (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

func (l *logrusLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}

	clean := logrus.Fields{}
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		clean[k] = v
	}

	return &logrusLogger{entry: l.entry.WithFields(clean)}
}

func (l *logrusLogger) Debug(msg string, fields map[string]any) { l.log(Debug, msg, fields) }
func (l *logrusLogger) Info(msg string, fields map[string]any)  { l.log(Info, msg, fields) }
func (l *logrusLogger) Warn(msg string, fields map[string]any)  { l.log(Warn, msg, fields) }
func (l *logrusLogger) Error(msg string, fields map[string]any) { l.log(Error, msg, fields) }

func (l *logrusLogger) log(lvl Level, msg string, fields map[string]any) {
	entry := l.entry
	if len(fields) > 0 {
		clean := logrus.Fields{}
		for k, v := range fields {
			if strings.TrimSpace(k) == "" {
				continue
			}
			clean[k] = v
		}
		entry = entry.WithFields(clean)
	}

	switch lvl {
	case Debug:
		entry.Debug(msg)
	case Warn:
		entry.Warn(msg)
	case Error:
		entry.Error(msg)
	default:
		entry.Info(msg)
	}
}

func toLogrusLevel(lvl Level) logrus.Level {
	switch lvl {
	case Debug:
		return logrus.DebugLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
