// Package logger is the module's ambient structured-logging surface.
// It keeps the interface shape this project has always exposed,
// backed by logrus instead of a hand-rolled ANSI writer.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level mirrors logrus.Level so callers never need to import logrus
// directly just to pick a severity.
type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
	FatalLevel = logrus.FatalLevel
)

// Logger is the interface every package in this module logs through.
// Nothing outside this package imports logrus directly.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithPrefix(prefix string) Logger
}

type logger struct {
	entry *logrus.Entry
}

// Config controls how New builds the root logger.
type Config struct {
	Level    Level
	Writer   io.Writer
	NoColor  bool
	JSON     bool
	ShowTime bool
}

var defaultLogger Logger = New(Config{Level: InfoLevel, Writer: os.Stdout, ShowTime: true})

// New builds a Logger backed by a fresh logrus.Logger, configured per
// cfg. SetLevel uses it to rebuild the package-level default that the
// bare helpers below log through; the simulation core never
// constructs a logger itself, it only emits to an event.Sink.
func New(cfg Config) Logger {
	base := logrus.New()
	base.SetLevel(cfg.Level)
	if cfg.Writer != nil {
		base.SetOutput(cfg.Writer)
	}
	if cfg.JSON {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   cfg.NoColor,
			FullTimestamp:   cfg.ShowTime,
			TimestampFormat: "15:04:05",
		})
	}
	return &logger{entry: logrus.NewEntry(base)}
}

// SetDefault replaces the package-level default logger used by the
// bare Debug/Info/Warn/Error/Fatal helpers below.
func SetDefault(l Logger) { defaultLogger = l }

// SetLevel rebuilds the default logger at the given level, writing to
// stdout with timestamps, matching the CLI's --log-level flag.
func SetLevel(level Level) {
	defaultLogger = New(Config{Level: level, Writer: os.Stdout, ShowTime: true})
}

func Debug(args ...interface{})                       { defaultLogger.Debug(args...) }
func Debugf(format string, args ...interface{})       { defaultLogger.Debugf(format, args...) }
func Info(args ...interface{})                        { defaultLogger.Info(args...) }
func Infof(format string, args ...interface{})        { defaultLogger.Infof(format, args...) }
func Warn(args ...interface{})                        { defaultLogger.Warn(args...) }
func Warnf(format string, args ...interface{})        { defaultLogger.Warnf(format, args...) }
func Error(args ...interface{})                       { defaultLogger.Error(args...) }
func Errorf(format string, args ...interface{})       { defaultLogger.Errorf(format, args...) }
func Fatal(args ...interface{})                       { defaultLogger.Fatal(args...) }
func Fatalf(format string, args ...interface{})       { defaultLogger.Fatalf(format, args...) }
func WithField(key string, value interface{}) Logger  { return defaultLogger.WithField(key, value) }
func WithFields(fields map[string]interface{}) Logger { return defaultLogger.WithFields(fields) }
func WithPrefix(prefix string) Logger                 { return defaultLogger.WithPrefix(prefix) }

func (l *logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *logger) Error(args ...interface{})                 { l.entry.Error(args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *logger) Fatal(args ...interface{})                 { l.entry.Fatal(args...) }
func (l *logger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields map[string]interface{}) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithPrefix(prefix string) Logger {
	return &logger{entry: l.entry.WithField("component", prefix)}
}

// ParseLevel parses a string log level, defaulting to Info on
// anything it does not recognize.
func ParseLevel(level string) Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return InfoLevel
	}
	return parsed
}
