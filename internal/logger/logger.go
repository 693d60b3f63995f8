package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()

	// Stdout занят отчётом CLI, поэтому по умолчанию пишем в stderr
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}

// Options задаёт уровень и файл журнала
type Options struct {
	Level string
	File  string // пусто — stderr
}

// Setup настраивает глобальный логгер. Файл журнала ротируется lumberjack.
func Setup(opts Options) {
	Logger.SetLevel(ParseLevel(opts.Level))
	Logger.SetOutput(output(opts.File))
}

// ParseLevel переводит строку в уровень, по умолчанию Info
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func output(file string) io.Writer {
	if file == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// WithFields возвращает запись с набором полей
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// WithField возвращает запись с одним полем
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithError возвращает запись с полем error
func WithError(err error) *logrus.Entry {
	return Logger.WithError(err)
}
