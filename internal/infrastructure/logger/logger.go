package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logg = newLogger(os.Stdout, os.Getenv("LOG_LEVEL"))

func newLogger(out io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(out)
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Get returns the process-wide logger.
func Get() *logrus.Logger {
	return logg
}

// Configure resets output and level, e.g. after config is loaded.
func Configure(out io.Writer, level string) {
	logg.SetOutput(out)
	logg.SetLevel(parseLevel(level))
}

// LogError writes a structured error entry.
func LogError(moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logg.WithFields(fields).Error(err.Error())
}
