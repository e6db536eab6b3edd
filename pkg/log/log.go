// Package log provides the logging interface used throughout the module.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is satisfied by *logrus.Logger and by the null logger.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a plain text logger writing to stderr at info level.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// NewDebug is New with the level raised to debug.
func NewDebug() *logrus.Logger {
	l := New()
	l.SetLevel(logrus.DebugLevel)
	return l
}
