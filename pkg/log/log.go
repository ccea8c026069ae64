// Package log provides the logger used throughout the emulator.
package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the set of logging methods used by the emulator. It
// is satisfied by *logrus.Logger.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a logrus logger writing plain text, without
// timestamps, at the info level.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
