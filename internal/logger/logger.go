// Package logger builds the logrus logger shared by the server and the shell.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger

// New returns a logger writing to out. Unknown levels fall back to info,
// any format other than "json" is text.
func New(level, format string, out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return l
}

// Discard is a logger that drops everything; tests use it.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
