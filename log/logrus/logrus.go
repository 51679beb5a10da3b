package logrus

import (
	"github.com/sirupsen/logrus"

	progcache "github.com/bbc/programmes-caching-library"
)

type LogrusLogger struct{ E *logrus.Entry }

var _ progcache.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f progcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f progcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f progcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f progcache.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
