package logging

import (
	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// SetLevel configures the shared log level from a config string.
// Unknown levels fall back to info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)
}

// New returns a component-scoped structured logger.
func New(component string) *logrus.Entry {
	return base.WithField("component", component)
}
