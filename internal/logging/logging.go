// Package logging constructs the process-wide structured logger. Grounded on
// other_examples' dbspgraph master.go (m.cfg.Logger.WithField(...).Info(...))
// for the field-scoped *logrus.Logger idiom used throughout the pipeline,
// acceptor, and connection packages.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus.Logger with text output to stderr, honoring LOG_LEVEL
// (default "info") the way the teacher's router reads timeout overrides from
// the environment.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level := logrus.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := logrus.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	log.SetLevel(level)
	return log
}
