package observability

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the service logger. Unknown level strings fall back to
// info rather than failing startup.
func NewLogger(level string, jsonFormat bool) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(parseLevel(level))

	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
