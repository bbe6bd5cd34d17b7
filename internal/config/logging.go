// internal/config/logging.go
package config

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Apply configures logger from LOG_LEVEL and LOG_FORMAT. Unknown levels fall
// back to info.
func (l LogConfig) Apply(logger *logrus.Logger) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(l.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
