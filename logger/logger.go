package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Get returns the shared logger, creating it on first use
func Get() *logrus.Logger {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// SetVerbose switches the shared logger to debug level
func SetVerbose() {
	Get().SetLevel(logrus.DebugLevel)
}
