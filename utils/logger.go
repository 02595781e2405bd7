package utils

import (
	"github.com/sirupsen/logrus"
)

// Log is the shared application logger handed to the workflow layer
var Log = logrus.New()

// ConfigureLogger sets the log format used across the service
func ConfigureLogger() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
