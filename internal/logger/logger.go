package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is usable before Init is called; Init only reconfigures it.
var Log = logrus.New()

// Init sets the output format and level. Unknown levels fall back to info.
func Init(level, format string) {
	Log.SetOutput(os.Stdout)
	if format == "text" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	Log.SetLevel(logLevel)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return Log.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}
