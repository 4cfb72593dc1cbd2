package helpers

import (
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger
func NewLogger(appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// NewNopLogger returns a logger that discards everything; used by tests and
// tools that have no use for log output.
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// RequestEntry returns a log entry tagged with the request id and client IP
// set by the request middleware.
func RequestEntry(logger *logrus.Logger, c *gin.Context) *logrus.Entry {
	if logger == nil {
		logger = NewNopLogger()
	}
	fields := logrus.Fields{"path": c.FullPath()}
	if rid := c.GetString("request_id"); rid != "" {
		fields["request_id"] = rid
	}
	if ip := c.GetString("real_ip"); ip != "" {
		fields["ip"] = ip
	} else {
		fields["ip"] = c.ClientIP()
	}
	return logger.WithFields(fields)
}
