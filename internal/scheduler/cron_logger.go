package scheduler

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// cronLogger передает служебные сообщения cron в logrus
type cronLogger struct {
	entry *logrus.Entry
}

func newCronLogger(logger *logrus.Logger) cronLogger {
	return cronLogger{entry: logger.WithField("component", "cron")}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).WithError(err).Error(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
