package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер в stdout. Каждая запись помечается полем app.
func New(logLevel, app string) *logrus.Logger {
	return newWithOutput(os.Stdout, logLevel, app)
}

func newWithOutput(out io.Writer, logLevel, app string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)

	if app != "" {
		log.AddHook(appHook{app: app})
	}
	return log
}

// appHook добавляет имя приложения, если поле не задано явно
type appHook struct {
	app string
}

func (h appHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h appHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["app"]; !ok {
		entry.Data["app"] = h.app
	}
	return nil
}
