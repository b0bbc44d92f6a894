package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logrus.New()

// Init configures the global logger. Output goes to stderr and to a
// size-rotated file when path is non-empty.
func Init(level, path string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if path != "" {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    20, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotated))
	} else {
		log.SetOutput(os.Stderr)
	}

	return nil
}

func Debug(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithField exposes structured logging for call sites that attach context
// (guild, actor) to a burst of lines.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}
