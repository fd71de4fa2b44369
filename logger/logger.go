package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel is the node-level verbosity, mapped onto logrus levels.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

var (
	instance *logrus.Logger
	once     sync.Once
)

func initLogger() {
	once.Do(func() {
		instance = logrus.New()
		instance.SetOutput(os.Stderr)
		instance.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		instance.SetLevel(logrus.InfoLevel)
	})
}

// GetLogger returns the shared logrus instance, creating it on first use.
func GetLogger() *logrus.Logger {
	initLogger()
	return instance
}

func SetLevel(level LogLevel) {
	GetLogger().SetLevel(level.logrusLevel())
}

func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case WARNING:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	case FATAL:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case WARNING:
		return "warning"
	case ERROR:
		return "error"
	case FATAL:
		return "fatal"
	default:
		return "info"
	}
}

func Debug(args ...interface{})                   { GetLogger().Debug(args...) }
func Debugf(format string, args ...interface{})   { GetLogger().Debugf(format, args...) }
func Info(args ...interface{})                    { GetLogger().Info(args...) }
func Infof(format string, args ...interface{})    { GetLogger().Infof(format, args...) }
func Warning(args ...interface{})                 { GetLogger().Warning(args...) }
func Warningf(format string, args ...interface{}) { GetLogger().Warningf(format, args...) }
func Error(args ...interface{})                   { GetLogger().Error(args...) }
func Errorf(format string, args ...interface{})   { GetLogger().Errorf(format, args...) }
func Fatalf(format string, args ...interface{})   { GetLogger().Fatalf(format, args...) }

// LogBlockEvent records a block appended to a chain at debug level.
func LogBlockEvent(index uint64, hash string, nonce uint64, attempts uint64) {
	GetLogger().WithFields(logrus.Fields{
		"index":    index,
		"hash":     hash,
		"nonce":    nonce,
		"attempts": attempts,
	}).Debug("Block appended")
}
