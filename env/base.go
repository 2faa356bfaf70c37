package env

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/types"
)

var (
	BaseConfigReaderBuilder = NewReaderBuilder[Base]()
)

type Base struct {
	Env       Env       `env:"ENV" default:"prod"`
	LogLevel  LogLevel  `env:"LOG_LEVEL" default:"info"`
	LogFormat LogFormat `env:"LOG_FORMAT" default:"text"`
	AppName   string    `env:"APP_NAME,omitempty"`
}

type Env string

func (E Env) Enum() types.Enum {
	return types.RegisterEnum(DEV, PROD, TEST, STAG)
}

const (
	DEV  Env = "dev"
	PROD Env = "prod"
	TEST Env = "test"
	STAG Env = "stag"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (l LogLevel) Enum() types.Enum {
	return types.RegisterEnum(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
}

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJson LogFormat = "json"
)

func (f LogFormat) Enum() types.Enum {
	return types.RegisterEnum(LogFormatText, LogFormatJson)
}

// SetupLogger applies the level and format of b to the standard logrus logger.
func (b Base) SetupLogger() {
	level, err := logrus.ParseLevel(string(b.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	if b.LogFormat == LogFormatJson {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if b.AppName != "" {
		logrus.AddHook(appNameHook(b.AppName))
	}
}

type appNameHook string

func (h appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h appNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = string(h)
	return nil
}
