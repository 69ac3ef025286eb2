package logger

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	mu           sync.Mutex
	zapLogger    *zap.Logger
	sugar        *zap.SugaredLogger
	displayLevel = "info"
)

// GetLevel returns the level the logger is currently built with.
func GetLevel() string {
	mu.Lock()
	defer mu.Unlock()
	return displayLevel
}

// SetLevel rebuilds the logger at the given level. Unknown names fall back
// to info.
func SetLevel(lvl string) {
	switch lvl {
	case "debug", "info", "warn", "error":
	default:
		lvl = "info"
	}
	mu.Lock()
	displayLevel = lvl
	mu.Unlock()
	InitLogger(true)
}

// InitLogger builds the zap logger from a JSON config. It is called lazily
// by every logging function, so importers never need to set anything up.
func InitLogger(force bool) {
	mu.Lock()
	defer mu.Unlock()
	if !force && zapLogger != nil {
		return
	}
	cfgString := fmt.Sprintf(`{
		"level": "%s",
		"encoding": "console",
		"outputPaths": ["stdout"],
		"errorOutputPaths": ["stderr"],
		"encoderConfig": {
		  "messageKey": "message",
		  "levelKey": "level",
		  "levelEncoder": "lowercase"
		}
	  }`, displayLevel)

	var cfg zap.Config
	if err := json.Unmarshal([]byte(cfgString), &cfg); err != nil {
		panic(err)
	}
	l, err := cfg.Build()
	if err != nil {
		fmt.Printf("Error instantiating logger with config %v\n", cfgString)
		return
	}
	zapLogger = l
	sugar = l.Sugar()
}

// WithRunID tags every subsequent line with a run identifier so concurrent
// or piped invocations stay distinguishable in shared logs.
func WithRunID(id string) {
	InitLogger(false)
	mu.Lock()
	defer mu.Unlock()
	if zapLogger == nil {
		return
	}
	zapLogger = zapLogger.With(zap.String("run_id", id))
	sugar = zapLogger.Sugar()
}

// Sync flushes buffered output; call before process exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}

func Debug(args ...interface{}) {
	InitLogger(false)
	sugar.Debug(args...)
}

func Info(args ...interface{}) {
	InitLogger(false)
	sugar.Info(args...)
}

func Warn(args ...interface{}) {
	InitLogger(false)
	sugar.Warn(args...)
}

func Error(args ...interface{}) {
	InitLogger(false)
	sugar.Error(args...)
}

func Debugf(template string, args ...interface{}) {
	InitLogger(false)
	sugar.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	InitLogger(false)
	sugar.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	InitLogger(false)
	sugar.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	InitLogger(false)
	sugar.Errorf(template, args...)
}
