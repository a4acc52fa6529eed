package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFileEnv names the environment variable with a file to copy logs to
const LogFileEnv = "LOG_FILE"

/*
Logger returns the logger of the command, building it on first use. Logs go to
stderr, at debug level when the verbose flag is set and info level otherwise.
If the LOG_FILE environment variable is set, logs are also appended as JSON to
the file it names.
*/
func (rcc *rootCmdConfig) Logger() *zap.Logger {
	if rcc.logger != nil {
		return rcc.logger
	}
	level := zapcore.InfoLevel
	if rcc.verbose {
		level = zapcore.DebugLevel
	}
	logger, err := newLogger(level, os.Getenv(LogFileEnv))
	if err != nil {
		logger = zap.New(consoleCore(level))
		logger.Warn("logging to stderr only", zap.Error(err))
	}
	rcc.logger = logger
	return logger
}

func newLogger(level zapcore.Level, logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.New(consoleCore(level)), nil
	}
	err := os.MkdirAll(filepath.Dir(logFile), 0o755)
	if err != nil {
		return nil, errors.Wrapf(err, "creating directory for log file %s", logFile)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", logFile)
	}
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(f), level)
	return zap.New(zapcore.NewTee(fileCore, consoleCore(level))), nil
}

func consoleCore(level zapcore.Level) zapcore.Core {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
}
