package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds a console logger at the configured level, or
// at debug level if verbose is set, that writes on STDERR or, if a
// file is configured, on a size-rotated log file.
func newLogger(lc logConfig, verbose bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	err := level.UnmarshalText([]byte(lc.Level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %v", lc.Level, err)
	}
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}
	ws := zapcore.Lock(os.Stderr)
	if lc.File != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
		})
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, ws, level)), nil
}
