package log

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = zerolog.New(consoleWriter()).With().Timestamp().Logger().Level(zerolog.InfoLevel)

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
}

// Configure sets up console and file logging for the application.
// The file sink lives under dir and is rotated, so a long tail session
// cannot grow it without bound.
func Configure(dir string, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	writers := []io.Writer{consoleWriter()}
	if dir != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(dir, "edgehub.log"),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	}
	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level)
}

func Debug() *zerolog.Event {
	return logger.Debug()
}

func Info() *zerolog.Event {
	return logger.Info()
}

func Warn() *zerolog.Event {
	return logger.Warn()
}

func Error() *zerolog.Event {
	return logger.Error()
}
