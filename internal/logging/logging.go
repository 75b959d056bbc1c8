package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timeFormat        = "2006-01-02 15:04:05"
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
)

// Apply sets the global log level and writers. When file is non-empty, log lines are
// also written to a rotating file at that path.
func Apply(level string, file string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(writer(os.Stdout, file)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func writer(out io.Writer, file string) io.Writer {
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	if file == "" {
		return console
	}

	if err := ensureLogDir(file); err != nil {
		log.Error().Err(err).Str("path", file).Msg("failed to prepare log directory; logging to console only")
		return console
	}

	rotating := zerolog.ConsoleWriter{
		Out: &lumberjack.Logger{
			Filename:   file,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
			Compress:   true,
		},
		TimeFormat: timeFormat,
		NoColor:    true,
	}

	return zerolog.MultiLevelWriter(console, rotating)
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
