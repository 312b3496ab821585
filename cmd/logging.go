package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// parseLevel maps a configured level name to a zerolog level, warn when unknown.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// setupLogging installs a console logger on stderr as the global logger.
//
// pnl runs for a few seconds at most, so entries carry no timestamp.
func setupLogging(level string) {
	output := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
		PartsExclude: []string{
			zerolog.TimestampFieldName,
		},
	}
	zerolog.SetGlobalLevel(parseLevel(level))
	log.Logger = zerolog.New(output)
}
