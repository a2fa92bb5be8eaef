package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const LevelKey = "log-level"

// InitLogger sets the global zerolog level from the "log-level" key and sends
// human readable output to out. The report itself never goes through the logger.
func InitLogger(kConfig *koanf.Koanf, out io.Writer) error {
	logLevel := strings.ToUpper(kConfig.String(LevelKey))
	switch logLevel {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("incorrect log level %q", logLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly})
	log.Debug().Str("level", zerolog.GlobalLevel().String()).Msg("logger initialized")
	return nil
}
