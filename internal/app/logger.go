package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/config"
)

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"
	zerolog.DurationFieldUnit = time.Millisecond

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Str("service", "go-errands").
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

func MustInitApplicationLogger() {
	env := config.Global().Env

	level, ok := logLevelForEnv(env)
	if !ok {
		globalLogger.Error().
			Str("env", env).
			Msg("unknown env")
		panic(fmt.Errorf("unknown env: %s", env))
	}
	zerolog.SetGlobalLevel(level)

	w := io.Writer(os.Stdout)
	if env == config.EnvLocal {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("level", level.String()).
		Msg("initialized application logger")
}

func logLevelForEnv(env string) (zerolog.Level, bool) {
	switch env {
	case config.EnvLocal:
		return zerolog.TraceLevel, true
	case config.EnvDev:
		return zerolog.DebugLevel, true
	case config.EnvProd:
		return zerolog.InfoLevel, true
	}
	return zerolog.NoLevel, false
}

// componentLogger tags every entry with the component that wrote it.
func componentLogger(name string) zerolog.Logger {
	return globalLogger.With().Str("component", name).Logger()
}
