package logs

import (
	"log/slog"
	"os"
	"strings"

	"agritrace/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New builds the application slog.Logger. Output is text when pretty
// logging is enabled and JSON otherwise, and every record carries the
// service name and environment so traceability logs from several demo
// instances can be told apart.
func New(params Params) (*slog.Logger, error) {
	env := params.Config.Env

	level, err := parseLogLevel(env.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Source positions only matter when chasing a bug locally.
		AddSource: env.Debug,
	}

	var handler slog.Handler
	if env.Log.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", env.ServiceName),
		slog.String("env", env.Env),
	)

	return logger, nil
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
