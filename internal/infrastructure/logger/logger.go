package logger

import (
	"io"
	"os"
	"strings"

	"github.com/LavaJover/restaurant-orders/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Setup configures the logrus standard logger from cfg.
func Setup(cfg config.LogConfig) error {
	return Configure(log.StandardLogger(), cfg)
}

func Configure(logger *log.Logger, cfg config.LogConfig) error {
	level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("unknown log format %q", cfg.LogFormat)
	}

	out, err := openOutput(cfg.LogOutput)
	if err != nil {
		return err
	}
	logger.SetOutput(out)
	return nil
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	// всё остальное считаем путём к файлу
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", output)
	}
	return f, nil
}
