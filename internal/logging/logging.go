// Package logging builds the zap logger of a run.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var ErrUnknownFormat = errors.New("unknown log format")

// Config holds logger configuration.
type Config struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// New builds a logger writing to stderr, keeping stdout for the report.
func New(cfg Config) (*zap.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger writing to wrt.
func NewWithWriter(cfg Config, wrt io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse log level %q", cfg.Level)
	}

	var encoder zapcore.Encoder

	switch cfg.Format {
	case FormatConsole, "":
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case FormatJSON:
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(wrt), level)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
