// Package nexuslog builds the leveled loggers used across the toolkit.
package nexuslog

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// New returns a timestamped logfmt logger writing to w, filtered to
// minLevel ("debug", "info", "warn" or "error").
func New(w io.Writer, minLevel string) (log.Logger, error) {
	opt, err := parseLevel(minLevel)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return logger, nil
}

// NewNop returns a logger that discards everything.
func NewNop() log.Logger {
	return log.NewNopLogger()
}

func parseLevel(s string) (level.Option, error) {
	switch s {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unknown log level %q", s)
}
