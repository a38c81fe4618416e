package internal

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

func ParseLogLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return log.OFF, fmt.Errorf("unknown log level %q", level)
}

// NewLogger writes "level<TAB>prefix message" lines to w.
func NewLogger(w io.Writer, prefix string, level string) (*log.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	logger := log.New(prefix)
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetHeader("${level}\t${prefix}")
	return logger, nil
}
