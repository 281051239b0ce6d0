// Package logging builds the logrus logger shared by the server and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/vocabsearch/pkg/types"
)

// New returns a logger writing to stderr at cfg.Level in cfg.Format
// ("text" or "json").
func New(cfg types.LogConfig) (*logrus.Logger, error) {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(cfg types.LogConfig, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.Out = out

	level := logrus.InfoLevel
	if cfg.Level != "" {
		l, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	log.Level = level

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		log.Formatter = &logrus.JSONFormatter{}
	default:
		return nil, fmt.Errorf("unsupported log format %q: use text or json", cfg.Format)
	}
	return log, nil
}
