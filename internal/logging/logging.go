// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Configure sets the output, formatter and level of the standard logger.
// debug forces the debug level regardless of level. An unparsable level
// falls back to info with a warning.
func Configure(w io.Writer, level string, debug bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	if level == "" {
		level = "info"
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
		log.Warnf("invalid log level %s, defaulting to info", level)
	}
}
