// Package logging contains the singleton logger used by the qsync binary.
// It has nothing else in it since everything else depends on it.
package logging

import (
	"gopkg.in/op/go-logging.v1"
)

// Log is the logger for the binary and anything that doesn't own its own module logger.
var Log = logging.MustGetLogger("qsync")
