package transition

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "transition: ", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging toggles verbose transition logging.
// When disabled (default), debug output is discarded.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
