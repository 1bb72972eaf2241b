// README: Zerolog root logger initialization.
package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide root logger. Services derive their own
// sub-loggers from it with logger.With().Str("service", ...).
func NewLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
