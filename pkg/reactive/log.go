package reactive

import (
	"os"

	"github.com/rs/zerolog"
)

// logger receives recovered effect failures. Defaults to stderr; hosts
// embedding the package can redirect it with SetLogger.
var logger = zerolog.New(os.Stderr).With().Timestamp().Str("pkg", "reactive").Logger()

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}
