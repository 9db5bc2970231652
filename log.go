package cellview

import "github.com/rs/zerolog"

// Logger receives debug output of the widgets in this package. It discards
// everything by default; applications owning the terminal usually point it at
// a file.
var Logger = zerolog.Nop()

// SetLogger replaces the package logger. Widgets created afterwards inherit it.
func SetLogger(logger zerolog.Logger) {
	Logger = logger
}
