package canopy

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger receives deserializer and debug diagnostics. Replace it with
// SetLogger; the default only reports warnings.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "canopy",
	Level:  log.WarnLevel,
})

// SetLogger replaces the package logger. A nil logger restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "canopy", Level: log.WarnLevel})
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}
