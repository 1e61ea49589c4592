// Package monitoring carries the process-wide diagnostic logger. Packages
// log through Logf so a host application (or a test) can redirect or mute
// everything in one place.
package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger, defaulting to log.Printf.
// Replace it with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Component returns a logf bound to a "[Name]" prefix, so call sites in one
// subsystem tag their lines uniformly.
func Component(name string) func(format string, v ...interface{}) {
	prefix := fmt.Sprintf("[%s] ", name)
	return func(format string, v ...interface{}) {
		Logf(prefix+format, v...)
	}
}
