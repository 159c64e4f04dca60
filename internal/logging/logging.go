// Package logging names the tracers of tutormd and sets their level.
//
// Every package that traces selects its own tracer by key, see UI and CLI.
// Tracing is quiet (errors only) until SetDebug(true).
package logging

import (
	"github.com/npillmayer/schuko/tracing"
)

// Tracer keys
const (
	CLI = "tutormd.cli"
	UI  = "tutormd.ui"
)

// Keys lists every tracer key SetDebug applies to
var Keys = []string{CLI, UI}

// SetDebug raises all tutormd tracers to debug level, or drops them back
// to errors only
func SetDebug(enabled bool) {
	for _, k := range Keys {
		if enabled {
			tracing.Select(k).SetTraceLevel(tracing.LevelDebug)
		} else {
			tracing.Select(k).SetTraceLevel(tracing.LevelError)
		}
	}
}
