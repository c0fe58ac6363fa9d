// Package timeouts defines the timeout defaults shared by the command-line tools.
package timeouts

import "time"

// Compile bounds a full catalog build across every requested language.
const Compile = 2 * time.Minute

// TelemetryShutdown limits how long a tool waits for spans to flush on exit.
const TelemetryShutdown = 5 * time.Second
