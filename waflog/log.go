// Package waflog centralizes structured logging for the detector's
// ambient boundaries - data loading and the consumer-facing report
// package. The pure detection functions in sqli and xss never log:
// logging belongs at the edges, not inside a function whose contract is
// "pure function of its input bytes".
package waflog

import "github.com/sirupsen/logrus"

// Logger is the package-wide logger. Consumers embedding this module may
// replace it (e.g. to attach a different formatter or output) before
// calling any detector entry points.
var Logger = logrus.StandardLogger()

// Fields is a convenience alias so callers don't need to import logrus
// directly just to attach structured context.
type Fields = logrus.Fields

// WithFields returns an entry pre-populated with the given fields.
func WithFields(fields Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}
