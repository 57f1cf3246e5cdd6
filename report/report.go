// Package report is a worked example of wiring the detection engines into
// a request-handling path: given a field name and an untrusted value, it
// runs both detectors and logs a structured verdict. It plays the role
// the teacher's example/basic and cli packages played for generating
// stored procedures - the thin layer an application actually calls from -
// adapted to inspecting field values instead of building SQL. Like those
// packages it sits outside the core: nothing in sqli or xss imports it.
package report

import (
	"context"

	"github.com/kantega/wafdetect/sqli"
	"github.com/kantega/wafdetect/wafconfig"
	"github.com/kantega/wafdetect/waflog"
	"github.com/kantega/wafdetect/xss"
)

// Verdict is the result of inspecting a single field/value pair.
type Verdict struct {
	Field string
	SQLi  sqli.Result
	XSS   bool
}

// Blocked reports whether either detector flagged the inspected value,
// after applying cfg's fingerprint overrides.
func (v Verdict) Blocked(cfg wafconfig.Config) bool {
	sqliHit := v.SQLi.IsInjection
	if cfg.Allows(v.SQLi.Fingerprint) {
		sqliHit = false
	}
	if cfg.Blocks(v.SQLi.Fingerprint) {
		sqliHit = true
	}
	return sqliHit || v.XSS
}

// Inspect runs both detectors against value, submitted under the named
// field, according to cfg, and logs the verdict through waflog when
// Verdict.Blocked(cfg) is true, which applies cfg's allow and block
// fingerprint lists on top of the detector results. Disabling a detector in cfg leaves its field on
// the returned Verdict zero-valued.
func Inspect(ctx context.Context, cfg wafconfig.Config, field, value string) Verdict {
	v := Verdict{Field: field}

	if cfg.SQLi {
		v.SQLi = sqli.Detect([]byte(value))
	}
	if cfg.XSS {
		v.XSS = xss.Detect([]byte(value))
	}

	if v.Blocked(cfg) {
		waflog.Logger.WithFields(waflog.Fields{
			"field":       field,
			"sqli":        v.SQLi.IsInjection,
			"xss":         v.XSS,
			"fingerprint": v.SQLi.Fingerprint,
		}).Warn("wafdetect: blocked field")
	}

	return v
}
