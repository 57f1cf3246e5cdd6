package wafdetect

import (
	"github.com/kantega/wafdetect/sqli"
	"github.com/kantega/wafdetect/xss"
)

// SQLiResult is the outcome of a SQL injection detection pass.
type SQLiResult struct {
	IsInjection bool
	Fingerprint string
}

// SqliFlags lets a caller pin the SQL dialect and quote context for a
// single pass instead of running the full multi-pass cascade DetectSQLi
// performs. See sqli.SqliFlags for the available bits.
type SqliFlags = sqli.SqliFlags

const (
	FlagQuoteNone    = sqli.FlagQuoteNone
	FlagQuoteSingle  = sqli.FlagQuoteSingle
	FlagQuoteDouble  = sqli.FlagQuoteDouble
	FlagDialectANSI  = sqli.FlagDialectANSI
	FlagDialectMySQL = sqli.FlagDialectMySQL
)

// DetectSQLi runs the full ANSI/MySQL x none/single/double-quote
// detection cascade over input and reports whether it is a SQL
// injection, along with the fingerprint of whichever pass produced the
// returned verdict.
func DetectSQLi(input []byte) SQLiResult {
	r := sqli.Detect(input)
	return SQLiResult{IsInjection: r.IsInjection, Fingerprint: r.Fingerprint}
}

// DetectSQLiWithFlags runs a single detection pass under an explicitly
// chosen dialect and quote context.
func DetectSQLiWithFlags(input []byte, flags SqliFlags) SQLiResult {
	r := sqli.DetectWithFlags(input, flags)
	return SQLiResult{IsInjection: r.IsInjection, Fingerprint: r.Fingerprint}
}

// DetectXSS reports whether input is a cross-site-scripting payload in
// any of the five HTML contexts it could be reflected into.
func DetectXSS(input []byte) bool {
	return xss.Detect(input)
}
