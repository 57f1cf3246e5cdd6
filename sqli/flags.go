package sqli

// SqliFlags lets callers pin the tokenizer dialect and simulated quote
// context for a single detection pass, bypassing the multi-pass
// orchestrator in DetectSQLi. Useful when the caller already knows the
// surrounding SQL context a value will be substituted into (e.g. "this is
// always inside a single-quoted MySQL string literal").
type SqliFlags uint8

const (
	FlagQuoteNone SqliFlags = 1 << iota
	FlagQuoteSingle
	FlagQuoteDouble
	FlagDialectANSI
	FlagDialectMySQL
)
