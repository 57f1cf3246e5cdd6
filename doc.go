// Command-free library wafdetect inspects untrusted strings for SQL
// injection and cross-site-scripting payloads. Detection is a pure
// function of the input bytes: no network calls, no shared mutable
// state beyond read-only tables initialized once at package load, no
// partial results on error - a detector either classifies the whole
// input or panics on an internal invariant violation (it never returns a
// best-effort guess).
//
// The two engines are independent and can be used standalone via the
// sqli and xss packages, or together through the root-level DetectSQLi
// and DetectXSS wrappers. wafconfig, corpus, waflog and report are
// ambient packages around the engines: configuration loading, fixture
// parsing for tests, logging, and an example consumer wiring,
// respectively.
package wafdetect
