package sqli

import "github.com/kantega/wafdetect/sqli/worddata"

func lookupWord(word []byte) (TokenKind, bool) {
	k, ok := worddata.Lookup(word)
	if !ok {
		return TokenNone, false
	}
	return TokenKind(k), true
}

func lookupMerge(a, b []byte) (TokenKind, bool) {
	k, ok := worddata.LookupMerge(a, b)
	if !ok {
		return TokenNone, false
	}
	return TokenKind(k), true
}

func isKnownFunctionName(name []byte) bool {
	return worddata.IsKnownFunctionName(name)
}
