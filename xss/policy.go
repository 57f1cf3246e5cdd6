package xss

import "strings"

// IsXSS scans input as HTML5 starting from ctx and reports whether any
// token trips the policy layer's checks.
func IsXSS(input []byte, ctx Context) bool {
	h := New(input, ctx)
	attr := AttrNone
	for h.Next() {
		if h.TokenType != TokAttrValue {
			attr = AttrNone
		}
		switch h.TokenType {
		case TokDoctype:
			return true

		case TokTagNameOpen, TokTagNameClose:
			if IsBlackTag(h.Token()) {
				return true
			}

		case TokAttrName:
			attr = IsBlackAttr(h.Token())

		case TokAttrValue:
			switch attr {
			case AttrBlack:
				return true
			case AttrURL:
				if IsBlackURL(h.Token()) {
					return true
				}
			case AttrStyle:
				return true
			case AttrIndirect:
				if IsBlackAttr(h.Token()) != AttrNone {
					return true
				}
			}
			attr = AttrNone

		case TokTagComment:
			if isDangerousComment(h.Token()) {
				return true
			}
		}
	}
	return false
}

func isDangerousComment(v []byte) bool {
	for _, b := range v {
		if b == '`' {
			return true
		}
	}
	if len(v) >= 3 && v[0] == '[' && (v[1] == 'i' || v[1] == 'I') && (v[2] == 'f' || v[2] == 'F') {
		return true
	}
	if len(v) >= 3 && strings.ToUpper(string(v[:3])) == "XML" {
		return true
	}
	if len(v) >= 6 {
		u := strings.ToUpper(string(v[:6]))
		if u == "IMPORT" || u == "ENTITY" {
			return true
		}
	}
	return false
}

// contexts is the full set of entry points IsXSS is tried against by
// Detect: data text, and each of the three quoting styles (plus
// unquoted) an attacker-controlled value might land inside.
var contexts = []Context{
	ContextData,
	ContextValueNoQuote,
	ContextValueSingleQuote,
	ContextValueDoubleQuote,
	ContextValueBackQuote,
}

// Detect reports whether input is an XSS payload in any of the contexts
// it could plausibly be reflected into.
func Detect(input []byte) bool {
	for _, c := range contexts {
		if IsXSS(input, c) {
			return true
		}
	}
	return false
}
