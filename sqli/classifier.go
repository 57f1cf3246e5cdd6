package sqli

import (
	"bytes"
	"strings"

	"github.com/kantega/wafdetect/sqli/blacklistdata"
)

// IsSQLi decides whether a folded token sequence represents a SQL
// injection, given its fingerprint, the tokens it was built from, the
// raw token count the tokenizer produced before folding, and the
// original input (needed for the sp_password rider and a couple of
// whitelist rules that inspect raw bytes around a token).
func IsSQLi(fp string, tokens []Token, tokensEmitted int, rawInput []byte) bool {
	if fp == "" {
		return false
	}
	v1 := "0" + strings.ToUpper(fp)
	if !blacklistdata.Contains(v1) {
		return false
	}
	if containsSpPassword(fp, rawInput) {
		return true
	}
	switch len(fp) {
	case 2:
		return twoTokenWhitelist(fp, tokens, tokensEmitted, rawInput)
	case 3:
		return threeTokenWhitelist(fp, tokens, tokensEmitted)
	default:
		return true
	}
}

// containsSpPassword implements the sp_password rider: a fingerprint
// ending in a comment, where the raw input also mentions the SQL Server
// sp_password procedure, is always treated as injection - SQL Server
// scrubs sp_password calls from its logs, which attackers use to hide
// otherwise-benign-looking statements.
func containsSpPassword(fp string, rawInput []byte) bool {
	if len(fp) == 0 || fp[len(fp)-1] != 'c' {
		return false
	}
	return bytes.Contains(bytes.ToLower(rawInput), []byte("sp_password"))
}

func twoTokenWhitelist(fp string, tokens []Token, tokensEmitted int, rawInput []byte) bool {
	if len(tokens) < 2 {
		return true
	}
	t0, t1 := tokens[0], tokens[1]

	if fp[1] == 'U' {
		return tokensEmitted != 2
	}
	if t1.Kind == TokenComment {
		v := t1.Value()
		if len(v) > 0 && v[0] == '#' {
			return false
		}
	}
	if t0.Kind == TokenBareword && t1.Kind == TokenComment {
		v := t1.Value()
		if len(v) == 0 || v[0] != '/' {
			return false
		}
	}
	if t0.Kind == TokenNumber && t1.Kind == TokenComment {
		v := t1.Value()
		if len(v) > 0 && v[0] == '/' {
			return true
		}
		if tokensEmitted > 2 {
			return true
		}
		after := t0.Pos + t0.Len
		if after < len(rawInput) {
			nb := rawInput[after]
			switch {
			case nb <= 32:
				return true
			case nb == '/' && after+1 < len(rawInput) && rawInput[after+1] == '*':
				return true
			case nb == '-' && after+1 < len(rawInput) && rawInput[after+1] == '-':
				return true
			}
		}
		return false
	}
	if t1.Kind == TokenComment {
		v := t1.Value()
		if len(v) > 2 && v[0] == '-' {
			return false
		}
	}
	return true
}

func threeTokenWhitelist(fp string, tokens []Token, tokensEmitted int) bool {
	if len(tokens) < 3 {
		return true
	}
	switch fp {
	case "sos", "s&s":
		t0, t2 := tokens[0], tokens[2]
		if t0.StrOpen == 0 && t2.StrClose == 0 && t0.StrClose == t2.StrOpen {
			return true
		}
		if tokensEmitted == 3 {
			return false
		}
		return true
	case "s&n", "n&1", "1&1", "1&v", "1&s":
		if tokensEmitted == 3 {
			return false
		}
		return true
	}
	if tokens[1].Kind == TokenKeyword {
		v := tokens[1].Value()
		if len(v) < 4 || !upperEq(v[:4], "INTO") {
			return false
		}
	}
	return true
}
