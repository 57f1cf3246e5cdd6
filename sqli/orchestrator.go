package sqli

import "bytes"

// Result is the outcome of a detection pass: whether injection was
// found, and the fingerprint that pass computed (returned even on a
// negative result, for callers that want to log or display it).
type Result struct {
	IsInjection bool
	Fingerprint string
}

type passInfo struct {
	commentDDW, commentDDX, commentC, commentHash int
}

func detectOnePass(input []byte, mysql bool, quoteChar byte) (Result, passInfo) {
	tz := NewTokenizer(input, mysql, quoteChar)
	tokens, tokensEmitted := FoldTokens(tz)
	fp := Fingerprint(tokens)
	info := passInfo{
		commentDDW:  tz.stats.commentDDW,
		commentDDX:  tz.stats.commentDDX,
		commentC:    tz.stats.commentC,
		commentHash: tz.stats.commentHash,
	}
	return Result{IsInjection: IsSQLi(fp, tokens, tokensEmitted, input), Fingerprint: fp}, info
}

// Detect runs the full multi-pass cascade described by this package's
// design: try the input as given; if MySQL-style comments were observed,
// retry in MySQL dialect; if the input contains a quote
// character, retry as if it landed inside a string of that kind (and
// again in MySQL dialect if warranted). The cascade short-circuits on the
// first pass that reports injection.
func Detect(input []byte) Result {
	if len(input) == 0 {
		return Result{}
	}

	res, info := detectOnePass(input, false, 0)
	if res.IsInjection {
		return res
	}

	if info.commentDDX > 0 || info.commentHash > 0 {
		res2, _ := detectOnePass(input, true, 0)
		if res2.IsInjection {
			return res2
		}
		res = res2
	}

	if bytes.IndexByte(input, '\'') >= 0 {
		res3, info3 := detectOnePass(input, false, '\'')
		if res3.IsInjection {
			return res3
		}
		res = res3
		if info3.commentDDX > 0 || info3.commentHash > 0 {
			res4, _ := detectOnePass(input, true, '\'')
			if res4.IsInjection {
				return res4
			}
			res = res4
		}
	}

	if bytes.IndexByte(input, '"') >= 0 {
		res5, _ := detectOnePass(input, true, '"')
		if res5.IsInjection {
			return res5
		}
		res = res5
	}

	return res
}

// DetectWithFlags runs a single detection pass under an explicitly
// pinned dialect and quote context, skipping the multi-pass cascade
// Detect performs.
func DetectWithFlags(input []byte, flags SqliFlags) Result {
	if len(input) == 0 {
		return Result{}
	}
	mysql := flags&FlagDialectMySQL != 0
	var quote byte
	switch {
	case flags&FlagQuoteSingle != 0:
		quote = '\''
	case flags&FlagQuoteDouble != 0:
		quote = '"'
	}
	res, _ := detectOnePass(input, mysql, quote)
	return res
}
