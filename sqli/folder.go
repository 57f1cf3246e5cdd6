package sqli

import "bytes"

// foldState drives the folding pass: it pulls tokens from the tokenizer
// on demand and repeatedly tries to collapse the front of its working
// window according to the rules in applyTwoTokenRules,
// applyThreeTokenRules and applyFiveTokenSpecialCase. Unlike the fixed
// 8-slot ring this algorithm is traditionally implemented with, buf here
// is a plain compacted slice: whenever a rule fails to fire for the
// token(s) at the front, that token is moved out of buf and into the
// accepted prefix that FoldTokens ultimately returns - it is locked in,
// never revisited, the same way the reference implementation advances
// its "left" boundary instead of discarding the token.
type foldState struct {
	tz             *Tokenizer
	lastComment    Token
	hasLastComment bool
	tokensEmitted  int
}

func (fs *foldState) fillOne() (Token, bool) {
	var tok Token
	if !fs.tz.Next(&tok) {
		return Token{}, false
	}
	fs.tokensEmitted++
	return tok, true
}

// fillReal fetches the next non-comment token, stashing any comment seen
// along the way into lastComment (overwriting any earlier one - only the
// most recent trailing comment survives to be reinserted at the end).
func (fs *foldState) fillReal() (Token, bool) {
	for {
		tok, ok := fs.fillOne()
		if !ok {
			return Token{}, false
		}
		if tok.Kind == TokenComment {
			fs.lastComment = tok
			fs.hasLastComment = true
			continue
		}
		fs.hasLastComment = false
		return tok, true
	}
}

const maxFoldTokens = 5

// FoldTokens tokenizes and folds tz's input down to at most
// maxFoldTokens tokens, the form the fingerprint is built from.
// tokensEmitted is the number of raw tokens the tokenizer actually
// produced (including comments), used by a handful of the classifier's
// whitelist rules to detect "this fingerprint required no folding at
// all".
func FoldTokens(tz *Tokenizer) (tokens []Token, tokensEmitted int) {
	fs := &foldState{tz: tz}

	var buf []Token
	for {
		tok, ok := fs.fillOne()
		if !ok {
			return nil, fs.tokensEmitted
		}
		if tok.Kind == TokenComment {
			fs.lastComment = tok
			fs.hasLastComment = true
			continue
		}
		if tok.Kind == TokenLeftParen || tok.Kind == TokenSQLType || isUnaryOp(tok) {
			continue
		}
		fs.hasLastComment = false
		buf = []Token{tok}
		break
	}

	// accepted holds the locked-in prefix: tokens the rules above have
	// already given up on folding further. It is never revisited - only
	// grown, up to maxFoldTokens - while buf is the still-foldable
	// working window.
	var accepted []Token
	more := true
	for len(accepted) < maxFoldTokens {
		if len(buf) >= maxFoldTokens {
			if len(accepted) == 0 {
				if newBuf, matched := fs.applyFiveTokenSpecialCase(buf); matched {
					buf = newBuf
					more = len(buf) > 0
					continue
				}
			}
			if len(buf) == 0 {
				break
			}
			accepted = append(accepted, buf[0])
			buf = buf[1:]
			continue
		}
		if !more && len(buf) == 0 {
			break
		}
		for len(buf) < 2 && more && len(accepted)+len(buf) < maxFoldTokens {
			tok, ok := fs.fillReal()
			if !ok {
				more = false
				break
			}
			buf = append(buf, tok)
		}
		if len(buf) < 2 {
			if len(buf) == 0 {
				break
			}
			accepted = append(accepted, buf[0])
			buf = buf[1:]
			continue
		}
		if newBuf, folded := applyTwoTokenRules(buf); folded {
			buf = newBuf
			continue
		}
		if len(buf) < 3 && more && len(accepted)+len(buf) < maxFoldTokens {
			tok, ok := fs.fillReal()
			if !ok {
				more = false
			} else {
				buf = append(buf, tok)
			}
		}
		if len(buf) >= 3 {
			if newBuf, folded := applyThreeTokenRules(buf); folded {
				buf = newBuf
				continue
			}
		}
		if len(buf) == 0 {
			break
		}
		accepted = append(accepted, buf[0])
		buf = buf[1:]
	}

	accepted = append(accepted, buf...)

	if len(accepted) < maxFoldTokens && fs.hasLastComment {
		accepted = append(accepted, fs.lastComment)
	}
	if len(accepted) > maxFoldTokens {
		accepted = accepted[:maxFoldTokens]
	}
	if n := len(accepted); n > 0 {
		last := &accepted[n-1]
		if last.Kind == TokenBareword && last.StrOpen == '`' && last.ValLen == 0 && last.StrClose == 0 {
			last.Kind = TokenComment
		}
	}
	return accepted, fs.tokensEmitted
}

func isUnaryOp(tok Token) bool {
	if tok.Kind != TokenOperator {
		return false
	}
	v := tok.Value()
	switch len(v) {
	case 1:
		switch v[0] {
		case '+', '-', '!', '~':
			return true
		}
	case 2:
		return v[0] == '!' && v[1] == '!'
	case 3:
		return upperEq(v, "NOT")
	}
	return false
}

func isArithmeticOp(tok Token) bool {
	if tok.Kind != TokenOperator {
		return false
	}
	v := tok.Value()
	return len(v) == 1 && bytes.IndexByte([]byte("+-*/%^"), v[0]) >= 0
}

func isAbsorbableAfterType(k TokenKind) bool {
	switch k {
	case TokenBareword, TokenNumber, TokenSQLType, TokenLeftParen, TokenFunction, TokenVariable, TokenString:
		return true
	}
	return false
}

func isMergeableKind(k TokenKind) bool {
	switch k {
	case TokenKeyword, TokenBareword, TokenOperator, TokenUnion, TokenFunction, TokenExpression, TokenTSQL, TokenSQLType, TokenLogicOperator, TokenGroup:
		return true
	}
	return false
}

func upperEq(v []byte, s string) bool {
	if len(v) != len(s) {
		return false
	}
	for i := range v {
		c := v[i]
		if c >= 'a' && c <= 'z' {
			c -= 0x20
		}
		if c != s[i] {
			return false
		}
	}
	return true
}

func bytesContainByte(v []byte, b byte) bool { return bytes.IndexByte(v, b) >= 0 }

func joinUpper(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+1+len(b))
	out = append(out, a...)
	out = append(out, ' ')
	out = append(out, b...)
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 0x20
		}
	}
	return out
}

func concatString(a, b Token) Token {
	t := a
	t.Len = (b.Pos + b.Len) - a.Pos
	val := append(append([]byte{}, a.Value()...), b.Value()...)
	t.setVal(val)
	t.StrClose = b.StrClose
	return t
}

func prepend(t Token, rest []Token) []Token {
	out := make([]Token, 0, len(rest)+1)
	out = append(out, t)
	return append(out, rest...)
}

// applyFiveTokenSpecialCase recognizes four numeric/identifier "function
// call with literal argument list" shapes in a five-token window and
// replaces all five with the next tokenizer lookahead (or with nothing
// once input is exhausted). FoldTokens consults it only when buf holds
// maxFoldTokens tokens; its fill steps never grow buf past three, so the
// special case does not fire and these shapes go through the two/three
// token rules only.
func (fs *foldState) applyFiveTokenSpecialCase(buf []Token) ([]Token, bool) {
	if len(buf) < maxFoldTokens {
		return buf, false
	}
	w := buf[:maxFoldTokens]
	matched := (w[0].Kind == TokenNumber && (w[1].Kind == TokenOperator || w[1].Kind == TokenComma) && w[2].Kind == TokenLeftParen && w[3].Kind == TokenNumber && w[4].Kind == TokenRightParen) ||
		(w[0].Kind == TokenBareword && w[1].Kind == TokenOperator && w[2].Kind == TokenLeftParen && (w[3].Kind == TokenBareword || w[3].Kind == TokenNumber) && w[4].Kind == TokenRightParen) ||
		(w[0].Kind == TokenNumber && w[1].Kind == TokenRightParen && w[2].Kind == TokenComma && w[3].Kind == TokenLeftParen && w[4].Kind == TokenNumber) ||
		(w[0].Kind == TokenBareword && w[1].Kind == TokenRightParen && w[2].Kind == TokenOperator && w[3].Kind == TokenLeftParen && w[4].Kind == TokenBareword)
	if !matched {
		return buf, false
	}
	lookahead, ok := fs.fillReal()
	if !ok {
		return nil, true
	}
	return []Token{lookahead}, true
}

// applyTwoTokenRules tries the folder's two-token collapse rules, in the
// order a match is considered authoritative (the first rule that applies
// wins).
func applyTwoTokenRules(buf []Token) ([]Token, bool) {
	a, b := buf[0], buf[1]
	rest := buf[2:]

	if a.Kind == TokenString && b.Kind == TokenString {
		return prepend(concatString(a, b), rest), true
	}
	if a.Kind == TokenSemicolon && b.Kind == TokenSemicolon {
		return prepend(a, rest), true
	}
	if (a.Kind == TokenOperator || a.Kind == TokenLogicOperator) && (isUnaryOp(b) || b.Kind == TokenSQLType) {
		return prepend(a, rest), true
	}
	if a.Kind == TokenLeftParen && isUnaryOp(b) {
		return prepend(a, rest), true
	}
	if isMergeableKind(a.Kind) && isMergeableKind(b.Kind) {
		if kind, ok := lookupMerge(a.Value(), b.Value()); ok {
			merged := a
			merged.Kind = kind
			merged.Len = (b.Pos + b.Len) - a.Pos
			merged.setVal(joinUpper(a.Value(), b.Value()))
			return prepend(merged, rest), true
		}
	}
	if a.Kind == TokenSemicolon && b.Kind == TokenFunction && upperEq(b.Value(), "IF") {
		t := b
		t.Kind = TokenTSQL
		return prepend(t, rest), true
	}
	if (a.Kind == TokenBareword || a.Kind == TokenVariable) && b.Kind == TokenLeftParen {
		if isZeroArgFunctionName(a.Value()) {
			t := a
			t.Kind = TokenFunction
			return append([]Token{t, b}, rest...), true
		}
	}
	if a.Kind == TokenKeyword && (upperEq(a.Value(), "IN") || upperEq(a.Value(), "NOT IN")) && b.Kind == TokenLeftParen {
		t := a
		t.Kind = TokenOperator
		return append([]Token{t, b}, rest...), true
	}
	if a.Kind == TokenOperator && (upperEq(a.Value(), "LIKE") || upperEq(a.Value(), "NOT LIKE")) && b.Kind == TokenLeftParen {
		t := a
		t.Kind = TokenFunction
		return append([]Token{t, b}, rest...), true
	}
	if a.Kind == TokenSQLType && isAbsorbableAfterType(b.Kind) {
		return prepend(b, rest), true
	}
	if a.Kind == TokenCollate && b.Kind == TokenBareword && bytesContainByte(b.Value(), '_') {
		t := b
		t.Kind = TokenSQLType
		return prepend(t, rest), true
	}
	if a.Kind == TokenBackslash {
		if isArithmeticOp(b) {
			t := a
			t.Kind = TokenNumber
			return append([]Token{t, b}, rest...), true
		}
		return prepend(b, rest), true
	}
	if a.Kind == TokenLeftParen && b.Kind == TokenLeftParen {
		return prepend(a, rest), true
	}
	if a.Kind == TokenRightParen && b.Kind == TokenRightParen {
		return prepend(a, rest), true
	}
	if a.Kind == TokenLeftBrace && b.Kind == TokenBareword {
		if b.Len == 0 {
			t := a
			t.Kind = TokenEvil
			return prepend(t, rest), true
		}
		return rest, true
	}
	if b.Kind == TokenRightBrace {
		return prepend(a, rest), true
	}
	return buf, false
}

// applyThreeTokenRules tries the folder's three-token collapse rules, in
// the same first-match-wins order as applyTwoTokenRules.
func applyThreeTokenRules(buf []Token) ([]Token, bool) {
	a, b, c := buf[0], buf[1], buf[2]
	rest := buf[3:]

	if a.Kind == TokenNumber && b.Kind == TokenOperator && c.Kind == TokenNumber {
		return prepend(a, rest), true
	}
	if a.Kind == TokenVariable && b.Kind == TokenOperator && (c.Kind == TokenVariable || c.Kind == TokenNumber || c.Kind == TokenBareword) {
		return prepend(a, rest), true
	}
	// A literal compared against another literal folds to the left-hand
	// literal - this is what lets "'1'='1'" collapse into a single
	// string token instead of surviving as three.
	if (a.Kind == TokenBareword || a.Kind == TokenNumber || a.Kind == TokenString) && b.Kind == TokenOperator &&
		(c.Kind == TokenNumber || c.Kind == TokenBareword || c.Kind == TokenString) {
		return prepend(a, rest), true
	}
	if a.Kind == TokenOperator && c.Kind == TokenOperator && b.Kind != TokenLeftParen {
		return prepend(a, rest), true
	}
	if a.Kind == TokenLogicOperator && c.Kind == TokenLogicOperator {
		return prepend(a, rest), true
	}
	if (a.Kind == TokenBareword || a.Kind == TokenNumber || a.Kind == TokenString || a.Kind == TokenVariable) &&
		b.Kind == TokenOperator && upperEq(b.Value(), "::") && c.Kind == TokenSQLType {
		return prepend(a, rest), true
	}
	if (a.Kind == TokenBareword || a.Kind == TokenNumber || a.Kind == TokenString || a.Kind == TokenVariable) &&
		b.Kind == TokenComma &&
		(c.Kind == TokenNumber || c.Kind == TokenBareword || c.Kind == TokenString || c.Kind == TokenVariable) {
		return prepend(a, rest), true
	}
	if (a.Kind == TokenExpression || a.Kind == TokenGroup || a.Kind == TokenComma) && isUnaryOp(b) && c.Kind == TokenLeftParen {
		return append([]Token{a, c}, rest...), true
	}
	if (a.Kind == TokenKeyword || a.Kind == TokenExpression || a.Kind == TokenGroup) && isUnaryOp(b) &&
		(c.Kind == TokenNumber || c.Kind == TokenBareword || c.Kind == TokenVariable || c.Kind == TokenString || c.Kind == TokenFunction) {
		return append([]Token{a, c}, rest...), true
	}
	if a.Kind == TokenComma && isUnaryOp(b) &&
		(c.Kind == TokenNumber || c.Kind == TokenBareword || c.Kind == TokenVariable || c.Kind == TokenString) {
		return append([]Token{a, c}, rest...), true
	}
	if a.Kind == TokenComma && isUnaryOp(b) && c.Kind == TokenFunction {
		return append([]Token{a, c}, rest...), true
	}
	if a.Kind == TokenBareword && b.Kind == TokenDot && c.Kind == TokenBareword {
		return prepend(a, rest), true
	}
	if a.Kind == TokenExpression && b.Kind == TokenDot && c.Kind == TokenBareword {
		return prepend(c, rest), true
	}
	if a.Kind == TokenFunction && b.Kind == TokenLeftParen && c.Kind != TokenRightParen {
		if upperEq(a.Value(), "USER") {
			buf[0].Kind = TokenBareword
			return buf, false
		}
	}
	return buf, false
}

// isZeroArgFunctionName reports whether name is a bareword commonly
// invoked with no arguments, such as "current_timestamp()" or "now()".
func isZeroArgFunctionName(name []byte) bool {
	switch {
	case upperEq(name, "NOW"), upperEq(name, "USER"), upperEq(name, "VERSION"),
		upperEq(name, "DATABASE"), upperEq(name, "CURRENT_TIMESTAMP"),
		upperEq(name, "CURRENT_DATE"), upperEq(name, "CURRENT_USER"),
		upperEq(name, "UUID"), upperEq(name, "RAND"), upperEq(name, "SLEEP"),
		upperEq(name, "COUNT"), upperEq(name, "CONNECTION_ID"):
		return true
	}
	return false
}
