// Package xss implements an HTML5-subset tokenizing state machine and a
// policy layer that inspects tag names, attribute names, attribute
// values and comments against curated blacklists to detect
// cross-site-scripting payloads.
package xss

// TokenType identifies what kind of HTML5 construct the state machine
// just scanned.
type TokenType int

const (
	TokDataText TokenType = iota
	TokTagNameOpen
	TokTagNameClose
	TokTagNameSelfClose
	TokTagData
	TokTagClose
	TokAttrName
	TokAttrValue
	TokTagComment
	TokDoctype
)

var tokenTypeNames = [...]string{
	"data-text",
	"tag-name-open",
	"tag-name-close",
	"tag-name-selfclose",
	"tag-data",
	"tag-close",
	"attr-name",
	"attr-value",
	"tag-comment",
	"doctype",
}

// String renders t the way the round-trip corpus fixtures name it.
func (t TokenType) String() string {
	if int(t) < 0 || int(t) >= len(tokenTypeNames) {
		return "unknown"
	}
	return tokenTypeNames[t]
}

// Context selects which parser state the scan starts in, simulating the
// five places an attacker-controlled string might land in a host HTML
// document.
type Context int

const (
	ContextData Context = iota
	ContextValueNoQuote
	ContextValueSingleQuote
	ContextValueDoubleQuote
	ContextValueBackQuote
)

type stateFn func(*State) bool

// State is a zero-copy HTML5 tokenizer: Token() returns a slice directly
// into the input backing the State, no allocation per token.
type State struct {
	input []byte
	pos   int

	TokenType  TokenType
	TokenStart int
	TokenLen   int

	state stateFn
}

// New creates a tokenizer over input that begins scanning in the state
// implied by ctx.
func New(input []byte, ctx Context) *State {
	h := &State{input: input}
	switch ctx {
	case ContextValueNoQuote:
		h.state = stateBeforeAttributeName
	case ContextValueSingleQuote:
		h.state = stateAttrValueSingleQuote
	case ContextValueDoubleQuote:
		h.state = stateAttrValueDoubleQuote
	case ContextValueBackQuote:
		h.state = stateAttrValueBackQuote
	default:
		h.state = stateData
	}
	return h
}

// Next advances the state machine, returning true once a token is ready.
// It returns false once input is exhausted.
func (h *State) Next() bool {
	for h.pos < len(h.input) {
		if h.state(h) {
			return true
		}
	}
	return false
}

// Token returns the most recently emitted token's raw bytes.
func (h *State) Token() []byte {
	return h.input[h.TokenStart : h.TokenStart+h.TokenLen]
}

func (h *State) emit(tt TokenType, start, length int) {
	h.TokenType = tt
	h.TokenStart = start
	h.TokenLen = length
}

func isWhite(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func ciEqualASCII(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := range b {
		c := b[i]
		if c >= 'a' && c <= 'z' {
			c -= 0x20
		}
		if c != s[i] {
			return false
		}
	}
	return true
}

func stateData(h *State) bool {
	start := h.pos
	for h.pos < len(h.input) && h.input[h.pos] != '<' {
		h.pos++
	}
	if h.pos > start {
		h.emit(TokDataText, start, h.pos-start)
		return true
	}
	h.pos++
	h.state = stateTagOpen
	return false
}

func stateTagOpen(h *State) bool {
	if h.pos >= len(h.input) {
		h.state = stateData
		return false
	}
	switch ch := h.input[h.pos]; {
	case ch == '!':
		h.pos++
		h.state = stateMarkupDeclarationOpen
	case ch == '/':
		h.pos++
		h.state = stateEndTagOpen
	case ch == '?':
		h.state = stateBogusComment
	case isAlpha(ch):
		h.state = stateTagNameOpen
	default:
		h.state = stateData
	}
	return false
}

func stateEndTagOpen(h *State) bool {
	if h.pos < len(h.input) && isAlpha(h.input[h.pos]) {
		h.state = stateTagNameClose
	} else {
		h.state = stateBogusComment
	}
	return false
}

func scanTagName(h *State) (start, end int) {
	start = h.pos
	end = start
	for end < len(h.input) {
		c := h.input[end]
		if c == '/' || c == '>' || isWhite(c) {
			break
		}
		end++
	}
	return
}

func stateTagNameOpen(h *State) bool {
	start, end := scanTagName(h)
	h.emit(TokTagNameOpen, start, end-start)
	switch {
	case end < len(h.input) && h.input[end] == '/':
		h.pos = end
		h.state = stateSelfClosingStartTag
	case end < len(h.input) && h.input[end] == '>':
		h.pos = end + 1
		h.state = stateData
	case end < len(h.input):
		h.pos = end
		h.state = stateBeforeAttributeName
	default:
		h.pos = end
		h.state = stateData
	}
	return true
}

func stateTagNameClose(h *State) bool {
	start := h.pos
	end := start
	for end < len(h.input) && h.input[end] != '>' && h.input[end] != '/' && !isWhite(h.input[end]) {
		end++
	}
	h.emit(TokTagNameClose, start, end-start)
	switch {
	case end < len(h.input) && h.input[end] == '>':
		h.pos = end + 1
		h.state = stateData
	case end < len(h.input):
		i := end
		for i < len(h.input) && isWhite(h.input[i]) {
			i++
		}
		if i < len(h.input) && h.input[i] == '>' {
			h.pos = i + 1
			h.state = stateData
		} else {
			h.pos = len(h.input)
			h.state = stateEOF
		}
	default:
		h.pos = end
		h.state = stateEOF
	}
	return true
}

func stateEOF(h *State) bool {
	h.pos = len(h.input)
	return false
}

func stateSelfClosingStartTag(h *State) bool {
	for h.pos < len(h.input) && isWhite(h.input[h.pos]) {
		h.pos++
	}
	if h.pos < len(h.input) && h.input[h.pos] == '>' {
		h.pos++
		h.state = stateData
		return false
	}
	h.state = stateBeforeAttributeName
	return false
}

func stateBeforeAttributeName(h *State) bool {
	for h.pos < len(h.input) {
		c := h.input[h.pos]
		if isWhite(c) || c == '/' || c == '=' {
			h.pos++
			continue
		}
		break
	}
	if h.pos >= len(h.input) {
		return false
	}
	if h.input[h.pos] == '>' {
		h.pos++
		h.state = stateData
		return false
	}
	h.state = stateAttributeName
	return false
}

func stateAttributeName(h *State) bool {
	start := h.pos
	end := start
	for end < len(h.input) {
		c := h.input[end]
		if c == '/' || c == '>' || c == '=' || isWhite(c) {
			break
		}
		end++
	}
	h.emit(TokAttrName, start, end-start)
	h.pos = end
	if end < len(h.input) && h.input[end] == '=' {
		h.pos = end + 1
		h.state = stateBeforeAttributeValue
	} else {
		h.state = stateAfterAttributeName
	}
	return true
}

func stateAfterAttributeName(h *State) bool {
	for h.pos < len(h.input) && isWhite(h.input[h.pos]) {
		h.pos++
	}
	if h.pos >= len(h.input) {
		return false
	}
	switch h.input[h.pos] {
	case '/':
		h.state = stateSelfClosingStartTag
	case '>':
		h.pos++
		h.state = stateData
	case '=':
		h.pos++
		h.state = stateBeforeAttributeValue
	default:
		h.state = stateAttributeName
	}
	return false
}

func stateBeforeAttributeValue(h *State) bool {
	for h.pos < len(h.input) && isWhite(h.input[h.pos]) {
		h.pos++
	}
	if h.pos >= len(h.input) {
		return false
	}
	switch h.input[h.pos] {
	case '"':
		h.pos++
		h.state = stateAttrValueDoubleQuote
	case '\'':
		h.pos++
		h.state = stateAttrValueSingleQuote
	case '`':
		h.pos++
		h.state = stateAttrValueBackQuote
	case '>':
		h.pos++
		h.state = stateData
	default:
		h.state = stateAttrValueNoQuote
	}
	return false
}

func makeQuotedValueState(delim byte) stateFn {
	return func(h *State) bool {
		start := h.pos
		end := start
		for end < len(h.input) && h.input[end] != delim {
			end++
		}
		h.emit(TokAttrValue, start, end-start)
		if end < len(h.input) {
			h.pos = end + 1
		} else {
			h.pos = end
		}
		h.state = stateAfterAttributeValueQuoted
		return true
	}
}

func stateAttrValueDoubleQuote(h *State) bool { return makeQuotedValueState('"')(h) }
func stateAttrValueSingleQuote(h *State) bool { return makeQuotedValueState('\'')(h) }
func stateAttrValueBackQuote(h *State) bool   { return makeQuotedValueState('`')(h) }

func stateAfterAttributeValueQuoted(h *State) bool {
	for h.pos < len(h.input) && isWhite(h.input[h.pos]) {
		h.pos++
	}
	if h.pos >= len(h.input) {
		return false
	}
	switch h.input[h.pos] {
	case '/':
		h.state = stateSelfClosingStartTag
	case '>':
		h.pos++
		h.state = stateData
	default:
		h.state = stateBeforeAttributeName
	}
	return false
}

func stateAttrValueNoQuote(h *State) bool {
	start := h.pos
	end := start
	for end < len(h.input) && !isWhite(h.input[end]) && h.input[end] != '>' {
		end++
	}
	h.emit(TokAttrValue, start, end-start)
	if end < len(h.input) && h.input[end] == '>' {
		h.pos = end + 1
		h.state = stateData
	} else {
		h.pos = end
		h.state = stateBeforeAttributeName
	}
	return true
}

func stateMarkupDeclarationOpen(h *State) bool {
	rest := h.input[h.pos:]
	switch {
	case len(rest) >= 2 && rest[0] == '-' && rest[1] == '-':
		h.pos += 2
		h.state = stateComment
	case len(rest) >= 7 && ciEqualASCII(rest[:7], "DOCTYPE"):
		h.pos += 7
		h.state = stateDoctype
	case len(rest) >= 7 && string(rest[:7]) == "[CDATA[":
		h.pos += 7
		h.state = stateCdata
	default:
		h.state = stateBogusComment
	}
	return false
}

func stateComment(h *State) bool {
	start := h.pos
	for i := start; i+2 < len(h.input); i++ {
		if h.input[i] == '-' && h.input[i+1] == '-' && h.input[i+2] == '>' {
			h.emit(TokTagComment, start, i-start)
			h.pos = i + 3
			h.state = stateData
			return true
		}
	}
	h.emit(TokTagComment, start, len(h.input)-start)
	h.pos = len(h.input)
	h.state = stateEOF
	return true
}

func stateBogusComment(h *State) bool {
	start := h.pos
	end := start
	for end < len(h.input) && h.input[end] != '>' {
		end++
	}
	h.emit(TokTagComment, start, end-start)
	if end < len(h.input) {
		h.pos = end + 1
		h.state = stateData
	} else {
		h.pos = end
		h.state = stateEOF
	}
	return true
}

func stateCdata(h *State) bool {
	start := h.pos
	for i := start; i+2 < len(h.input); i++ {
		if h.input[i] == ']' && h.input[i+1] == ']' && h.input[i+2] == '>' {
			h.emit(TokDataText, start, i-start)
			h.pos = i + 3
			h.state = stateData
			return true
		}
	}
	h.emit(TokDataText, start, len(h.input)-start)
	h.pos = len(h.input)
	h.state = stateEOF
	return true
}

func stateDoctype(h *State) bool {
	start := h.pos
	end := start
	for end < len(h.input) && h.input[end] != '>' {
		end++
	}
	h.emit(TokDoctype, start, end-start)
	if end < len(h.input) {
		h.pos = end + 1
	} else {
		h.pos = end
	}
	h.state = stateData
	return true
}
