package lexer

// Lexer turns page source into tokens.
//
// It works on a rune buffer with a cursor and keeps two nesting counters,
// one for square brackets and one for parentheses. While either counter is
// non-zero every rune except the closer that brings it back to zero is
// plain text, so markup characters inside link labels, hrefs and control
// arguments are never re-tokenized. Counters never drop below zero and are
// reset at each newline: brackets do not span lines.
type Lexer struct {
	input  []rune
	pos    int
	square int
	paren  int
}

// New creates a new lexer over the given source
func New(source string) *Lexer {
	return &Lexer{input: []rune(source)}
}

// Tokenize returns every token in source. It always terminates and never
// fails: runes with no special meaning fall into the Text class.
func Tokenize(source string) []Token {
	return New(source).TokenizeToSlice()
}

// TokenizeToSlice drains the lexer into a slice
func (l *Lexer) TokenizeToSlice() []Token {
	estimated := len(l.input) / 4
	if estimated < 16 {
		estimated = 16
	}
	result := make([]Token, 0, estimated)

	for {
		tok, ok := l.NextToken()
		if !ok {
			break
		}
		result = append(result, tok)
	}

	return result
}

// Depth returns the current square bracket and parenthesis nesting depth
func (l *Lexer) Depth() (square, paren int) {
	return l.square, l.paren
}

// ClassOf returns the natural class of a rune, ignoring nesting and
// look-ahead. A ':' is only a Control candidate; the lexer demotes it to
// Text unless it is immediately followed by a second ':'.
func ClassOf(r rune) TokenClass {
	switch r {
	case '#':
		return Hashes
	case '\n':
		return Newline
	case '[':
		return OpenSquare
	case ']':
		return CloseSquare
	case '(':
		return OpenParen
	case ')':
		return CloseParen
	case '~':
		return Menu
	case '*', '_':
		return Emphasis
	case ':':
		return Control
	default:
		return Text
	}
}

// NextToken returns the next token, or false once the input is exhausted
func (l *Lexer) NextToken() (Token, bool) {
	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	class := l.classAt(start)

	switch class {
	case Hashes, Emphasis:
		l.readRun(class)
	case Text:
		l.readText()
	case Control:
		l.pos += 2
	case Newline:
		l.pos++
		l.square, l.paren = 0, 0
	case OpenSquare:
		l.pos++
		l.square++
	case CloseSquare:
		l.pos++
		if l.square > 0 {
			l.square--
		}
	case OpenParen:
		l.pos++
		l.paren++
	case CloseParen:
		l.pos++
		if l.paren > 0 {
			l.paren--
		}
	default:
		l.pos++
	}

	return Token{Class: class, Value: string(l.input[start:l.pos])}, true
}

// classAt returns the effective class of the rune at index i
func (l *Lexer) classAt(i int) TokenClass {
	r := l.input[i]

	if r == '\n' {
		return Newline
	}
	if l.square > 0 {
		if r == ']' && l.square == 1 {
			return CloseSquare
		}
		return Text
	}
	if l.paren > 0 {
		if r == ')' && l.paren == 1 {
			return CloseParen
		}
		return Text
	}

	class := ClassOf(r)
	if class == Control {
		if next, ok := l.peek(i + 1); !ok || next != ':' {
			return Text
		}
	}
	return class
}

// peek returns the rune at index i, if there is one
func (l *Lexer) peek(i int) (rune, bool) {
	if i >= 0 && i < len(l.input) {
		return l.input[i], true
	}
	return 0, false
}

// readRun consumes the longest run of runes of the given class
func (l *Lexer) readRun(class TokenClass) {
	l.pos++
	for l.pos < len(l.input) && l.classAt(l.pos) == class {
		l.pos++
	}
}

// readText consumes a text run, tracking nested brackets of the kind that
// is currently open so that balanced inner pairs stay literal
func (l *Lexer) readText() {
	for l.pos < len(l.input) && l.classAt(l.pos) == Text {
		switch r := l.input[l.pos]; {
		case l.square > 0 && r == '[':
			l.square++
		case l.square > 0 && r == ']':
			l.square--
		case l.square == 0 && l.paren > 0 && r == '(':
			l.paren++
		case l.square == 0 && l.paren > 0 && r == ')':
			l.paren--
		}
		l.pos++
	}
}
