// Package lexer turns Lumen source text into a filtered token stream.
//
// It is organized in the two layers the compiler depends on: a raw,
// on-demand scanner (rawToken) that knows nothing about statement
// structure, and a newline filter (Next) that turns significant
// newlines into LINE tokens while swallowing ones that merely continue
// an expression.
package lexer

import (
	"lumen/token"
)

// Lexer is the character cursor plus raw scanner plus newline filter.
// It holds the source buffer, a token-start index, the current index,
// and the current line number.
type Lexer struct {
	source string

	tokenStart int
	pos        int
	line       int

	// skipNewlines toggles the newline filter. It starts true so that
	// blank lines at the very top of a file produce no LINE tokens.
	skipNewlines bool
}

// New creates a Lexer over source.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1, skipNewlines: true}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

// peekChar returns the current byte, or 0 at EOF.
func (l *Lexer) peekChar() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.pos]
}

// peekNextChar returns the byte after the current one, or 0 at EOF.
func (l *Lexer) peekNextChar() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

// nextChar consumes and returns the current byte.
func (l *Lexer) nextChar() byte {
	c := l.peekChar()
	l.pos++
	return c
}

func (l *Lexer) matchChar(c byte) bool {
	if l.peekChar() != c {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) makeToken(typ token.Type) token.Token {
	return token.CreateToken(typ, l.tokenStart, l.pos, l.line)
}

func (l *Lexer) errorToken() token.Token {
	return token.CreateToken(token.Error, l.tokenStart, l.pos, l.line)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// skipWhitespaceAndComments consumes spaces and comments, leaving the
// cursor positioned at the start of the next token (or at a newline,
// which rawToken turns into a LINE token itself).
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.peekChar() {
		case ' ', '\t', '\r':
			l.pos++
		case '/':
			if l.peekNextChar() == '/' {
				for l.peekChar() != '\n' && !l.atEnd() {
					l.pos++
				}
			} else if l.peekNextChar() == '*' {
				l.skipBlockComment()
			} else {
				return
			}
		default:
			return
		}
	}
}

// skipBlockComment consumes a (possibly nested) /* ... */ comment. EOF
// inside a block comment terminates the scan silently without an error
// — an inherited, acknowledged limitation.
func (l *Lexer) skipBlockComment() {
	l.pos += 2 // consume "/*"
	depth := 1
	for depth > 0 && !l.atEnd() {
		switch {
		case l.peekChar() == '/' && l.peekNextChar() == '*':
			l.pos += 2
			depth++
		case l.peekChar() == '*' && l.peekNextChar() == '/':
			l.pos += 2
			depth--
		case l.peekChar() == '\n':
			l.line++
			l.pos++
		default:
			l.pos++
		}
	}
}

// rawToken produces exactly one token (type plus source span plus
// line) from the cursor, skipping whitespace and comments first. It
// never looks at statement structure.
func (l *Lexer) rawToken() token.Token {
	l.skipWhitespaceAndComments()
	l.tokenStart = l.pos

	if l.atEnd() {
		return l.makeToken(token.EOF)
	}

	c := l.nextChar()

	if c == '\n' {
		l.line++
		return l.makeToken(token.Line)
	}

	if isAlpha(c) {
		return l.identifier()
	}
	if isDigit(c) || (c == '-' && isDigit(l.peekChar())) {
		return l.number()
	}

	switch c {
	case '(':
		return l.makeToken(token.LeftParen)
	case ')':
		return l.makeToken(token.RightParen)
	case '[':
		return l.makeToken(token.LeftBrack)
	case ']':
		return l.makeToken(token.RightBrack)
	case '{':
		return l.makeToken(token.LeftBrace)
	case '}':
		return l.makeToken(token.RightBrace)
	case ':':
		return l.makeToken(token.Colon)
	case ',':
		return l.makeToken(token.Comma)
	case '.':
		// A '.' is only a decimal point in number(); here it is always
		// punctuation. "x.y" is a call; "x." followed by a digit still
		// parses as a call (number() only consumes a '.' that follows
		// digits inside a number token).
		return l.makeToken(token.Dot)
	case '*':
		return l.makeToken(token.Star)
	case '/':
		return l.makeToken(token.Slash)
	case '%':
		return l.makeToken(token.Percent)
	case '+':
		return l.makeToken(token.Plus)
	case '-':
		return l.makeToken(token.Minus)
	case '|':
		return l.makeToken(token.Pipe)
	case '&':
		return l.makeToken(token.Amp)
	case '!':
		if l.matchChar('=') {
			return l.makeToken(token.BangEqual)
		}
		return l.makeToken(token.Bang)
	case '=':
		if l.matchChar('=') {
			return l.makeToken(token.EqualEqual)
		}
		return l.makeToken(token.Equal)
	case '<':
		if l.matchChar('=') {
			return l.makeToken(token.LessEqual)
		}
		return l.makeToken(token.Less)
	case '>':
		if l.matchChar('=') {
			return l.makeToken(token.GreaterEq)
		}
		return l.makeToken(token.Greater)
	case '"':
		return l.string()
	}

	return l.errorToken()
}

func (l *Lexer) identifier() token.Token {
	for isAlphaNumeric(l.peekChar()) {
		l.pos++
	}
	text := l.source[l.tokenStart:l.pos]
	if typ, ok := token.Keywords[text]; ok {
		return l.makeToken(typ)
	}
	return l.makeToken(token.Name)
}

// number lexes a decimal literal, including the "-digit" negative
// literal form and an optional fractional part. A '.' is only consumed
// as a decimal point when followed by a digit, so "x.y" always lexes
// as a NAME then '.' then NAME, never as a truncated number.
func (l *Lexer) number() token.Token {
	for isDigit(l.peekChar()) {
		l.pos++
	}
	if l.peekChar() == '.' && isDigit(l.peekNextChar()) {
		l.pos++ // consume '.'
		for isDigit(l.peekChar()) {
			l.pos++
		}
	}
	return l.makeToken(token.Number)
}

// string lexes a "..." literal. No escape processing; behavior on an
// unterminated string is left undefined by design: the STRING token
// simply runs to EOF without a closing quote (see the compiler
// package's stringLit), matching the original source's lack of an EOF
// check here.
func (l *Lexer) string() token.Token {
	for l.peekChar() != '"' && !l.atEnd() {
		if l.peekChar() == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.atEnd() {
		return l.makeToken(token.String)
	}
	l.pos++ // closing quote
	return l.makeToken(token.String)
}

// canEndExpression reports whether a token of this type can be the
// last token of a complete expression — used by the newline filter to
// decide whether a following newline is significant.
func canEndExpression(t token.Token) bool {
	switch t.Type {
	case token.RightParen, token.RightBrack, token.RightBrace,
		token.Name, token.Number, token.String,
		token.False, token.True, token.Null, token.This:
		return true
	default:
		return false
	}
}

// Next applies the newline filter described in the package doc: it
// loops over raw tokens, collapsing runs of LINE tokens into one and
// suppressing newlines that cannot terminate the preceding expression.
func (l *Lexer) Next() token.Token {
	for {
		raw := l.rawToken()

		if raw.Type == token.Line {
			if l.skipNewlines {
				continue
			}
			l.skipNewlines = true
			return raw
		}

		if !canEndExpression(raw) {
			l.skipNewlines = true
		} else {
			l.skipNewlines = false
		}
		return raw
	}
}

// Source exposes the underlying buffer, so callers can slice lexemes
// without holding onto the Lexer itself.
func (l *Lexer) Source() string {
	return l.source
}
