package java

// A minimal Java tokenizer. It understands exactly enough of the lexical
// grammar to walk declarations: identifiers, annotations, literals, and
// single-character punctuation. Comments are skipped here so that later
// stages never see them, and string/char literals are scanned as single
// tokens so their contents cannot be mistaken for comments or keywords.

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenAnnotation // @Name; Literal holds Name
	tokenString     // Literal holds the unquoted contents
	tokenChar
	tokenNumber
	tokenPunct // Literal is a single character: ( ) { } [ ] < > ; , . =
)

type token struct {
	Kind    tokenKind
	Literal string
	Line    int // 1-based line in the original source
}

func (t token) is(kind tokenKind, literal string) bool {
	return t.Kind == kind && t.Literal == literal
}

type lexer struct {
	input []byte
	pos   int
	line  int
}

func newLexer(input []byte) *lexer {
	return &lexer{input: input, line: 1}
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
	}
	return ch
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// tokenize scans the whole input. Whitespace and comments produce no
// tokens. The returned slice always ends with a tokenEOF entry.
func tokenize(input []byte) []token {
	l := newLexer(input)
	var tokens []token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == tokenEOF {
			return tokens
		}
	}
}

func (l *lexer) next() token {
	for {
		ch := l.peek()
		switch {
		case ch == 0:
			return token{Kind: tokenEOF, Line: l.line}
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			for l.peek() != '\n' && l.peek() != 0 {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.input) {
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return l.scanToken()
		}
	}
}

func (l *lexer) scanToken() token {
	line := l.line
	ch := l.peek()

	switch {
	case isIdentStart(ch):
		start := l.pos
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return token{Kind: tokenIdent, Literal: string(l.input[start:l.pos]), Line: line}

	case ch == '@':
		l.advance()
		start := l.pos
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return token{Kind: tokenAnnotation, Literal: string(l.input[start:l.pos]), Line: line}

	case isDigit(ch):
		start := l.pos
		for isIdentPart(l.peek()) || l.peek() == '.' && isDigit(l.peekN(1)) {
			l.advance()
		}
		return token{Kind: tokenNumber, Literal: string(l.input[start:l.pos]), Line: line}

	case ch == '"':
		l.advance()
		start := l.pos
		for l.peek() != '"' && l.peek() != 0 {
			if l.peek() == '\\' {
				l.advance()
			}
			l.advance()
		}
		literal := string(l.input[start:l.pos])
		l.advance()
		return token{Kind: tokenString, Literal: literal, Line: line}

	case ch == '\'':
		l.advance()
		start := l.pos
		for l.peek() != '\'' && l.peek() != 0 {
			if l.peek() == '\\' {
				l.advance()
			}
			l.advance()
		}
		literal := string(l.input[start:l.pos])
		l.advance()
		return token{Kind: tokenChar, Literal: literal, Line: line}

	case ch == '-' && isDigit(l.peekN(1)):
		start := l.pos
		l.advance()
		for isIdentPart(l.peek()) {
			l.advance()
		}
		return token{Kind: tokenNumber, Literal: string(l.input[start:l.pos]), Line: line}

	default:
		l.advance()
		return token{Kind: tokenPunct, Literal: string(ch), Line: line}
	}
}
